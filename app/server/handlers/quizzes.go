package handlers

import (
	"errors"
	"net/http"

	"quiz-backend/app/server/middlewares"
	"quiz-backend/app/server/models"
	"quiz-backend/app/server/store"
	"quiz-backend/app/server/types"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) QuizCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 中间件已经完成认证
	owner, ok := c.Get(middlewares.ContextKeyUser).(*models.User)
	if !ok {
		return a.er(c, http.StatusUnauthorized)
	}

	// 绑定请求体
	var req types.QuizInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	if req.Title == "" || len(req.Questions) == 0 {
		return a.er(c, http.StatusUnprocessableEntity)
	}

	// 组装测验与题目
	quiz := models.Quiz{
		PublicID:    uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     owner.ID,
	}
	for _, q := range req.Questions {
		// 答案必须指向一个存在的选项
		if len(q.Options) < 2 || q.Answer < 0 || q.Answer >= len(q.Options) {
			return a.er(c, http.StatusUnprocessableEntity)
		}
		quiz.Questions = append(quiz.Questions, models.Question{
			Prompt:  q.Prompt,
			Options: q.Options,
			Answer:  q.Answer,
		})
	}

	if err := a.quizzes.Create(rctx, &quiz); err != nil {
		a.l.Error("failed to create quiz", zap.String("title", quiz.Title), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, types.NewQuizInfo(&quiz, true))
}

func (a *App) QuizList(c echo.Context) error {
	rctx := c.Request().Context()

	quizzes, err := a.quizzes.All(rctx)
	if err != nil {
		a.l.Error("failed to get quiz list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resQuizzes := []types.QuizInfo{}
	for i := range quizzes {
		resQuizzes = append(resQuizzes, *types.NewQuizInfo(&quizzes[i], false))
	}

	return c.JSON(http.StatusOK, resQuizzes)
}

func (a *App) QuizInfoGet(c echo.Context) error {
	quiz, err, statusCode := a.getQuiz(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	return c.JSON(http.StatusOK, types.NewQuizInfo(quiz, true))
}

func (a *App) QuizSubmit(c echo.Context) error {
	quiz, err, statusCode := a.getQuiz(c)
	if err != nil {
		return a.er(c, statusCode)
	}

	// 绑定请求体
	var req types.SubmissionInput
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 答案数量必须与题目数量一致
	if len(req.Answers) != len(quiz.Questions) {
		return a.er(c, http.StatusUnprocessableEntity)
	}

	// 逐题判分
	score := 0
	for i, question := range quiz.Questions {
		if req.Answers[i] == question.Answer {
			score++
		}
	}

	return c.JSON(http.StatusOK, &types.SubmissionResult{
		Score: score,
		Total: len(quiz.Questions),
	})
}

func (a *App) getQuiz(c echo.Context) (*models.Quiz, error, int) {
	rctx := c.Request().Context()

	// 格式化 UUID
	publicID, err := uuid.Parse(c.Param("publicId"))
	if err != nil {
		return nil, err, http.StatusBadRequest
	}

	quiz, err := a.quizzes.ByPublicID(rctx, publicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err, http.StatusNotFound
		}
		a.l.Error("failed to get quiz", zap.String("publicId", publicID.String()), zap.Error(err))
		return nil, err, http.StatusInternalServerError
	}

	return quiz, nil, http.StatusOK
}
