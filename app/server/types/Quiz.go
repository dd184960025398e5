package types

import "quiz-backend/app/server/models"

type QuestionInput struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

type QuizInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   []QuestionInput `json:"questions"`
}

// QuestionInfo 是题目的公开投影，不包含正确答案
type QuestionInfo struct {
	ID      uint     `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

type QuizInfo struct {
	PublicID    string         `json:"public_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	OwnerID     uint           `json:"owner_id"`
	Questions   []QuestionInfo `json:"questions,omitempty"`
}

func NewQuizInfo(quiz *models.Quiz, withQuestions bool) *QuizInfo {
	info := &QuizInfo{
		PublicID:    quiz.PublicID.String(),
		Title:       quiz.Title,
		Description: quiz.Description,
		OwnerID:     quiz.OwnerID,
	}
	if withQuestions {
		for _, question := range quiz.Questions {
			info.Questions = append(info.Questions, QuestionInfo{
				ID:      question.ID,
				Prompt:  question.Prompt,
				Options: question.Options,
			})
		}
	}
	return info
}

type SubmissionInput struct {
	Answers []int `json:"answers"` // 与题目顺序一一对应的选项下标
}

type SubmissionResult struct {
	Score int `json:"score"`
	Total int `json:"total"`
}
