package handlers

import (
	"quiz-backend/app/server/auth"
	"quiz-backend/app/server/middlewares"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RegisterRoutes 绑定全部路由，main 和测试共用
func RegisterRoutes(e *echo.Echo, a *App, authService *auth.Service, l *zap.Logger) {
	// 认证
	e.POST("/auth/register", a.AuthRegister)
	e.PUT("/auth", a.AuthLogin)
	e.GET("/auth", a.AuthVerify)
	e.DELETE("/auth", a.AuthLogout)

	// 用户目录
	e.POST("/users", a.UserCreate)
	e.GET("/users", a.UserList)
	e.GET("/users/search", a.UserSearch)
	e.GET("/users/:id", a.UserInfoGet)

	// 测验内容：读公开，写需要登录
	tokenAuth := middlewares.TokenAuth(authService, l)
	e.GET("/quizzes", a.QuizList)
	e.GET("/quizzes/:publicId", a.QuizInfoGet)
	e.POST("/quizzes", a.QuizCreate, tokenAuth)
	e.POST("/quizzes/:publicId/submissions", a.QuizSubmit, tokenAuth)

	// 健康检查
	e.GET("/healthcheck", a.HealthCheck)
}
