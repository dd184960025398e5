package handlers

import (
	"quiz-backend/app/server/auth"
	"quiz-backend/app/server/store"

	"go.uber.org/zap"
)

type App struct {
	l       *zap.Logger   // 日志
	auth    *auth.Service // 认证服务
	users   store.Users   // 用户仓储
	quizzes store.Quizzes // 测验仓储
}

func NewApp(l *zap.Logger, authService *auth.Service, users store.Users, quizzes store.Quizzes) *App {
	return &App{
		l:       l,
		auth:    authService,
		users:   users,
		quizzes: quizzes,
	}
}
