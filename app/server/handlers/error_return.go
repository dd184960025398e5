package handlers

import (
	"net/http"

	"quiz-backend/app/server/types"

	"github.com/labstack/echo/v4"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.Message{
		Message: http.StatusText(statusCode),
	})
}

// erMsg 用在需要固定文案的错误上（例如 "Incorrect password"）
func (a *App) erMsg(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &types.Message{
		Message: message,
	})
}
