package handlers

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// bearerToken 从 Authorization 头中提取 Bearer 令牌
func (a *App) bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("missing auth token")
	}

	splits := strings.Split(authHeader, " ")
	if len(splits) != 2 {
		return "", fmt.Errorf("invalid auth header: %s", authHeader)
	}

	if strings.ToLower(splits[0]) != "bearer" {
		return "", fmt.Errorf("unknown auth method: %s", splits[0])
	}

	return splits[1], nil
}
