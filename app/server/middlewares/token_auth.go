package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"quiz-backend/app/server/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 认证通过后用户对象放在 echo context 的这个键下
const ContextKeyUser = "user"

func TokenAuth(svc *auth.Service, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()

			// 提取 token
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.NoContent(http.StatusUnauthorized)
			}

			splits := strings.Split(authHeader, " ")
			if len(splits) != 2 {
				return c.NoContent(http.StatusUnauthorized)
			}

			if strings.ToLower(splits[0]) != "bearer" {
				return c.NoContent(http.StatusUnauthorized)
			}

			// 校验令牌（带缓存）
			user, err := svc.VerifyToken(rctx, splits[1])
			if err != nil {
				if !errors.Is(err, auth.ErrInvalidToken) {
					l.Error("failed to verify token", zap.Error(err))
					return c.NoContent(http.StatusInternalServerError)
				}
				return c.NoContent(http.StatusUnauthorized)
			}

			// 设置 context
			c.Set(ContextKeyUser, user)

			// 继续处理
			return next(c)
		}
	}
}
