package handlers

import (
	"errors"
	"net/http"

	"quiz-backend/app/server/auth"
	"quiz-backend/app/server/store"
	"quiz-backend/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AuthCredentials
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	user, err := a.auth.Register(rctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			// 没有写用户名或密码
			return a.er(c, http.StatusUnprocessableEntity)
		case errors.Is(err, store.ErrDuplicateUsername):
			return a.er(c, http.StatusConflict)
		default:
			a.l.Error("failed to register user", zap.String("username", req.Username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 返回公开投影
	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AuthCredentials
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	token, err := a.auth.Login(rctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return a.er(c, http.StatusNotFound)
		case errors.Is(err, auth.ErrIncorrectPassword):
			// 密码不一致
			return a.erMsg(c, http.StatusUnauthorized, "Incorrect password")
		default:
			a.l.Error("failed to login", zap.String("username", req.Username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 返回
	return c.JSON(http.StatusOK, &types.LoginToken{
		RememberToken: token,
	})
}

func (a *App) AuthVerify(c echo.Context) error {
	rctx := c.Request().Context()

	// 提取 token
	token, err := a.bearerToken(c)
	if err != nil {
		a.l.Error("failed to get bearer token", zap.Error(err))
		return a.erMsg(c, http.StatusUnauthorized, "Invalid token")
	}

	user, err := a.auth.VerifyToken(rctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return a.erMsg(c, http.StatusUnauthorized, "Invalid token")
		}
		a.l.Error("failed to verify token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.VerifyResponse{
		Message: "User found",
		User:    types.NewUserInfo(user),
	})
}

func (a *App) AuthLogout(c echo.Context) error {
	rctx := c.Request().Context()

	// 提取 token
	token, err := a.bearerToken(c)
	if err != nil {
		a.l.Error("failed to get bearer token", zap.Error(err))
		return a.erMsg(c, http.StatusUnauthorized, "Invalid token")
	}

	if err := a.auth.Logout(rctx, token); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return a.erMsg(c, http.StatusUnauthorized, "Invalid token")
		}
		a.l.Error("failed to logout", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.Message{
		Message: "User logged out",
	})
}
