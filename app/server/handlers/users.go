package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quiz-backend/app/server/auth"
	"quiz-backend/app/server/store"
	"quiz-backend/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TODO: 限制仅管理员可以创建用户（原系统中也是遗留项，行为未定）
func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AuthCredentials
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	// 与注册走同一套校验和散列逻辑
	user, err := a.auth.Register(rctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return a.er(c, http.StatusUnprocessableEntity)
		case errors.Is(err, store.ErrDuplicateUsername):
			return a.er(c, http.StatusConflict)
		default:
			a.l.Error("failed to create user", zap.String("username", req.Username), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) UserList(c echo.Context) error {
	rctx := c.Request().Context()

	users, err := a.users.All(rctx)
	if err != nil {
		a.l.Error("failed to get user list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resUsers := []types.UserInfo{}
	for i := range users {
		resUsers = append(resUsers, *types.NewUserInfo(&users[i]))
	}

	return c.JSON(http.StatusOK, resUsers)
}

func (a *App) UserInfoGet(c echo.Context) error {
	rctx := c.Request().Context()

	// 提取 ID
	idUint64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}

	// 从数据库中获得指定的用户
	user, err := a.users.ByID(rctx, uint(idUint64))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get user", zap.Uint64("id", idUint64), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, types.NewUserInfo(user))
}

func (a *App) UserSearch(c echo.Context) error {
	rctx := c.Request().Context()

	// 子串匹配，区分大小写；没有命中时返回空列表
	users, err := a.users.SearchByUsername(rctx, c.QueryParam("q"))
	if err != nil {
		a.l.Error("failed to search users", zap.String("q", c.QueryParam("q")), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resUsers := []types.UserInfo{}
	for i := range users {
		resUsers = append(resUsers, *types.NewUserInfo(&users[i]))
	}

	return c.JSON(http.StatusOK, resUsers)
}
