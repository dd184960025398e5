package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-backend/app/server/auth"
	"quiz-backend/app/server/models"
	"quiz-backend/app/server/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	e  *echo.Echo
	db *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库绑定在连接上，限制单连接避免数据丢失
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// sqlite 的 LIKE 默认不区分大小写，测试环境对齐 postgres 行为
	require.NoError(t, db.Exec("PRAGMA case_sensitive_like = ON").Error)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Question{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	l := zap.NewNop()
	users := store.NewUsers(db)
	quizzes := store.NewQuizzes(db)
	authService := auth.NewService(users, rdb, l)

	e := echo.New()
	RegisterRoutes(e, NewApp(l, authService, users, quizzes), authService, l)

	return &testEnv{e: e, db: db}
}

// do 发送一个 JSON 请求，token 非空时附带 Bearer 头
func (env *testEnv) do(t *testing.T, method string, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// register 走注册接口创建用户并返回其 ID
func (env *testEnv) register(t *testing.T, username string, password string) uint {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	return uint(body["id"].(float64))
}

// login 走登录接口返回会话令牌
func (env *testEnv) login(t *testing.T, username string, password string) string {
	t.Helper()

	rec := env.do(t, http.MethodPut, "/auth", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	require.NotEmpty(t, body["remember_token"])
	return body["remember_token"]
}
