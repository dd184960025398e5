package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"quiz-backend/app/server/constants"
	"quiz-backend/app/server/models"
	"quiz-backend/app/server/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memUsers 是 store.Users 的内存实现，验证服务层不依赖具体存储引擎
type memUsers struct {
	seq  uint
	byID map[uint]*models.User
}

var _ store.Users = (*memUsers)(nil)

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[uint]*models.User)}
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range m.byID {
		if u.Username == user.Username {
			return store.ErrDuplicateUsername
		}
	}
	m.seq++
	user.ID = m.seq
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

func (m *memUsers) ByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) ByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.byID {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) ByToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, store.ErrNotFound
	}
	for _, u := range m.byID {
		if u.RememberToken == token {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) All(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range m.byID {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memUsers) SearchByUsername(_ context.Context, query string) ([]models.User, error) {
	var users []models.User
	for _, u := range m.byID {
		if strings.Contains(u.Username, query) {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *memUsers) SetToken(_ context.Context, id uint, token string) error {
	u, ok := m.byID[id]
	if !ok {
		return store.ErrNotFound
	}
	u.RememberToken = token
	return nil
}

func (m *memUsers) ClearToken(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	var rows int64
	for _, u := range m.byID {
		if u.RememberToken == token {
			u.RememberToken = ""
			rows++
		}
	}
	return rows, nil
}

func newTestService(t *testing.T) (*Service, *memUsers, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	users := newMemUsers()
	return NewService(users, rdb, zap.NewNop()), users, mr
}

func TestService_RegisterValidation(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	for _, tc := range []struct {
		name     string
		username string
		password string
	}{
		{"missing username", "", "secret"},
		{"missing password", "alice", ""},
		{"missing both", "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.username, tc.password)
			require.ErrorIs(t, err, ErrMissingCredentials)
		})
	}

	// 校验失败时不应产生任何记录
	require.Empty(t, users.byID)
}

func TestService_RegisterHashesPassword(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.False(t, user.IsAdmin)

	stored, err := users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotEqual(t, "secret", stored.Password)

	match, err := VerifyPassword("secret", stored.Password)
	require.NoError(t, err)
	require.True(t, match)
}

func TestService_RegisterDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "another")
	require.ErrorIs(t, err, store.ErrDuplicateUsername)
}

func TestService_LoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "secret")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestService_LoginWrongPasswordKeepsToken(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	// 密码错误登录失败，已有令牌保持不变
	_, err = svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, ErrIncorrectPassword)

	stored, err := users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, token, stored.RememberToken)
}

func TestService_LoginRotatesToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	second, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// 被覆盖的旧令牌不再可用
	_, err = svc.VerifyToken(ctx, first)
	require.ErrorIs(t, err, ErrInvalidToken)

	user, err := svc.VerifyToken(ctx, second)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestService_VerifyTokenCaches(t *testing.T) {
	svc, _, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	// 第一次校验后结果进入缓存
	require.True(t, mr.Exists(fmt.Sprintf(constants.CacheKeyAuthToken, token)))

	// 缓存命中路径
	again, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, again.ID)
}

func TestService_LogoutInvalidatesToken(t *testing.T) {
	svc, _, mr := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "secret")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	// 填充缓存后登出，缓存也要被清理
	_, err = svc.VerifyToken(ctx, token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	require.False(t, mr.Exists(fmt.Sprintf(constants.CacheKeyAuthToken, token)))

	_, err = svc.VerifyToken(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)

	// 重复登出视为无效令牌
	require.ErrorIs(t, svc.Logout(ctx, token), ErrInvalidToken)
	require.ErrorIs(t, svc.Logout(ctx, "no-such-token"), ErrInvalidToken)
	require.ErrorIs(t, svc.Logout(ctx, ""), ErrInvalidToken)
}

func TestService_VerifyTokenEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.VerifyToken(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidToken)
}
