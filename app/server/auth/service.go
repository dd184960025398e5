package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quiz-backend/app/server/constants"
	"quiz-backend/app/server/models"
	"quiz-backend/app/server/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrIncorrectPassword  = errors.New("incorrect password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service 负责注册 / 登录 / 登出 / 令牌校验的编排
type Service struct {
	users store.Users
	rdb   *redis.Client
	l     *zap.Logger
}

func NewService(users store.Users, rdb *redis.Client, l *zap.Logger) *Service {
	return &Service{
		users: users,
		rdb:   rdb,
		l:     l,
	}
}

func (s *Service) Register(ctx context.Context, username string, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	// 处理密码
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	// 创建用户
	user := models.User{
		Username: username,
		Password: passwordHash,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Service) Login(ctx context.Context, username string, password string) (string, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	// 校验密码
	if match, err := VerifyPassword(password, user.Password); err != nil {
		return "", err
	} else if !match {
		return "", ErrIncorrectPassword
	}

	// 签出新令牌并持久化
	token, err := NewRememberToken()
	if err != nil {
		return "", err
	}
	if err := s.users.SetToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	// 旧令牌如果有缓存，清理掉，避免被覆盖后仍然可用
	if user.RememberToken != "" {
		if err := s.rdb.Del(ctx, s.cacheKey(user.RememberToken)).Err(); err != nil {
			s.l.Error("failed to drop stale token cache", zap.Error(err))
		}
	}

	return token, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	// 单条条件更新：清掉 token 一致的那一行，0 行说明令牌无效
	rows, err := s.users.ClearToken(ctx, token)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvalidToken
	}

	if err := s.rdb.Del(ctx, s.cacheKey(token)).Err(); err != nil {
		s.l.Error("failed to drop token cache", zap.Error(err))
	}

	return nil
}

func (s *Service) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	// 查询缓存
	cacheKey := s.cacheKey(token)
	var user models.User
	if cacheBytes, err := s.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.l.Error("failed to query token cache", zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &user); err != nil {
		s.l.Error("failed to unmarshal cached user", zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		s.rdb.Del(ctx, cacheKey)
	} else {
		// 成功拉取到并格式化
		return &user, nil
	}

	// 查询数据库
	found, err := s.users.ByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	// 格式化并加入缓存，方便下一次查询
	if cacheBytes, err := json.Marshal(found); err != nil {
		s.l.Error("failed to marshal user for cache", zap.Error(err))
	} else {
		s.rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireAuthToken)
	}

	return found, nil
}

func (s *Service) cacheKey(token string) string {
	return fmt.Sprintf(constants.CacheKeyAuthToken, token)
}
