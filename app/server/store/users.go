package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-backend/app/server/models"

	"gorm.io/gorm"
)

// Users 是用户表的类型化仓储接口，存储引擎可替换而不影响服务逻辑
type Users interface {
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id uint) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	ByToken(ctx context.Context, token string) (*models.User, error)
	All(ctx context.Context) ([]models.User, error)
	SearchByUsername(ctx context.Context, query string) ([]models.User, error)
	SetToken(ctx context.Context, id uint, token string) error
	ClearToken(ctx context.Context, token string) (int64, error)
}

type gormUsers struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) Users {
	return &gormUsers{db: db}
}

func (s *gormUsers) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *gormUsers) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return &user, nil
}

func (s *gormUsers) ByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by username: %w", err)
	}
	return &user, nil
}

func (s *gormUsers) ByToken(ctx context.Context, token string) (*models.User, error) {
	// 空令牌等价于未登录，不能匹配到任何被清空令牌的记录
	if token == "" {
		return nil, ErrNotFound
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "remember_token = ?", token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user by token: %w", err)
	}
	return &user, nil
}

func (s *gormUsers) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *gormUsers) SearchByUsername(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	pattern := "%" + escapeLike(query) + "%"
	if err := s.db.WithContext(ctx).
		Where("username LIKE ? ESCAPE '\\'", pattern).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func (s *gormUsers) SetToken(ctx context.Context, id uint, token string) error {
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("remember_token", token).Error; err != nil {
		return fmt.Errorf("set token: %w", err)
	}
	return nil
}

// ClearToken 用单条条件更新清空令牌，避免「先查再清」的竞态，返回受影响的行数
func (s *gormUsers) ClearToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, nil
	}

	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("remember_token = ?", token).
		Update("remember_token", "")
	if res.Error != nil {
		return 0, fmt.Errorf("clear token: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// LIKE 的模式元字符需要转义，查询串才是纯粹的子串匹配
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
