package store

import (
	"context"
	"errors"
	"fmt"

	"quiz-backend/app/server/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quizzes 是测验内容的类型化仓储接口
type Quizzes interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	All(ctx context.Context) ([]models.Quiz, error)
	ByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Quiz, error)
}

type gormQuizzes struct {
	db *gorm.DB
}

func NewQuizzes(db *gorm.DB) Quizzes {
	return &gormQuizzes{db: db}
}

func (s *gormQuizzes) Create(ctx context.Context, quiz *models.Quiz) error {
	// 题目作为关联记录一并写入
	if err := s.db.WithContext(ctx).Create(quiz).Error; err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	return nil
}

func (s *gormQuizzes) All(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *gormQuizzes) ByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).Preload("Questions").
		First(&quiz, "public_id = ?", publicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query quiz by public id: %w", err)
	}
	return &quiz, nil
}
