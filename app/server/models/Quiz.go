package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quiz struct {
	gorm.Model

	PublicID    uuid.UUID `gorm:"column:public_id;type:uuid;uniqueIndex"` // 对外分享用的 ID ，避免暴露自增主键
	Title       string    `gorm:"column:title"`                           // 测验标题
	Description string    `gorm:"column:description"`                     // 测验描述（介绍）
	OwnerID     uint      `gorm:"column:owner_id;index"`                  // 创建者的用户 ID

	Questions []Question // 测验包含的题目
}
