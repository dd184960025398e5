package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Question struct {
	gorm.Model

	QuizID  uint           `gorm:"column:quiz_id;index"`       // 所属测验
	Prompt  string         `gorm:"column:prompt"`              // 题干
	Options pq.StringArray `gorm:"column:options;type:text[]"` // 选项列表
	Answer  int            `gorm:"column:answer"`              // 正确选项在 Options 中的下标，不对外返回
}
