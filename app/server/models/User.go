package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一，区分大小写
	IsAdmin  bool   `gorm:"column:is_admin"`             // 是否为管理员

	// 登录与授权认证相关
	Password      string `gorm:"column:password"`             // 密码，使用 argon2id 储存
	RememberToken string `gorm:"column:remember_token;index"` // 会话令牌，空字符串表示未登录，登出时清空
}
