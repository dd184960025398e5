package store

import "errors"

// 仓储层统一的哨兵错误，上层用 errors.Is 判断，不需要感知 gorm
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateUsername = errors.New("username already taken")
)
