package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// 会话令牌的随机字节数，hex 编码后长度翻倍
const rememberTokenBytes = 32

// NewRememberToken 产生一个新的不透明会话令牌，所有语义都来自数据库中与用户的关联
func NewRememberToken() (string, error) {
	buf := make([]byte, rememberTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate remember token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
