package types

import "quiz-backend/app/server/models"

// UserInfo 是用户的公开投影，永远不包含密码 hash 和会话令牌
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func NewUserInfo(user *models.User) *UserInfo {
	return &UserInfo{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

type VerifyResponse struct {
	Message string    `json:"message"`
	User    *UserInfo `json:"user"`
}
