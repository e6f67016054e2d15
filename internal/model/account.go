package model

import (
	"time"

	"github.com/google/uuid"
)

// Account 表示一个注册账户。用户名在创建后不可变更。
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session 表示一次登录产生的会话。
// 复合主键为 (AccountID, Token)；只有存在匹配记录的会话才有效。
type Session struct {
	AccountID uuid.UUID `json:"account_id"`
	Token     string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
