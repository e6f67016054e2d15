package util

import (
	"fmt"
	"strings"

	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
)

// SessionCookieName 会话 Cookie 的名称
const SessionCookieName = "session"

// ParseSessionCookie 从原始 Cookie 头中解析会话标识。
// Cookie 值格式为 "<accountID>:<token>"，按第一个冒号切分，
// 冒号之后的全部内容（包括后续冒号）都属于令牌。
//
// 返回 (nil, nil) 表示没有会话：头为空、不存在名为 session 的键、
// 或值中没有冒号分隔符。账户ID不是合法 UUID 时返回错误，
// 调用方应将其视为认证失败而不是无会话。
func ParseSessionCookie(cookie string) (*model.Session, error) {
	if cookie == "" {
		return nil, nil
	}

	pairs := strings.Split(cookie, ";")
	for _, pair := range pairs {
		keyValue := strings.SplitN(pair, "=", 2)
		if len(keyValue) != 2 || strings.TrimSpace(keyValue[0]) != SessionCookieName {
			continue
		}

		sessionParts := strings.SplitN(strings.TrimSpace(keyValue[1]), ":", 2)
		if len(sessionParts) != 2 {
			continue
		}

		accountID, err := uuid.Parse(sessionParts[0])
		if err != nil {
			return nil, fmt.Errorf("无效的账户ID: %w", err)
		}

		return &model.Session{
			AccountID: accountID,
			Token:     sessionParts[1],
		}, nil
	}

	return nil, nil
}

// BuildSessionCookie 构造登录成功时下发的 Set-Cookie 值
func BuildSessionCookie(accountID uuid.UUID, token string) string {
	return fmt.Sprintf("%s=%s:%s; Path=/; HttpOnly", SessionCookieName, accountID, token)
}

// ExpiredSessionCookie 构造登出时下发的 Set-Cookie 值，通知客户端丢弃会话
func ExpiredSessionCookie() string {
	return fmt.Sprintf("%s=; Path=/; Max-Age=0; HttpOnly", SessionCookieName)
}
