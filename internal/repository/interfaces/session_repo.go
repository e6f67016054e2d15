package interfaces

import (
	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
)

// SessionRepository 接口定义了会话仓库应该实现的方法。
// 会话以 (账户ID, 令牌) 为复合主键，没有过期时间，只能通过登出删除。
type SessionRepository interface {
	Create(session *model.Session) error
	Find(accountID uuid.UUID, token string) (*model.Session, error)
	Exists(accountID uuid.UUID, token string) (bool, error)
	Delete(accountID uuid.UUID, token string) error
}
