package interfaces

import (
	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
)

// AccountRepository 接口定义了账户仓库应该实现的方法
type AccountRepository interface {
	Create(account *model.Account) error
	FindByID(id uuid.UUID) (*model.Account, error)
	FindByUsername(username string) (*model.Account, error)
	ExistsByUsername(username string) (bool, error)
}
