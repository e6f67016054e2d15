package interfaces

import (
	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
)

// PostRepository 接口定义了帖子仓库应该实现的方法
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id uuid.UUID) (*model.Post, error)
	ExistsByID(id uuid.UUID) (bool, error)
	Update(post *model.Post) error
	// FindLatest 按创建时间降序返回第 page 页（从0开始），
	// 同一时间戳用ID兜底排序保证顺序稳定
	FindLatest(page, pageSize int) ([]*model.Post, error)
	// DeleteCascade 在一个事务里删除帖子及其评论、评论点赞和帖子点赞
	DeleteCascade(id uuid.UUID) error
}
