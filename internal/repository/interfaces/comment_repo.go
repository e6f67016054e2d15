package interfaces

import (
	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
)

// CommentRepository 接口定义了评论仓库应该实现的方法
type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(id uuid.UUID) (*model.Comment, error)
	FindByPostID(postID uuid.UUID) ([]*model.Comment, error)
	Update(comment *model.Comment) error
	CountByPostID(postID uuid.UUID) (int64, error)
	// DeleteCascade 在一个事务里删除评论及其点赞记录
	DeleteCascade(id uuid.UUID) error
}
