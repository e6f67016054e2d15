package interfaces

import (
	"github.com/millerforce/CSCN73060-Project-1/internal/model"

	"github.com/google/uuid"
)

// PostLikeRepository 接口定义了帖子点赞仓库应该实现的方法。
// Save 是幂等插入：同一 (帖子, 账户) 重复点赞不产生新记录也不报错。
// 点赞不能单独取消，只随帖子删除级联清除。
type PostLikeRepository interface {
	Save(like *model.PostLike) error
	CountByPost(postID uuid.UUID) (int64, error)
	Exists(postID, accountID uuid.UUID) (bool, error)
	DeleteAllByPost(postID uuid.UUID) error
}

// CommentLikeRepository 接口定义了评论点赞仓库应该实现的方法
type CommentLikeRepository interface {
	Save(like *model.CommentLike) error
	CountByComment(commentID uuid.UUID) (int64, error)
	Exists(commentID, accountID uuid.UUID) (bool, error)
	DeleteAllByComment(commentID uuid.UUID) error
}
