package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID           uuid.UUID `json:"id"`
	AccountID    uuid.UUID `json:"account_id"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Account      *Account  `json:"account,omitempty"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	IsLiked      bool      `json:"is_liked"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	AccountID uuid.UUID `json:"account_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Account   *Account  `json:"account,omitempty"`
	LikeCount int64     `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
}

// PostLike 的复合主键为 (PostID, AccountID)，同一账户对同一帖子至多一条记录。
type PostLike struct {
	PostID    uuid.UUID `json:"post_id"`
	AccountID uuid.UUID `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentLike 的复合主键为 (CommentID, AccountID)。
type CommentLike struct {
	CommentID uuid.UUID `json:"comment_id"`
	AccountID uuid.UUID `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostStats 帖子统计信息，目前只包含热度分数
type PostStats struct {
	TrendingScore int64 `json:"trending_score"`
}
