package mysql

import (
	"database/sql"

	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type postLikeRepository struct {
	db *sql.DB
}

func NewPostLikeRepository(db *sql.DB) *postLikeRepository {
	return &postLikeRepository{db: db}
}

// Save 幂等插入点赞记录。(post_id, account_id) 是主键，
// INSERT IGNORE 让重复点赞成为 no-op 而不是报错。
func (r *postLikeRepository) Save(like *model.PostLike) error {
	query := `INSERT IGNORE INTO post_likes (post_id, account_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, like.PostID, like.AccountID, like.CreatedAt)
	if err != nil {
		util.Logger.Error("创建帖子点赞失败", zap.Error(err),
			zap.String("post_id", like.PostID.String()),
			zap.String("account_id", like.AccountID.String()))
		return err
	}
	return nil
}

func (r *postLikeRepository) CountByPost(postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(`
        SELECT COUNT(*)
        FROM post_likes
        WHERE post_id = ?
    `, postID).Scan(&count)
	return count, err
}

func (r *postLikeRepository) Exists(postID, accountID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM post_likes
            WHERE post_id = ? AND account_id = ?
        )`, postID, accountID).Scan(&exists)
	return exists, err
}

func (r *postLikeRepository) DeleteAllByPost(postID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM post_likes WHERE post_id = ?`, postID)
	if err != nil {
		util.Logger.Error("删除帖子点赞失败", zap.Error(err), zap.String("post_id", postID.String()))
	}
	return err
}

type commentLikeRepository struct {
	db *sql.DB
}

func NewCommentLikeRepository(db *sql.DB) *commentLikeRepository {
	return &commentLikeRepository{db: db}
}

// Save 幂等插入评论点赞记录，语义与帖子点赞一致
func (r *commentLikeRepository) Save(like *model.CommentLike) error {
	query := `INSERT IGNORE INTO comment_likes (comment_id, account_id, created_at) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, like.CommentID, like.AccountID, like.CreatedAt)
	if err != nil {
		util.Logger.Error("创建评论点赞失败", zap.Error(err),
			zap.String("comment_id", like.CommentID.String()),
			zap.String("account_id", like.AccountID.String()))
		return err
	}
	return nil
}

func (r *commentLikeRepository) CountByComment(commentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(`
        SELECT COUNT(*)
        FROM comment_likes
        WHERE comment_id = ?
    `, commentID).Scan(&count)
	return count, err
}

func (r *commentLikeRepository) Exists(commentID, accountID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM comment_likes
            WHERE comment_id = ? AND account_id = ?
        )`, commentID, accountID).Scan(&exists)
	return exists, err
}

func (r *commentLikeRepository) DeleteAllByComment(commentID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM comment_likes WHERE comment_id = ?`, commentID)
	if err != nil {
		util.Logger.Error("删除评论点赞失败", zap.Error(err), zap.String("comment_id", commentID.String()))
	}
	return err
}
