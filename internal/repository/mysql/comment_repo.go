package mysql

import (
	"database/sql"

	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *commentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	query := `INSERT INTO comments (id, post_id, account_id, content, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query,
		comment.ID, comment.PostID, comment.AccountID,
		comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err),
			zap.String("post_id", comment.PostID.String()))
		return err
	}

	util.Logger.Info("评论创建成功", zap.String("comment_id", comment.ID.String()))
	return nil
}

func (r *commentRepository) FindByID(id uuid.UUID) (*model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.account_id, c.content, c.created_at, c.updated_at,
               a.username, a.created_at
        FROM comments c
        LEFT JOIN accounts a ON c.account_id = a.id
        WHERE c.id = ?`

	var comment model.Comment
	var account model.Account
	err := r.db.QueryRow(query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AccountID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
		&account.Username, &account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	account.ID = comment.AccountID
	comment.Account = &account
	return &comment, nil
}

func (r *commentRepository) FindByPostID(postID uuid.UUID) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.post_id, c.account_id, c.content, c.created_at, c.updated_at,
               a.username, a.created_at
        FROM comments c
        LEFT JOIN accounts a ON c.account_id = a.id
        WHERE c.post_id = ?
        ORDER BY c.created_at ASC, c.id ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var account model.Account
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AccountID, &comment.Content,
			&comment.CreatedAt, &comment.UpdatedAt,
			&account.Username, &account.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		account.ID = comment.AccountID
		comment.Account = &account
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

func (r *commentRepository) Update(comment *model.Comment) error {
	query := `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, comment.Content, comment.UpdatedAt, comment.ID)
	if err != nil {
		util.Logger.Error("更新评论失败", zap.Error(err),
			zap.String("comment_id", comment.ID.String()))
		return err
	}
	return nil
}

func (r *commentRepository) CountByPostID(postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(`
        SELECT COUNT(*)
        FROM comments
        WHERE post_id = ?
    `, postID).Scan(&count)
	return count, err
}

func (r *commentRepository) DeleteCascade(id uuid.UUID) error {
	util.Logger.Info("开始删除评论", zap.String("comment_id", id.String()))

	// 使用事务保证评论和它的点赞一起删除
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM comment_likes WHERE comment_id = ?`, id)
	if err != nil {
		util.Logger.Error("删除评论点赞失败", zap.Error(err), zap.String("comment_id", id.String()))
		return err
	}

	_, err = tx.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.String("comment_id", id.String()))
		return err
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("评论删除成功", zap.String("comment_id", id.String()))
	return nil
}
