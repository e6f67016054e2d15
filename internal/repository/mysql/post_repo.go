package mysql

import (
	"database/sql"

	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (id, account_id, content, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.Exec(query, post.ID, post.AccountID, post.Content, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	util.Logger.Info("帖子创建成功", zap.String("post_id", post.ID.String()))
	return nil
}

func (r *postRepository) FindByID(id uuid.UUID) (*model.Post, error) {
	query := `
        SELECT p.id, p.account_id, p.content, p.created_at, p.updated_at,
               a.username, a.created_at
        FROM posts p
        LEFT JOIN accounts a ON p.account_id = a.id
        WHERE p.id = ?`

	var post model.Post
	var account model.Account
	err := r.db.QueryRow(query, id).Scan(
		&post.ID, &post.AccountID, &post.Content,
		&post.CreatedAt, &post.UpdatedAt,
		&account.Username, &account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	account.ID = post.AccountID
	post.Account = &account
	return &post, nil
}

func (r *postRepository) ExistsByID(id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM posts WHERE id = ?)", id).Scan(&exists)
	return exists, err
}

func (r *postRepository) Update(post *model.Post) error {
	query := `UPDATE posts SET content = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.Exec(query, post.Content, post.UpdatedAt, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.String("post_id", post.ID.String()))
		return err
	}
	return nil
}

func (r *postRepository) FindLatest(page, pageSize int) ([]*model.Post, error) {
	offset := page * pageSize
	query := `
        SELECT p.id, p.account_id, p.content, p.created_at, p.updated_at,
               a.username, a.created_at
        FROM posts p
        LEFT JOIN accounts a ON p.account_id = a.id
        ORDER BY p.created_at DESC, p.id DESC
        LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		var account model.Account
		err := rows.Scan(
			&post.ID, &post.AccountID, &post.Content,
			&post.CreatedAt, &post.UpdatedAt,
			&account.Username, &account.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		account.ID = post.AccountID
		post.Account = &account
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

func (r *postRepository) DeleteCascade(id uuid.UUID) error {
	util.Logger.Info("开始删除帖子", zap.String("post_id", id.String()))

	// 使用事务保证帖子、评论和点赞一起删除
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        DELETE FROM comment_likes
        WHERE comment_id IN (SELECT id FROM comments WHERE post_id = ?)`, id)
	if err != nil {
		util.Logger.Error("删除评论点赞失败", zap.Error(err), zap.String("post_id", id.String()))
		return err
	}

	_, err = tx.Exec(`DELETE FROM comments WHERE post_id = ?`, id)
	if err != nil {
		util.Logger.Error("删除评论失败", zap.Error(err), zap.String("post_id", id.String()))
		return err
	}

	_, err = tx.Exec(`DELETE FROM post_likes WHERE post_id = ?`, id)
	if err != nil {
		util.Logger.Error("删除帖子点赞失败", zap.Error(err), zap.String("post_id", id.String()))
		return err
	}

	_, err = tx.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.String("post_id", id.String()))
		return err
	}

	if err := tx.Commit(); err != nil {
		util.Logger.Error("提交事务失败", zap.Error(err))
		return err
	}

	util.Logger.Info("帖子删除成功", zap.String("post_id", id.String()))
	return nil
}
