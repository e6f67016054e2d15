package mysql

import (
	"database/sql"

	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	query := `INSERT INTO sessions (account_id, token, created_at) VALUES (?, ?, ?)`
	_, err := r.db.Exec(query, session.AccountID, session.Token, session.CreatedAt)
	if err != nil {
		util.Logger.Error("创建会话失败", zap.Error(err),
			zap.String("account_id", session.AccountID.String()))
		return err
	}
	return nil
}

func (r *sessionRepository) Find(accountID uuid.UUID, token string) (*model.Session, error) {
	query := `SELECT account_id, token, created_at FROM sessions
              WHERE account_id = ? AND token = ?`

	var session model.Session
	err := r.db.QueryRow(query, accountID, token).Scan(
		&session.AccountID, &session.Token, &session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Exists(accountID uuid.UUID, token string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM sessions
            WHERE account_id = ? AND token = ?
        )`, accountID, token).Scan(&exists)
	return exists, err
}

func (r *sessionRepository) Delete(accountID uuid.UUID, token string) error {
	query := `DELETE FROM sessions WHERE account_id = ? AND token = ?`
	_, err := r.db.Exec(query, accountID, token)
	if err != nil {
		util.Logger.Error("删除会话失败", zap.Error(err),
			zap.String("account_id", accountID.String()))
		return err
	}

	util.Logger.Info("会话删除成功", zap.String("account_id", accountID.String()))
	return nil
}
