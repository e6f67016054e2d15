package mysql

import (
	"database/sql"

	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *accountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	query := `INSERT INTO accounts (id, username, password_hash, created_at)
              VALUES (?, ?, ?, ?)`
	_, err := r.db.Exec(query, account.ID, account.Username, account.PasswordHash, account.CreatedAt)
	if err != nil {
		util.Logger.Error("创建账户失败", zap.Error(err), zap.String("username", account.Username))
		return err
	}

	util.Logger.Info("账户创建成功", zap.String("account_id", account.ID.String()))
	return nil
}

func (r *accountRepository) FindByID(id uuid.UUID) (*model.Account, error) {
	query := `SELECT id, username, password_hash, created_at FROM accounts WHERE id = ?`

	var account model.Account
	err := r.db.QueryRow(query, id).Scan(
		&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByUsername(username string) (*model.Account, error) {
	query := `SELECT id, username, password_hash, created_at FROM accounts WHERE username = ?`

	var account model.Account
	err := r.db.QueryRow(query, username).Scan(
		&account.ID, &account.Username, &account.PasswordHash, &account.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ExistsByUsername(username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow("SELECT EXISTS(SELECT 1 FROM accounts WHERE username = ?)", username).Scan(&exists)
	return exists, err
}
