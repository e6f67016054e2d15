package service

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/repository/interfaces"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenBytes 会话令牌的随机字节数
const tokenBytes = 64

// AuthService 处理账户注册、登录和会话校验
type AuthService struct {
	accountRepo interfaces.AccountRepository
	sessionRepo interfaces.SessionRepository
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(accountRepo interfaces.AccountRepository, sessionRepo interfaces.SessionRepository) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
	}
}

// Register 注册新账户，用户名必须唯一
func (s *AuthService) Register(username, password string) (*model.Account, error) {
	exists, err := s.accountRepo.ExistsByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户名失败", err)
	}
	if exists {
		return nil, errors.New(errors.ErrAccountExists, "用户名已存在")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	if err := s.accountRepo.Create(account); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建账户失败", err)
	}

	util.Logger.Info("账户注册成功", zap.String("username", username))
	return account, nil
}

// Login 校验凭证并创建一个新会话。
// 每次登录都产生独立的会话，不会使之前的会话失效。
func (s *AuthService) Login(username, password string) (*model.Session, error) {
	account, err := s.accountRepo.FindByUsername(username)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询账户失败", err)
	}
	if account == nil {
		return nil, errors.New(errors.ErrAccountNotFound, "账户不存在")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "密码不正确")
	}

	token, err := generateToken()
	if err != nil {
		return nil, errors.Wrap(errors.ErrInternal, "生成令牌失败", err)
	}

	session := &model.Session{
		AccountID: account.ID,
		Token:     token,
		CreatedAt: time.Now(),
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建会话失败", err)
	}

	util.Logger.Info("登录成功", zap.String("account_id", account.ID.String()))
	return session, nil
}

// Logout 删除 Cookie 对应的那一条会话记录（单设备登出），
// 同一账户在其他设备上的会话不受影响
func (s *AuthService) Logout(cookie string) error {
	session, err := s.resolve(cookie)
	if err != nil {
		return err
	}

	if err := s.sessionRepo.Delete(session.AccountID, session.Token); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除会话失败", err)
	}

	util.Logger.Info("登出成功", zap.String("account_id", session.AccountID.String()))
	return nil
}

// ResolveSession 严格校验：Cookie 缺失、格式非法或没有匹配的会话记录时返回认证错误
func (s *AuthService) ResolveSession(cookie string) (*model.Session, error) {
	return s.resolve(cookie)
}

// IsSessionValid 宽松校验：任何失败路径都只返回 false，从不报错。
// 供容忍匿名或无效调用者的只读接口使用。
func (s *AuthService) IsSessionValid(cookie string) bool {
	_, err := s.resolve(cookie)
	return err == nil
}

// resolve 是 ResolveSession 和 IsSessionValid 共用的解析逻辑。
// 会话有效当且仅当持久化存储中存在匹配的 (账户ID, 令牌) 记录。
func (s *AuthService) resolve(cookie string) (*model.Session, error) {
	if cookie == "" {
		return nil, errors.New(errors.ErrUnauthorized, "缺少会话Cookie")
	}

	parsed, err := util.ParseSessionCookie(cookie)
	if err != nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "无效的会话Cookie", err)
	}
	if parsed == nil {
		return nil, errors.New(errors.ErrUnauthorized, "缺少会话Cookie")
	}

	session, err := s.sessionRepo.Find(parsed.AccountID, parsed.Token)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询会话失败", err)
	}
	if session == nil {
		return nil, errors.New(errors.ErrUnauthorized, "无效的令牌")
	}

	return session, nil
}

// generateToken 生成64字节的加密随机令牌并用 base64 编码
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// SessionValidator 是帖子和评论服务依赖的会话校验入口。
// 两种严格程度是有意设计的，不同接口按需选用。
type SessionValidator interface {
	ResolveSession(cookie string) (*model.Session, error)
	IsSessionValid(cookie string) bool
}

type AuthServiceInterface interface {
	Register(username, password string) (*model.Account, error)
	Login(username, password string) (*model.Session, error)
	Logout(cookie string) error
	SessionValidator
}

// 确保 AuthService 实现了 AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)
