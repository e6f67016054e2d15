package service

import (
	"encoding/base64"
	"testing"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/model"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// TestRegister 测试账户注册功能
func TestRegister(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockSessions := new(MockSessionRepository)
	service := NewAuthService(mockAccounts, mockSessions)

	// 测试成功注册
	mockAccounts.On("ExistsByUsername", "alice").Return(false, nil)
	mockAccounts.On("Create", mock.AnythingOfType("*model.Account")).Return(nil)

	account, err := service.Register("alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.NotEqual(t, uuid.Nil, account.ID)
	// 密码必须以哈希存储
	assert.NotEqual(t, "pw1", account.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pw1")))
	mockAccounts.AssertExpectations(t)

	// 测试用户名已存在
	mockAccounts.On("ExistsByUsername", "existing").Return(true, nil)
	_, err = service.Register("existing", "pw1")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrAccountExists, appErr.Code)
}

// TestLogin 测试登录和会话创建
func TestLogin(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockSessions := new(MockSessionRepository)
	service := NewAuthService(mockAccounts, mockSessions)

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.DefaultCost)
	account := &model.Account{ID: uuid.New(), Username: "alice", PasswordHash: string(hash)}

	mockAccounts.On("FindByUsername", "alice").Return(account, nil)
	mockSessions.On("Create", mock.AnythingOfType("*model.Session")).Return(nil)

	session, err := service.Login("alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, account.ID, session.AccountID)

	// 令牌必须有64字节的随机熵
	raw, err := base64.StdEncoding.DecodeString(session.Token)
	assert.NoError(t, err)
	assert.Len(t, raw, 64)

	// 再次登录产生不同的令牌，且不影响已有会话
	session2, err := service.Login("alice", "pw1")
	assert.NoError(t, err)
	assert.NotEqual(t, session.Token, session2.Token)

	// 测试密码错误
	_, err = service.Login("alice", "wrong")
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrInvalidCredentials, appErr.Code)

	// 测试账户不存在
	mockAccounts.On("FindByUsername", "nobody").Return(nil, nil)
	_, err = service.Login("nobody", "pw1")
	assert.Error(t, err)
	appErr, ok = err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrAccountNotFound, appErr.Code)
}

// TestResolveSession 测试严格的会话解析
func TestResolveSession(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockSessions := new(MockSessionRepository)
	service := NewAuthService(mockAccounts, mockSessions)

	accountID := uuid.New()
	stored := &model.Session{AccountID: accountID, Token: "tok123"}
	mockSessions.On("Find", accountID, "tok123").Return(stored, nil)

	// 有效会话
	session, err := service.ResolveSession(util.BuildSessionCookie(accountID, "tok123"))
	assert.NoError(t, err)
	assert.Equal(t, accountID, session.AccountID)

	// Cookie 缺失
	_, err = service.ResolveSession("")
	assertAuthFailure(t, err)

	// 没有名为 session 的键
	_, err = service.ResolveSession("theme=dark")
	assertAuthFailure(t, err)

	// 账户ID不是合法UUID
	_, err = service.ResolveSession("session=abc:tok")
	assertAuthFailure(t, err)

	// 存储中没有匹配的会话记录
	otherID := uuid.New()
	mockSessions.On("Find", otherID, "ghost").Return(nil, nil)
	_, err = service.ResolveSession(util.BuildSessionCookie(otherID, "ghost"))
	assertAuthFailure(t, err)
}

// TestIsSessionValid 宽松校验在任何失败路径上都只返回 false
func TestIsSessionValid(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockSessions := new(MockSessionRepository)
	service := NewAuthService(mockAccounts, mockSessions)

	accountID := uuid.New()
	stored := &model.Session{AccountID: accountID, Token: "tok123"}
	mockSessions.On("Find", accountID, "tok123").Return(stored, nil)
	mockSessions.On("Find", accountID, "bad").Return(nil, nil)

	assert.True(t, service.IsSessionValid(util.BuildSessionCookie(accountID, "tok123")))
	assert.False(t, service.IsSessionValid(util.BuildSessionCookie(accountID, "bad")))
	assert.False(t, service.IsSessionValid(""))
	assert.False(t, service.IsSessionValid("session=not-a-uuid:tok"))
}

// TestLogout 测试单设备登出：只删除匹配的那条会话
func TestLogout(t *testing.T) {
	mockAccounts := new(MockAccountRepository)
	mockSessions := new(MockSessionRepository)
	service := NewAuthService(mockAccounts, mockSessions)

	accountID := uuid.New()
	stored := &model.Session{AccountID: accountID, Token: "tok123"}
	mockSessions.On("Find", accountID, "tok123").Return(stored, nil)
	mockSessions.On("Delete", accountID, "tok123").Return(nil)

	err := service.Logout(util.BuildSessionCookie(accountID, "tok123"))
	assert.NoError(t, err)
	mockSessions.AssertCalled(t, "Delete", accountID, "tok123")

	// 无效 Cookie 登出失败，不触发删除
	err = service.Logout("")
	assertAuthFailure(t, err)
	mockSessions.AssertNumberOfCalls(t, "Delete", 1)
}

func assertAuthFailure(t *testing.T, err error) {
	t.Helper()
	assert.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	assert.True(t, ok)
	assert.Equal(t, errors.ErrUnauthorized, appErr.Code)
}
