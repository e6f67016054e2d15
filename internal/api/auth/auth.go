package auth

import (
	"net/http"
	"unicode"

	"github.com/millerforce/CSCN73060-Project-1/internal/errors"
	"github.com/millerforce/CSCN73060-Project-1/internal/service"
	"github.com/millerforce/CSCN73060-Project-1/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 处理与账户和会话相关的HTTP请求
type AuthHandler struct {
	authService service.AuthServiceInterface
}

// NewAuthHandler 创建一个新的 AuthHandler 实例
func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{authService}
}

// Register 处理账户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var registerData struct {
		Username string `json:"username" binding:"required,notblank"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&registerData); err != nil {
		util.Logger.Warn("注册失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	if !isPasswordStrong(registerData.Password) {
		errors.HandleError(c, errors.New(errors.ErrWeakPassword, "密码强度不足"))
		return
	}

	account, err := h.authService.Register(registerData.Username, registerData.Password)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrAccountExists {
			util.Logger.Warn("注册失败，用户名已存在",
				zap.String("username", registerData.Username))
			errors.HandleError(c, err)
			return
		}
		util.Logger.Error("注册失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "注册失败", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"account_id": account.ID,
		"username":   account.Username,
	})
}

// Login 处理登录请求，成功后下发会话Cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var loginData struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	session, err := h.authService.Login(loginData.Username, loginData.Password)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	// gin 的 SetCookie 会对值做URL转义，破坏 "<id>:<token>" 格式，
	// 所以这里手工拼接 Set-Cookie 头
	c.Header("Set-Cookie", util.BuildSessionCookie(session.AccountID, session.Token))
	errors.HandleSuccess(c, gin.H{
		"account_id": session.AccountID,
	}, "登录成功")
}

// Logout 处理登出请求，销毁会话并下发过期Cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.GetHeader("Cookie")); err != nil {
		errors.HandleError(c, err)
		return
	}

	c.Header("Set-Cookie", util.ExpiredSessionCookie())
	c.Status(http.StatusNoContent)
}

func isPasswordStrong(password string) bool {
	var (
		hasUpper  = false
		hasLower  = false
		hasNumber = false
	)
	if len(password) < 8 {
		return false
	}
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	return hasUpper && hasLower && hasNumber
}
