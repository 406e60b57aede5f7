package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"gorm.io/gorm"
)

// AuthHandler 账户认证接口
type AuthHandler struct {
	userLogic *logic.UserLogic
	authMgr   *auth.Manager
}

// NewAuthHandler 创建认证接口
func NewAuthHandler(db *gorm.DB, authMgr *auth.Manager) *AuthHandler {
	return &AuthHandler{
		userLogic: logic.NewUserLogic(db),
		authMgr:   authMgr,
	}
}

// Signup 注册
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "注册信息不完整或格式错误。"))
		return
	}

	user, err := h.userLogic.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功。", gin.H{
		"userId": user.Id,
		"slug":   user.Slug,
	})
}

// Login 登录并签发token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.AuthenticationRequired, "邮箱或密码错误。"))
		return
	}

	user, err := h.userLogic.Login(req.Email, req.Password)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	token, err := h.authMgr.Issue(user)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功。", gin.H{
		"token":  token,
		"email":  user.Email,
		"userId": user.Id,
		"slug":   user.Slug,
		"avatar": user.AvatarUrl,
	})
}

// Verify 校验token, 快过期时返回新token
func (h *AuthHandler) Verify(c *gin.Context) {
	claims := auth.FromContext(c)

	SuccessResponse(c, http.StatusOK, "认证成功。", gin.H{
		"authenticated": true,
		"refreshToken":  auth.RefreshFromContext(c),
		"email":         claims.Email,
		"userId":        claims.UserId,
		"slug":          claims.Slug,
		"avatar":        claims.Avatar,
	})
}
