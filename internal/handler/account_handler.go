package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"gorm.io/gorm"
)

// AccountHandler 个人主页接口
type AccountHandler struct {
	userLogic *logic.UserLogic
	authMgr   *auth.Manager
}

// NewAccountHandler 创建个人主页接口
func NewAccountHandler(db *gorm.DB, authMgr *auth.Manager) *AccountHandler {
	return &AccountHandler{
		userLogic: logic.NewUserLogic(db),
		authMgr:   authMgr,
	}
}

// ProfileHeader 个人主页头部, 无需登录, 带token时判断是否本人
func (h *AccountHandler) ProfileHeader(c *gin.Context) {
	viewerSlug := ""
	authHeader := c.GetHeader("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
		if claims, err := h.authMgr.Verify(parts[1]); err == nil {
			viewerSlug = claims.Slug
		}
	}

	header, err := h.userLogic.ProfileHeader(c.Param("profileId"), viewerSlug)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", header)
}
