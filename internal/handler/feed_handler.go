package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"gorm.io/gorm"
)

// FeedHandler 发现页与项目展示接口
type FeedHandler struct {
	feedLogic *logic.FeedLogic
}

// NewFeedHandler 创建发现页接口
func NewFeedHandler(db *gorm.DB) *FeedHandler {
	return &FeedHandler{
		feedLogic: logic.NewFeedLogic(db),
	}
}

// Featured 精选项目
func (h *FeedHandler) Featured(c *gin.Context) {
	card, err := h.feedLogic.FeaturedProject()
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"featuredProject": card,
	})
}

// Recommended 推荐项目
func (h *FeedHandler) Recommended(c *gin.Context) {
	cards, err := h.feedLogic.RecommendedProjects()
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"recommendedProjects": cards,
	})
}

// ProjectHeader 项目页头部
func (h *FeedHandler) ProjectHeader(c *gin.Context) {
	header, err := h.feedLogic.ProjectHeader(c.Param("profileId"), c.Param("projectId"), c.Query("page"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", header)
}

// ProjectDetails 项目详情tab
func (h *FeedHandler) ProjectDetails(c *gin.Context) {
	details, err := h.feedLogic.ProjectDetails(c.Param("profileId"), c.Param("projectId"), c.Param("page"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", details)
}
