package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"gorm.io/gorm"
)

// CommentHandler 评论/回复/项目动态接口
type CommentHandler struct {
	commentLogic *logic.CommentLogic
}

// NewCommentHandler 创建评论接口
func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{
		commentLogic: logic.NewCommentLogic(db),
	}
}

// pagination 解析分页参数
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// CreateComment 发表评论
func (h *CommentHandler) CreateComment(c *gin.Context) {
	claims := auth.FromContext(c)

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "评论内容不能为空。"))
		return
	}

	comment, err := h.commentLogic.CreateComment(c.Param("projectId"), claims.UserId, req.Content)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "评论成功。", gin.H{"comment": comment})
}

// GetComments 获取项目评论列表
func (h *CommentHandler) GetComments(c *gin.Context) {
	page, pageSize := pagination(c)

	comments, total, err := h.commentLogic.GetComments(c.Param("projectId"), page, pageSize)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"comments":  comments,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// CreateReply 回复评论
func (h *CommentHandler) CreateReply(c *gin.Context) {
	claims := auth.FromContext(c)

	commentId, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		ErrorResponse(c, apperr.New(apperr.NotFound, "评论不存在。"))
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "回复内容不能为空。"))
		return
	}

	reply, err := h.commentLogic.CreateReply(commentId, claims.UserId, req.Content)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "回复成功。", gin.H{"reply": reply})
}

// GetReplies 获取评论回复列表
func (h *CommentHandler) GetReplies(c *gin.Context) {
	commentId, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil {
		ErrorResponse(c, apperr.New(apperr.NotFound, "评论不存在。"))
		return
	}

	page, pageSize := pagination(c)

	replies, total, err := h.commentLogic.GetReplies(commentId, page, pageSize)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"replies":   replies,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// CreateUpdate 发布项目动态
func (h *CommentHandler) CreateUpdate(c *gin.Context) {
	claims := auth.FromContext(c)

	var req ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "动态标题和内容不能为空。"))
		return
	}

	update, err := h.commentLogic.CreateUpdate(c.Param("projectId"), claims.UserId, req.Title, req.Content)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "发布动态成功。", gin.H{"update": update})
}

// GetUpdates 获取项目动态列表
func (h *CommentHandler) GetUpdates(c *gin.Context) {
	page, pageSize := pagination(c)

	updates, total, err := h.commentLogic.GetUpdates(c.Param("projectId"), page, pageSize)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"updates":   updates,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
