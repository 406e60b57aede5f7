package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/auth"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"gorm.io/gorm"
)

// SupportHandler 支持(出资)接口
type SupportHandler struct {
	supportLogic *logic.SupportLogic
	feedLogic    *logic.FeedLogic
}

// NewSupportHandler 创建支持接口
func NewSupportHandler(db *gorm.DB, gateway payment.Gateway) *SupportHandler {
	return &SupportHandler{
		supportLogic: logic.NewSupportLogic(db, gateway),
		feedLogic:    logic.NewFeedLogic(db),
	}
}

// Overview 支持页概览
func (h *SupportHandler) Overview(c *gin.Context) {
	overview, err := h.feedLogic.SupportOverview(c.Param("profileId"), c.Param("projectId"))
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"overviewData": overview,
	})
}

// Checkout 创建支持订单, 返回支付token
func (h *SupportHandler) Checkout(c *gin.Context) {
	claims := auth.FromContext(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "支持金额无效。"))
		return
	}

	support, err := h.supportLogic.CreateSupport(c.Param("projectId"), claims.UserId, req.SupportAmount)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "下单成功。", gin.H{
		"supportId":     support.Id,
		"orderId":       support.OrderId(),
		"paymentToken":  support.PaymentToken,
		"supportAmount": support.SupportAmount,
	})
}

// Status 轮询支持订单状态, 同时触发对账
func (h *SupportHandler) Status(c *gin.Context) {
	claims := auth.FromContext(c)

	supportId, err := strconv.ParseInt(c.Param("supportId"), 10, 64)
	if err != nil {
		ErrorResponse(c, apperr.New(apperr.NotFound, "支持记录不存在。"))
		return
	}

	// 先校验归属, 再对账刷新
	if _, err := h.supportLogic.GetSupport(supportId, claims.UserId); err != nil {
		ErrorResponse(c, err)
		return
	}

	support, err := h.supportLogic.Reconcile(supportId)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "获取数据成功。", gin.H{
		"supportId":         support.Id,
		"transactionStatus": support.TransactionStatus,
		"statusCode":        support.StatusCode,
		"expiryTime":        support.ExpiryTime,
	})
}

// UpdateStatus 网关webhook回调, 按订单号对账
func (h *SupportHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, apperr.New(apperr.ValidationFailed, "回调内容格式错误。"))
		return
	}

	support, err := h.supportLogic.ReconcileByOrder(req.OrderId)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "状态已更新。", gin.H{
		"supportId":         support.Id,
		"transactionStatus": support.TransactionStatus,
	})
}

// Delete 删除支持记录
func (h *SupportHandler) Delete(c *gin.Context) {
	claims := auth.FromContext(c)

	supportId, err := strconv.ParseInt(c.Param("supportId"), 10, 64)
	if err != nil {
		ErrorResponse(c, apperr.New(apperr.NotFound, "支持记录不存在。"))
		return
	}

	if err := h.supportLogic.DeleteSupport(supportId, claims.UserId); err != nil {
		ErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "删除成功。", nil)
}
