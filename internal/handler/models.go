package handler

import (
	"github.com/rizaldinur/crowdfunding-api/internal/model"
)

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BasicSectionRequest 基本信息分区请求
type BasicSectionRequest struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Category   string `json:"category"`
	Location   string `json:"location"`
	ImageUrl   string `json:"imageUrl"`
	FundTarget int64  `json:"fundTarget"`
	LaunchDate string `json:"launchDate"` // RFC3339, 可为空
	Duration   int    `json:"duration"`
}

// StorySectionRequest 项目故事分区请求
type StorySectionRequest struct {
	Detail     string             `json:"detail"`
	Benefits   string             `json:"benefits"`
	Challenges string             `json:"challenges"`
	Faqs       []model.ProjectFaq `json:"faqs"`
}

// PaymentSectionRequest 收款信息分区请求
type PaymentSectionRequest struct {
	BusinessType      string `json:"businessType"`
	BankName          string `json:"bankName"`
	BankAccountNumber string `json:"bankAccountNumber"`
}

// ProfileSectionRequest 创建者资料分区请求
type ProfileSectionRequest struct {
	Slug      string `json:"slug"`
	Biography string `json:"biography"`
}

// ReviewDecisionRequest 审核决定请求
type ReviewDecisionRequest struct {
	Approve bool `json:"approve"`
}

// CheckoutRequest 支持下单请求
type CheckoutRequest struct {
	SupportAmount int64 `json:"supportAmount" binding:"required,min=1"`
}

// UpdateStatusRequest 网关回调/轮询更新请求
type UpdateStatusRequest struct {
	OrderId string `json:"order_id" binding:"required"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ProjectUpdateRequest 项目动态请求
type ProjectUpdateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
