package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Support 支持(出资)记录, 通过支付网关交易跟踪
type Support struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId   int64 `json:"project_id" gorm:"not null;index"`
	SupporterId int64 `json:"supporter_id" gorm:"not null;index"`

	// 支持金额, 确认支付后计入项目筹款总额, 最多入账一次
	SupportAmount int64 `json:"support_amount" gorm:"not null"`

	// 网关交易信息
	PaymentToken      string            `json:"payment_token"`
	TransactionId     string            `json:"transaction_id"`
	StatusCode        string            `json:"status_code"`
	TransactionStatus TransactionStatus `json:"transaction_status" gorm:"default:'pending'"`
	ExpiryTime        string            `json:"expiry_time"`

	// 关联
	Project   Project `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	Supporter User    `json:"supporter,omitempty" gorm:"foreignKey:SupporterId"`
}

// TransactionStatus 网关交易状态
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"    // 待支付
	TransactionStatusCapture    TransactionStatus = "capture"    // 已扣款
	TransactionStatusSettlement TransactionStatus = "settlement" // 已结算
	TransactionStatusDeny       TransactionStatus = "deny"       // 已拒绝
	TransactionStatusCancel     TransactionStatus = "cancel"     // 已取消
	TransactionStatusExpire     TransactionStatus = "expire"     // 已过期
)

// PaidStatuses 计入筹款的终态
func PaidStatuses() []TransactionStatus {
	return []TransactionStatus{TransactionStatusCapture, TransactionStatusSettlement}
}

// IsPaid 是否已支付终态
func (s TransactionStatus) IsPaid() bool {
	return s == TransactionStatusCapture || s == TransactionStatusSettlement
}

const supportOrderPrefix = "SUPPORT-"

// OrderId 网关订单号, 以支持记录自身ID为订单引用
func (s *Support) OrderId() string {
	return fmt.Sprintf("%s%d", supportOrderPrefix, s.Id)
}

// SupportIdFromOrder 从网关订单号解析支持记录ID
func SupportIdFromOrder(orderId string) (int64, error) {
	raw, ok := strings.CutPrefix(orderId, supportOrderPrefix)
	if !ok {
		return 0, fmt.Errorf("非法订单号: %s", orderId)
	}
	return strconv.ParseInt(raw, 10, 64)
}

// TableName 自定义表名
func (Support) TableName() string {
	return "support"
}
