package payment

import (
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rizaldinur/crowdfunding-api/internal/config"
)

// 支付链接有效期(分钟)
const expiryMinutes = 15

// MidtransGateway midtrans支付网关客户端
type MidtransGateway struct {
	snap snap.Client
	core coreapi.Client
}

// NewMidtransGateway 创建midtrans客户端
func NewMidtransGateway(cfg config.MidtransConfig) *MidtransGateway {
	env := midtrans.Sandbox
	if cfg.Environment == "production" {
		env = midtrans.Production
	}

	g := &MidtransGateway{}
	g.snap.New(cfg.ServerKey, env)
	g.core.New(cfg.ServerKey, env)
	return g
}

// CreateTransaction 创建snap交易并返回支付token
func (g *MidtransGateway) CreateTransaction(orderId string, amount int64, itemName string, customer Customer) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderId,
			GrossAmt: amount,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    orderId,
				Name:  itemName,
				Price: amount,
				Qty:   1,
			},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.Name,
			Email: customer.Email,
		},
		Expiry: &snap.ExpiryDetails{
			Unit:     "minutes",
			Duration: expiryMinutes,
		},
	}

	resp, midErr := g.snap.CreateTransaction(req)
	if midErr != nil {
		return "", fmt.Errorf("创建网关交易失败: %w", midErr)
	}

	return resp.Token, nil
}

// CheckTransaction 查询订单交易状态
func (g *MidtransGateway) CheckTransaction(orderId string) (*Transaction, error) {
	resp, midErr := g.core.CheckTransaction(orderId)
	if midErr != nil {
		return nil, fmt.Errorf("查询网关交易失败: %w", midErr)
	}

	return &Transaction{
		OrderId:           resp.OrderID,
		TransactionId:     resp.TransactionID,
		StatusCode:        resp.StatusCode,
		TransactionStatus: resp.TransactionStatus,
		ExpiryTime:        resp.ExpiryTime,
	}, nil
}
