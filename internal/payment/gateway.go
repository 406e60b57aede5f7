package payment

// Transaction 网关交易状态
type Transaction struct {
	OrderId           string
	TransactionId     string
	StatusCode        string
	TransactionStatus string
	ExpiryTime        string
}

// Customer 下单人信息
type Customer struct {
	Name  string
	Email string
}

// Gateway 支付网关, 业务层仅依赖该接口
type Gateway interface {
	// CreateTransaction 以订单号创建交易, 返回支付token
	CreateTransaction(orderId string, amount int64, itemName string, customer Customer) (string, error)
	// CheckTransaction 查询订单当前交易状态
	CheckTransaction(orderId string) (*Transaction, error)
}
