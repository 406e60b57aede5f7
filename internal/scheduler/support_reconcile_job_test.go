package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeGateway 测试用支付网关
type fakeGateway struct {
	mu       sync.Mutex
	statuses map[string]string
}

func (f *fakeGateway) CreateTransaction(orderId string, amount int64, itemName string, customer payment.Customer) (string, error) {
	return "token-" + orderId, nil
}

func (f *fakeGateway) CheckTransaction(orderId string) (*payment.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	status, ok := f.statuses[orderId]
	if !ok {
		status = string(model.TransactionStatusPending)
	}
	return &payment.Transaction{
		OrderId:           orderId,
		TransactionId:     "txn-" + orderId,
		StatusCode:        "200",
		TransactionStatus: status,
	}, nil
}

func createSupport(t *testing.T, db *gorm.DB, projectId int64, amount int64, token string, createdAt time.Time) *model.Support {
	t.Helper()
	support := &model.Support{
		ProjectId:         projectId,
		SupporterId:       1,
		SupportAmount:     amount,
		PaymentToken:      token,
		TransactionStatus: model.TransactionStatusPending,
	}
	require.NoError(t, db.Create(support).Error)
	require.NoError(t, db.Model(support).Update("created_at", createdAt).Error)
	return support
}

func TestSupportReconcileJobCreditsPaidOrders(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()
	end := now.Add(10 * 24 * time.Hour)
	project := createProject(t, db, "kopi-kampus", model.ProjectStatusOnCampaign, nil, &end)

	old := now.Add(-5 * time.Minute)
	paid := createSupport(t, db, project.Id, 50000, "token-a", old)
	expired := createSupport(t, db, project.Id, 30000, "token-b", old)
	// 没有token的订单和刚创建的订单都不参与对账
	createSupport(t, db, project.Id, 10000, "", old)
	fresh := createSupport(t, db, project.Id, 20000, "token-c", now)

	gateway := &fakeGateway{statuses: map[string]string{
		paid.OrderId():    string(model.TransactionStatusSettlement),
		expired.OrderId(): string(model.TransactionStatusExpire),
	}}

	// sqlite内存库不适合并发写, 用单并发池
	job := NewSupportReconcileJob(db, gateway, time.Minute, 1)
	job.Execute()

	var reloaded model.Support
	require.NoError(t, db.First(&reloaded, paid.Id).Error)
	require.Equal(t, model.TransactionStatusSettlement, reloaded.TransactionStatus)
	reloaded = model.Support{}
	require.NoError(t, db.First(&reloaded, expired.Id).Error)
	require.Equal(t, model.TransactionStatusExpire, reloaded.TransactionStatus)
	reloaded = model.Support{}
	require.NoError(t, db.First(&reloaded, fresh.Id).Error)
	require.Equal(t, model.TransactionStatusPending, reloaded.TransactionStatus)

	var reloadedProject model.Project
	require.NoError(t, db.First(&reloadedProject, project.Id).Error)
	require.Equal(t, int64(50000), reloadedProject.Funding)

	// 再跑一轮不重复入账
	job.Execute()
	require.NoError(t, db.First(&reloadedProject, project.Id).Error)
	require.Equal(t, int64(50000), reloadedProject.Funding)
}
