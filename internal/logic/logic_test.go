package logic

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB 每个测试用独立的共享缓存内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Support{},
		&model.Comment{},
		&model.Reply{},
		&model.ProjectUpdate{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:      name,
		Email:     email,
		Password:  "not-a-real-hash",
		Slug:      strings.ToLower(strings.ReplaceAll(name, " ", "-")),
		Biography: "学生创业者",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestProject 创建一个四个分区均已填写完整的项目
func createTestProject(t *testing.T, db *gorm.DB, creator *model.User, slug string, status model.ProjectStatus) *model.Project {
	t.Helper()
	project := &model.Project{
		Slug:      slug,
		CreatorId: creator.Id,
		Status:    status,
		Basic: model.ProjectBasic{
			Title:      "校园咖啡车",
			SubTitle:   "一辆面向学生的移动咖啡车",
			Category:   "food",
			Location:   "杭州",
			ImageUrl:   "http://example.com/cover.jpg",
			FundTarget: 5000000,
			Duration:   30,
		},
		Story: model.ProjectStory{
			Detail:     "项目详情",
			Benefits:   "支持者收益",
			Challenges: "执行风险",
		},
		Payment: model.ProjectPayment{
			BusinessType:      "individual",
			BankName:          "BCA",
			BankAccountNumber: "1234567890",
		},
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func requireErrKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, kind, appErr.Kind)
}

// fakeGateway 测试用支付网关
type fakeGateway struct {
	mu         sync.Mutex
	statuses   map[string]string
	createErr  error
	created    []string
	checkCalls int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{statuses: map[string]string{}}
}

func (f *fakeGateway) CreateTransaction(orderId string, amount int64, itemName string, customer payment.Customer) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, orderId)
	return "token-" + orderId, nil
}

func (f *fakeGateway) CheckTransaction(orderId string) (*payment.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkCalls++
	status, ok := f.statuses[orderId]
	if !ok {
		status = string(model.TransactionStatusPending)
	}
	return &payment.Transaction{
		OrderId:           orderId,
		TransactionId:     "txn-" + orderId,
		StatusCode:        "200",
		TransactionStatus: status,
		ExpiryTime:        time.Now().Add(15 * time.Minute).Format("2006-01-02 15:04:05"),
	}, nil
}

func (f *fakeGateway) setStatus(orderId, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[orderId] = status
}
