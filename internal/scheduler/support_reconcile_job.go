package scheduler

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
	"github.com/rizaldinur/crowdfunding-api/internal/logic"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"gorm.io/gorm"
)

// SupportReconcileJob 支持订单对账任务:
// 定期向网关核对待支付订单, 兜底丢失的webhook回调
type SupportReconcileJob struct {
	db           *gorm.DB
	supportLogic *logic.SupportLogic
	interval     time.Duration
	poolSize     int
}

// NewSupportReconcileJob 创建对账任务
func NewSupportReconcileJob(db *gorm.DB, gateway payment.Gateway, interval time.Duration, poolSize int) *SupportReconcileJob {
	if poolSize <= 0 {
		poolSize = 8
	}
	return &SupportReconcileJob{
		db:           db,
		supportLogic: logic.NewSupportLogic(db, gateway),
		interval:     interval,
		poolSize:     poolSize,
	}
}

// GetName 获取任务名称
func (j *SupportReconcileJob) GetName() string {
	return "support_reconciler"
}

// GetSchedule 获取调度配置
func (j *SupportReconcileJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *SupportReconcileJob) Execute() {
	// 只核对已拿到支付token的待支付订单, 创建后留出一分钟支付时间
	cutoff := time.Now().Add(-time.Minute)

	var supports []model.Support
	err := j.db.Where("transaction_status = ? AND payment_token <> '' AND created_at <= ?",
		model.TransactionStatusPending, cutoff).
		Limit(200).
		Find(&supports).Error
	if err != nil {
		logger.Error("Failed to fetch pending supports: %v", err)
		return
	}
	if len(supports) == 0 {
		return
	}

	pool, err := ants.NewPool(j.poolSize)
	if err != nil {
		logger.Error("Failed to create reconcile pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for _, support := range supports {
		supportId := support.Id
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := j.supportLogic.Reconcile(supportId); err != nil {
				logger.Warn("Failed to reconcile support %d: %v", supportId, err)
			}
		})
		if submitErr != nil {
			wg.Done()
			logger.Error("Failed to submit reconcile task for support %d: %v", supportId, submitErr)
		}
	}
	wg.Wait()

	logger.Info("Support reconcile completed for %d pending supports", len(supports))
}
