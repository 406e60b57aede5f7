package logic

import (
	"errors"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/payment"
	"gorm.io/gorm"
)

// SupportLogic 支持(出资)台账业务逻辑,
// 负责创建支付订单和网关回调的幂等入账
type SupportLogic struct {
	db      *gorm.DB
	gateway payment.Gateway
}

// NewSupportLogic 创建支持业务逻辑
func NewSupportLogic(db *gorm.DB, gateway payment.Gateway) *SupportLogic {
	return &SupportLogic{db: db, gateway: gateway}
}

// CreateSupport 创建支持订单并向网关获取支付token。
// 仅众筹中的项目可被支持; 订单号以支持记录自身ID为引用。
func (s *SupportLogic) CreateSupport(projectRef string, supporterId int64, amount int64) (*model.Support, error) {
	if amount <= 0 {
		return nil, apperr.New(apperr.ValidationFailed, "支持金额必须大于0。")
	}

	project, err := findProjectByRef(s.db, projectRef)
	if err != nil {
		return nil, err
	}
	if project.Status != model.ProjectStatusOnCampaign {
		return nil, apperr.New(apperr.PreconditionFailed, "项目不在众筹中, 无法支持。")
	}

	var supporter model.User
	if err := s.db.First(&supporter, supporterId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "用户不存在。")
		}
		return nil, err
	}

	support := &model.Support{
		ProjectId:         project.Id,
		SupporterId:       supporter.Id,
		SupportAmount:     amount,
		TransactionStatus: model.TransactionStatusPending,
	}
	if err := s.db.Create(support).Error; err != nil {
		return nil, err
	}

	token, err := s.gateway.CreateTransaction(support.OrderId(), amount, project.Basic.Title, payment.Customer{
		Name:  supporter.Name,
		Email: supporter.Email,
	})
	if err != nil {
		// 拿不到token的订单没有意义, 直接清掉
		if delErr := s.db.Delete(support).Error; delErr != nil {
			logger.Error("Failed to clean up support %d after gateway error: %v", support.Id, delErr)
		}
		return nil, err
	}

	support.PaymentToken = token
	if err := s.db.Model(support).Update("payment_token", token).Error; err != nil {
		return nil, err
	}

	return support, nil
}

// Reconcile 对账: 查询网关交易状态并更新本地记录。
// 首次进入已支付终态时把支持金额计入项目筹款, 通过
// "非已支付→已支付"的条件更新保证并发下最多入账一次。
func (s *SupportLogic) Reconcile(supportId int64) (*model.Support, error) {
	var support model.Support
	if err := s.db.First(&support, supportId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "支持记录不存在。")
		}
		return nil, err
	}

	txn, err := s.gateway.CheckTransaction(support.OrderId())
	if err != nil {
		return nil, err
	}

	status := model.TransactionStatus(txn.TransactionStatus)
	detail := map[string]interface{}{
		"transaction_id": txn.TransactionId,
		"status_code":    txn.StatusCode,
		"expiry_time":    txn.ExpiryTime,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if !status.IsPaid() {
			// 已支付是终态, 不被网关的旧状态拉回
			detail["transaction_status"] = status
			return tx.Model(&model.Support{}).
				Where("id = ? AND transaction_status NOT IN ?", support.Id, model.PaidStatuses()).
				Updates(detail).Error
		}

		// 条件更新作状态转换守卫, 只有一个调用方能从非已支付转入已支付
		detail["transaction_status"] = status
		res := tx.Model(&model.Support{}).
			Where("id = ? AND transaction_status NOT IN ?", support.Id, model.PaidStatuses()).
			Updates(detail)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// 早已入账, 只刷新交易信息
			delete(detail, "transaction_status")
			return tx.Model(&model.Support{}).Where("id = ?", support.Id).Updates(detail).Error
		}

		// 首次确认支付, 累加项目筹款
		return tx.Model(&model.Project{}).
			Where("id = ?", support.ProjectId).
			Update("funding", gorm.Expr("funding + ?", support.SupportAmount)).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&support, supportId).Error; err != nil {
		return nil, err
	}
	return &support, nil
}

// ReconcileByOrder 按网关订单号对账(webhook入口)
func (s *SupportLogic) ReconcileByOrder(orderId string) (*model.Support, error) {
	supportId, err := model.SupportIdFromOrder(orderId)
	if err != nil {
		return nil, apperr.New(apperr.ValidationFailed, "非法订单号。")
	}
	return s.Reconcile(supportId)
}

// DeleteSupport 删除支持记录, 仅支持者本人可操作。
// 已入账的记录回滚项目筹款, 筹款不足以回滚时拒绝删除。
func (s *SupportLogic) DeleteSupport(supportId int64, requesterId int64) error {
	var support model.Support
	if err := s.db.First(&support, supportId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "支持记录不存在。")
		}
		return err
	}
	if support.SupporterId != requesterId {
		return apperr.New(apperr.AuthorizationDenied, "无权删除该支持记录。")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if support.TransactionStatus.IsPaid() {
			res := tx.Model(&model.Project{}).
				Where("id = ? AND funding >= ?", support.ProjectId, support.SupportAmount).
				Update("funding", gorm.Expr("funding - ?", support.SupportAmount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return apperr.New(apperr.PreconditionFailed, "项目筹款不足以回滚该笔支持。")
			}
		}
		return tx.Delete(&support).Error
	})
}

// GetSupport 查询支持记录, 仅支持者本人可见
func (s *SupportLogic) GetSupport(supportId int64, requesterId int64) (*model.Support, error) {
	var support model.Support
	if err := s.db.Preload("Project").First(&support, supportId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "支持记录不存在。")
		}
		return nil, err
	}
	if support.SupporterId != requesterId {
		return nil, apperr.New(apperr.AuthorizationDenied, "无权查看该支持记录。")
	}
	return &support, nil
}

// SupporterCount 已支付支持者去重计数(同一人多笔只算一次)
func (s *SupportLogic) SupporterCount(projectId int64) (int64, error) {
	var count int64
	err := s.db.Model(&model.Support{}).
		Where("project_id = ? AND transaction_status IN ?", projectId, model.PaidStatuses()).
		Distinct("supporter_id").
		Count(&count).Error
	return count, err
}
