package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"gorm.io/gorm"
)

// CampaignStatusJob 众筹状态扫描任务: 按时间批量推进项目状态
type CampaignStatusJob struct {
	db           *gorm.DB
	interval     time.Duration
	launchWindow time.Duration // 上线补扫窗口, 超窗的项目不再自动上线
}

// NewCampaignStatusJob 创建状态扫描任务
func NewCampaignStatusJob(db *gorm.DB, interval, launchWindow time.Duration) *CampaignStatusJob {
	return &CampaignStatusJob{
		db:           db,
		interval:     interval,
		launchWindow: launchWindow,
	}
}

// GetName 获取任务名称
func (j *CampaignStatusJob) GetName() string {
	return "campaign_status_sweeper"
}

// GetSchedule 获取调度配置
func (j *CampaignStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务
func (j *CampaignStatusJob) Execute() {
	launched, finished, err := j.Sweep(time.Now())
	if err != nil {
		logger.Error("Campaign status sweep failed: %v", err)
		return
	}
	logger.Info("Campaign status sweep completed. Launched %d, finished %d projects", launched, finished)
}

// Sweep 执行一次扫描, 返回两条规则各自影响的项目数。
// 两条更新都是条件批量更新, 天然幂等, 重复执行不会产生额外变更。
func (j *CampaignStatusJob) Sweep(now time.Time) (int64, int64, error) {
	// 待上线→众筹中: 上线时间已到且未超出补扫窗口
	launchRes := j.db.Model(&model.Project{}).
		Where("status = ? AND basic_launch_date IS NOT NULL AND basic_launch_date <= ? AND basic_launch_date > ?",
			model.ProjectStatusLaunching, now, now.Add(-j.launchWindow)).
		Update("status", model.ProjectStatusOnCampaign)
	if launchRes.Error != nil {
		return 0, 0, launchRes.Error
	}

	// 超窗未上线的项目不自动处理, 仅暴露给运维
	var missed int64
	err := j.db.Model(&model.Project{}).
		Where("status = ? AND basic_launch_date IS NOT NULL AND basic_launch_date <= ?",
			model.ProjectStatusLaunching, now.Add(-j.launchWindow)).
		Count(&missed).Error
	if err != nil {
		return 0, 0, err
	}
	if missed > 0 {
		logger.Warn("Found %d launching projects past the launch window, manual action required", missed)
	}

	// 众筹中→已结束: 结束时间已到
	finishRes := j.db.Model(&model.Project{}).
		Where("status = ? AND basic_end_date IS NOT NULL AND basic_end_date <= ?",
			model.ProjectStatusOnCampaign, now).
		Update("status", model.ProjectStatusFinished)
	if finishRes.Error != nil {
		return launchRes.RowsAffected, 0, finishRes.Error
	}

	return launchRes.RowsAffected, finishRes.RowsAffected, nil
}
