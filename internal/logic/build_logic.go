package logic

import (
	"time"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/logger"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/slug"
	"github.com/rizaldinur/crowdfunding-api/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuildLogic 项目搭建与生命周期业务逻辑
type BuildLogic struct {
	db    *gorm.DB
	store *storage.Store
}

// NewBuildLogic 创建项目搭建业务逻辑
func NewBuildLogic(db *gorm.DB, store *storage.Store) *BuildLogic {
	return &BuildLogic{db: db, store: store}
}

// StartProjectInput 开始新项目的初始信息
type StartProjectInput struct {
	ProjectName     string
	Location        string
	Category        string
	School          string
	OtherSchool     bool
	StudentProofUrl string
}

// StartProject 创建空项目(草稿), slug在同一事务内生成
func (b *BuildLogic) StartProject(creatorId int64, input StartProjectInput) (*model.Project, error) {
	project := &model.Project{
		CreatorId:       creatorId,
		School:          input.School,
		OtherSchool:     input.OtherSchool,
		StudentProofUrl: input.StudentProofUrl,
		Status:          model.ProjectStatusDraft,
	}
	project.Basic.Title = input.ProjectName
	project.Basic.Location = input.Location
	project.Basic.Category = input.Category

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		s, err := slug.ForTitle(tx, &model.Project{}, project.Basic.Title, project.Id)
		if err != nil {
			return err
		}
		project.Slug = s
		return tx.Model(project).Update("slug", s).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// BasicSectionInput 基本信息分区
type BasicSectionInput struct {
	Title      string
	SubTitle   string
	Category   string
	Location   string
	ImageUrl   string
	FundTarget int64
	LaunchDate *time.Time
	Duration   int
}

// UpdateBasic 保存基本信息分区, 状态不变。标题变化时重新生成slug,
// 设置了上线日期时同步推算结束日期。
func (b *BuildLogic) UpdateBasic(projectRef string, userId int64, input BasicSectionInput) (*model.Project, error) {
	project, err := findOwnedProject(b.db, projectRef, userId)
	if err != nil {
		return nil, err
	}

	project.Basic.Title = input.Title
	project.Basic.SubTitle = input.SubTitle
	project.Basic.Category = input.Category
	project.Basic.Location = input.Location
	project.Basic.ImageUrl = input.ImageUrl
	project.Basic.FundTarget = input.FundTarget
	project.Basic.LaunchDate = input.LaunchDate
	project.Basic.Duration = input.Duration

	if input.LaunchDate != nil && input.Duration > 0 {
		endDate := input.LaunchDate.Add(time.Duration(input.Duration) * 24 * time.Hour)
		project.Basic.EndDate = &endDate
	} else {
		project.Basic.EndDate = nil
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		s, err := slug.ForTitle(tx, &model.Project{}, project.Basic.Title, project.Id)
		if err != nil {
			return err
		}
		project.Slug = s
		return tx.Omit(clause.Associations).Save(project).Error
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// StorySectionInput 项目故事分区
type StorySectionInput struct {
	Detail     string
	Benefits   string
	Challenges string
	Faqs       []model.ProjectFaq
}

// UpdateStory 保存项目故事分区
func (b *BuildLogic) UpdateStory(projectRef string, userId int64, input StorySectionInput) (*model.Project, error) {
	project, err := findOwnedProject(b.db, projectRef, userId)
	if err != nil {
		return nil, err
	}

	project.Story.Detail = input.Detail
	project.Story.Benefits = input.Benefits
	project.Story.Challenges = input.Challenges
	project.Story.Faqs = input.Faqs

	if err := b.db.Omit(clause.Associations).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// PaymentSectionInput 收款信息分区
type PaymentSectionInput struct {
	BusinessType      string
	BankName          string
	BankAccountNumber string
}

// UpdatePayment 保存收款信息分区
func (b *BuildLogic) UpdatePayment(projectRef string, userId int64, input PaymentSectionInput) (*model.Project, error) {
	project, err := findOwnedProject(b.db, projectRef, userId)
	if err != nil {
		return nil, err
	}

	project.Payment.BusinessType = input.BusinessType
	project.Payment.BankName = input.BankName
	project.Payment.BankAccountNumber = input.BankAccountNumber

	if err := b.db.Omit(clause.Associations).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// OverviewData 搭建总览
type OverviewData struct {
	ProjectName string              `json:"projectName"`
	CreatorName string              `json:"creatorName"`
	BuildStatus model.ProjectStatus `json:"buildStatus"`
	BuildProgress
}

// Overview 搭建总览。若项目处于审核中但完成度已被改破,
// 在该读取路径上把状态退回草稿(惰性一致性检查, 不放在分区写入路径)。
func (b *BuildLogic) Overview(projectRef string, userId int64) (*OverviewData, error) {
	project, err := findOwnedProject(b.db, projectRef, userId)
	if err != nil {
		return nil, err
	}

	progress := CountBuildFormFilled(project, &project.Creator)

	if project.Status == model.ProjectStatusOnReview && !IsBuildCompleted(project, &project.Creator) {
		if err := b.db.Model(project).Update("status", model.ProjectStatusDraft).Error; err != nil {
			return nil, err
		}
		project.Status = model.ProjectStatusDraft
		logger.Info("Project %d demoted from onreview to draft on overview read", project.Id)
	}

	return &OverviewData{
		ProjectName:   project.Basic.Title,
		CreatorName:   project.Creator.Name,
		BuildStatus:   project.Status,
		BuildProgress: progress,
	}, nil
}

// SubmitForReview 提交审核, 仅当四个分区完成度均为100时允许
func (b *BuildLogic) SubmitForReview(projectRef string, userId int64) (*model.Project, error) {
	project, err := findOwnedProject(b.db, projectRef, userId)
	if err != nil {
		return nil, err
	}

	if project.Status != model.ProjectStatusDraft {
		return nil, apperr.New(apperr.PreconditionFailed, "当前状态不允许提交审核。")
	}
	if !IsBuildCompleted(project, &project.Creator) {
		return nil, apperr.New(apperr.PreconditionFailed, "项目资料尚未填写完整。")
	}

	if err := b.db.Model(project).Update("status", model.ProjectStatusOnReview).Error; err != nil {
		return nil, err
	}
	project.Status = model.ProjectStatusOnReview
	return project, nil
}

// ReviewDecision 管理员审核: 通过后进入待上线, 驳回退回草稿
func (b *BuildLogic) ReviewDecision(projectRef string, reviewerId int64, approve bool) (*model.Project, error) {
	var reviewer model.User
	if err := b.db.First(&reviewer, reviewerId).Error; err != nil {
		return nil, apperr.New(apperr.AuthenticationRequired, "尚未登录。")
	}
	if !reviewer.IsAdmin {
		return nil, apperr.New(apperr.AuthorizationDenied, "需要管理员权限。")
	}

	project, err := findProjectByRef(b.db, projectRef)
	if err != nil {
		return nil, err
	}
	if project.Status != model.ProjectStatusOnReview {
		return nil, apperr.New(apperr.PreconditionFailed, "项目不在审核中。")
	}

	newStatus := model.ProjectStatusDraft
	if approve {
		newStatus = model.ProjectStatusLaunching
	}
	if err := b.db.Model(project).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	project.Status = newStatus

	logger.Info("Project %d review decision: approve=%v, status=%s", project.Id, approve, newStatus)
	return project, nil
}

// DeleteProject 删除项目。先删文档记录, 再清理上传目录,
// 文件清理失败只记日志不影响删除结果。开始众筹后不允许删除。
func (b *BuildLogic) DeleteProject(projectRef string, userId int64) error {
	project, err := findOwnedProject(b.db, projectRef, userId)
	if err != nil {
		return err
	}

	if project.Status == model.ProjectStatusOnCampaign || project.Status == model.ProjectStatusFinished {
		return apperr.New(apperr.PreconditionFailed, "项目已开始众筹, 无法删除。")
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", project.Id).Delete(&model.Support{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.Id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", project.Id).Delete(&model.ProjectUpdate{}).Error; err != nil {
			return err
		}
		return tx.Delete(project).Error
	})
	if err != nil {
		return err
	}

	if err := b.store.RemoveProofDir(project.Creator.Slug); err != nil {
		logger.Warn("Failed to remove proof dir for user %s: %v", project.Creator.Slug, err)
	}

	return nil
}
