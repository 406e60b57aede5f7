package logic

import (
	"errors"
	"math"
	"time"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"gorm.io/gorm"
)

// FeedLogic 发现页与项目展示读模型
type FeedLogic struct {
	db *gorm.DB
}

// NewFeedLogic 创建读模型业务逻辑
func NewFeedLogic(db *gorm.DB) *FeedLogic {
	return &FeedLogic{db: db}
}

// ProjectCard 项目卡片
type ProjectCard struct {
	CreatorSlug     string `json:"creatorSlug"`
	ProjectSlug     string `json:"projectSlug"`
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	ImageUrl        string `json:"imageUrl"`
	Creator         string `json:"creator"`
	Avatar          string `json:"avatar"`
	FundingProgress int64  `json:"fundingProgress"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	TimeLeft        int64  `json:"timeLeft"`
	TimeFormat      string `json:"timeFormat"`
}

// FeaturedProject 精选项目: 众筹中且上线时间最近的一个
func (f *FeedLogic) FeaturedProject() (*ProjectCard, error) {
	var project model.Project
	err := f.db.Preload("Creator").
		Where("status = ?", model.ProjectStatusOnCampaign).
		Order("basic_launch_date DESC").
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "暂无众筹中的项目。")
		}
		return nil, err
	}

	card := newProjectCard(&project)
	return &card, nil
}

// RecommendedProjects 推荐项目, 最多6个
func (f *FeedLogic) RecommendedProjects() ([]ProjectCard, error) {
	var projects []model.Project
	err := f.db.Preload("Creator").
		Where("status = ?", model.ProjectStatusOnCampaign).
		Order("basic_launch_date DESC").
		Limit(6).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	cards := make([]ProjectCard, 0, len(projects))
	for i := range projects {
		cards = append(cards, newProjectCard(&projects[i]))
	}
	return cards, nil
}

// ProjectHeaderData 项目页头部
type ProjectHeaderData struct {
	Title           string              `json:"title"`
	Subtitle        string              `json:"subtitle"`
	ImageUrl        string              `json:"imageUrl"`
	Category        string              `json:"category"`
	Location        string              `json:"location"`
	Funding         int64               `json:"funding"`
	FundTarget      int64               `json:"fundTarget"`
	ProjectStatus   model.ProjectStatus `json:"projectStatus"`
	SupporterCount  int64               `json:"supporterCount"`
	TimeLeft        int64               `json:"timeLeft"`
	TimeFormat      string              `json:"timeFormat"`
	FundingProgress int64               `json:"fundingProgress"`
}

// 项目详情页的tab
var projectPages = map[string]bool{
	"story":    true,
	"updates":  true,
	"faqs":     true,
	"comments": true,
}

// ProjectHeader 项目页头部数据
func (f *FeedLogic) ProjectHeader(profileRef, projectRef, page string) (*ProjectHeaderData, error) {
	if page == "" {
		page = "story"
	}
	if !projectPages[page] {
		return nil, apperr.New(apperr.PageNotFound, "页面不存在。")
	}

	project, err := f.findProjectOfCreator(profileRef, projectRef)
	if err != nil {
		return nil, err
	}

	var supporterCount int64
	err = f.db.Model(&model.Support{}).
		Where("project_id = ? AND transaction_status IN ?", project.Id, model.PaidStatuses()).
		Distinct("supporter_id").
		Count(&supporterCount).Error
	if err != nil {
		return nil, err
	}

	timeLeft, timeFormat := timeLeftOf(project)
	return &ProjectHeaderData{
		Title:           project.Basic.Title,
		Subtitle:        project.Basic.SubTitle,
		ImageUrl:        project.Basic.ImageUrl,
		Category:        project.Basic.Category,
		Location:        project.Basic.Location,
		Funding:         project.Funding,
		FundTarget:      project.Basic.FundTarget,
		ProjectStatus:   project.Status,
		SupporterCount:  supporterCount,
		TimeLeft:        timeLeft,
		TimeFormat:      timeFormat,
		FundingProgress: fundingProgress(project),
	}, nil
}

// ProjectDetails 项目详情tab数据
func (f *FeedLogic) ProjectDetails(profileRef, projectRef, page string) (map[string]interface{}, error) {
	if page == "" {
		page = "story"
	}
	if !projectPages[page] {
		return nil, apperr.New(apperr.PageNotFound, "页面不存在。")
	}

	project, err := f.findProjectOfCreator(profileRef, projectRef)
	if err != nil {
		return nil, err
	}

	switch page {
	case "story":
		story := project.Story.Detail
		if len(project.Story.Benefits) > 0 {
			story += "\n\n# 项目收益\n" + project.Story.Benefits
		}
		if len(project.Story.Challenges) > 0 {
			story += "\n\n# 风险与挑战\n" + project.Story.Challenges
		}
		return map[string]interface{}{
			"story": story,
			"creator": map[string]interface{}{
				"name":      project.Creator.Name,
				"avatarUrl": project.Creator.AvatarUrl,
				"school":    project.School,
				"biography": project.Creator.Biography,
			},
		}, nil
	case "faqs":
		return map[string]interface{}{"faqs": project.Story.Faqs}, nil
	default:
		// updates和comments由各自的列表接口提供
		return map[string]interface{}{}, nil
	}
}

// SupportOverviewData 支持页概览
type SupportOverviewData struct {
	Title           string `json:"title"`
	ImageUrl        string `json:"imageUrl"`
	FundingProgress int64  `json:"fundingProgress"`
	CreatorName     string `json:"creatorName"`
	CreatorEmail    string `json:"creatorEmail"`
}

// SupportOverview 支持页概览, 仅众筹中的项目可访问
func (f *FeedLogic) SupportOverview(profileRef, projectRef string) (*SupportOverviewData, error) {
	project, err := f.findProjectOfCreator(profileRef, projectRef)
	if err != nil {
		return nil, err
	}
	if project.Status != model.ProjectStatusOnCampaign {
		return nil, apperr.New(apperr.PreconditionFailed, "该项目当前不可支持。")
	}

	return &SupportOverviewData{
		Title:           project.Basic.Title,
		ImageUrl:        project.Basic.ImageUrl,
		FundingProgress: fundingProgress(project),
		CreatorName:     project.Creator.Name,
		CreatorEmail:    project.Creator.Email,
	}, nil
}

// findProjectOfCreator 按创建者slug/ID加项目slug/ID定位项目
func (f *FeedLogic) findProjectOfCreator(profileRef, projectRef string) (*model.Project, error) {
	creator, err := findUserByRef(f.db, profileRef)
	if err != nil {
		return nil, err
	}

	var project model.Project
	err = f.db.Preload("Creator").
		Where("slug = ? AND creator_id = ?", projectRef, creator.Id).
		First(&project).Error
	if err == nil {
		return &project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return findProjectByRef(f.db, projectRef)
}

func newProjectCard(project *model.Project) ProjectCard {
	timeLeft, timeFormat := timeLeftOf(project)
	return ProjectCard{
		CreatorSlug:     project.Creator.Slug,
		ProjectSlug:     project.Slug,
		Title:           project.Basic.Title,
		Subtitle:        project.Basic.SubTitle,
		ImageUrl:        project.Basic.ImageUrl,
		Creator:         project.Creator.Name,
		Avatar:          project.Creator.AvatarUrl,
		FundingProgress: fundingProgress(project),
		Location:        project.Basic.Location,
		Category:        project.Basic.Category,
		TimeLeft:        timeLeft,
		TimeFormat:      timeFormat,
	}
}

// timeLeftOf 剩余时间, 超过一天按天数, 否则按小时数
func timeLeftOf(project *model.Project) (int64, string) {
	if project.Basic.EndDate == nil {
		return 0, "天"
	}
	remaining := time.Until(*project.Basic.EndDate)
	days := int64(math.Floor(remaining.Hours() / 24))
	if days >= 1 {
		return days, "天"
	}
	return int64(math.Floor(remaining.Hours())), "小时"
}

// fundingProgress 筹款完成百分比(向下取整)
func fundingProgress(project *model.Project) int64 {
	if project.Basic.FundTarget <= 0 {
		return 0
	}
	return int64(math.Floor(float64(project.Funding) / float64(project.Basic.FundTarget) * 100))
}
