package model

import (
	"time"

	"gorm.io/datatypes"
)

// Project 众筹项目模型
type Project struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 唯一slug, 标题为空时回退为内部ID
	Slug      string `json:"slug" gorm:"uniqueIndex"`
	CreatorId int64  `json:"creator_id" gorm:"not null;index"`

	// 表单分区
	Basic   ProjectBasic   `json:"basic" gorm:"embedded;embeddedPrefix:basic_"`
	Story   ProjectStory   `json:"story" gorm:"embedded;embeddedPrefix:story_"`
	Payment ProjectPayment `json:"payment" gorm:"embedded;embeddedPrefix:payment_"`

	// 学生认证信息
	School          string `json:"school" gorm:"default:''"`
	OtherSchool     bool   `json:"other_school"`
	StudentProofUrl string `json:"student_proof_url"`

	// 已确认的筹款总额
	Funding int64 `json:"funding" gorm:"default:0"`

	// 状态
	Status ProjectStatus `json:"status" gorm:"default:'draft'"`

	// 关联
	Creator User `json:"creator,omitempty" gorm:"foreignKey:CreatorId"`
}

// ProjectBasic 基本信息分区
type ProjectBasic struct {
	Title      string     `json:"title" gorm:"default:''"`
	SubTitle   string     `json:"sub_title" gorm:"default:''"`
	Category   string     `json:"category" gorm:"default:''"`
	Location   string     `json:"location" gorm:"default:''"`
	ImageUrl   string     `json:"image_url" gorm:"default:''"`
	FundTarget int64      `json:"fund_target" gorm:"default:0"`
	LaunchDate *time.Time `json:"launch_date"`
	Duration   int        `json:"duration" gorm:"default:0"` // 众筹天数
	EndDate    *time.Time `json:"end_date"`
}

// ProjectStory 项目故事分区
type ProjectStory struct {
	Detail     string                          `json:"detail" gorm:"type:text"`
	Benefits   string                          `json:"benefits" gorm:"type:text"`
	Challenges string                          `json:"challenges" gorm:"type:text"`
	Faqs       datatypes.JSONSlice[ProjectFaq] `json:"faqs"`
}

// ProjectFaq 常见问题
type ProjectFaq struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ProjectPayment 收款信息分区
type ProjectPayment struct {
	BusinessType      string `json:"business_type" gorm:"default:''"`
	BankName          string `json:"bank_name" gorm:"default:''"`
	BankAccountNumber string `json:"bank_account_number" gorm:"default:''"`
}

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"      // 草稿
	ProjectStatusOnReview   ProjectStatus = "onreview"   // 审核中
	ProjectStatusLaunching  ProjectStatus = "launching"  // 待上线
	ProjectStatusOnCampaign ProjectStatus = "oncampaign" // 众筹中
	ProjectStatusFinished   ProjectStatus = "finished"   // 已结束
)

// TableName 自定义表名
func (Project) TableName() string {
	return "project"
}
