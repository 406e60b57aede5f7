package logic

import (
	"github.com/rizaldinur/crowdfunding-api/internal/model"
)

// BuildProgress 各表单分区的完成度(百分比)
type BuildProgress struct {
	BasicProgress   float64 `json:"basicProgress"`
	StoryProgress   float64 `json:"storyProgress"`
	ProfileProgress float64 `json:"profileProgress"`
	PaymentProgress float64 `json:"paymentProgress"`
}

// CountBuildFormFilled 统计各分区已填写字段占比, 纯函数, 只依赖当前字段值。
// 分区字段集固定: basic 7 / story 3 / profile 2 / payment 3, FAQ列表不参与统计。
func CountBuildFormFilled(project *model.Project, creator *model.User) BuildProgress {
	basic := []bool{
		project.Basic.Title != "",
		project.Basic.SubTitle != "",
		project.Basic.Category != "",
		project.Basic.Location != "",
		project.Basic.ImageUrl != "",
		project.Basic.FundTarget != 0,
		project.Basic.Duration != 0,
	}

	story := []bool{
		project.Story.Detail != "",
		project.Story.Benefits != "",
		project.Story.Challenges != "",
	}

	profile := []bool{
		creator.Slug != "",
		creator.Biography != "",
	}

	payment := []bool{
		project.Payment.BusinessType != "",
		project.Payment.BankName != "",
		project.Payment.BankAccountNumber != "",
	}

	return BuildProgress{
		BasicProgress:   percentFilled(basic),
		StoryProgress:   percentFilled(story),
		ProfileProgress: percentFilled(profile),
		PaymentProgress: percentFilled(payment),
	}
}

// IsBuildCompleted 四个分区完成度均为100时项目才算搭建完成
func IsBuildCompleted(project *model.Project, creator *model.User) bool {
	progress := CountBuildFormFilled(project, creator)
	return progress.BasicProgress == 100 &&
		progress.StoryProgress == 100 &&
		progress.ProfileProgress == 100 &&
		progress.PaymentProgress == 100
}

func percentFilled(fields []bool) float64 {
	filled := 0
	for _, ok := range fields {
		if ok {
			filled++
		}
	}
	return float64(filled) / float64(len(fields)) * 100
}
