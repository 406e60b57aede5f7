package logic

import (
	"testing"
	"time"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/config"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/rizaldinur/crowdfunding-api/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBuildLogic(t *testing.T, db *gorm.DB) *BuildLogic {
	t.Helper()
	store := storage.New(config.StorageConfig{
		RootDir: t.TempDir(),
		BaseUrl: "http://localhost:8080",
	})
	return NewBuildLogic(db, store)
}

func TestStartProjectGeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")

	first, err := logic.StartProject(user.Id, StartProjectInput{ProjectName: "My Cool Project"})
	require.NoError(t, err)
	require.Equal(t, "my-cool-project", first.Slug)
	require.Equal(t, model.ProjectStatusDraft, first.Status)

	// 同名项目追加数字后缀
	second, err := logic.StartProject(user.Id, StartProjectInput{ProjectName: "My Cool Project"})
	require.NoError(t, err)
	require.Equal(t, "my-cool-project-1", second.Slug)

	// 标题为空时slug回退为记录ID
	third, err := logic.StartProject(user.Id, StartProjectInput{})
	require.NoError(t, err)
	require.Equal(t, "3", third.Slug)
}

func TestUpdateBasicDerivesEndDate(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	project := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusDraft)

	launch := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	updated, err := logic.UpdateBasic(project.Slug, user.Id, BasicSectionInput{
		Title:      "Kedai Kopi Kampus",
		SubTitle:   project.Basic.SubTitle,
		Category:   project.Basic.Category,
		Location:   project.Basic.Location,
		ImageUrl:   project.Basic.ImageUrl,
		FundTarget: project.Basic.FundTarget,
		LaunchDate: &launch,
		Duration:   30,
	})
	require.NoError(t, err)
	require.Equal(t, "kedai-kopi-kampus", updated.Slug)
	require.NotNil(t, updated.Basic.EndDate)
	require.Equal(t, launch.Add(30*24*time.Hour), updated.Basic.EndDate.UTC())

	// 清掉上线日期后结束日期同步清空
	updated, err = logic.UpdateBasic(updated.Slug, user.Id, BasicSectionInput{
		Title:    "Kedai Kopi Kampus",
		Duration: 30,
	})
	require.NoError(t, err)
	require.Nil(t, updated.Basic.EndDate)
}

func TestSubmitForReviewRejectsIncompleteForm(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	project := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusDraft)

	require.NoError(t, db.Model(project).Update("payment_bank_name", "").Error)

	_, err := logic.SubmitForReview(project.Slug, user.Id)
	requireErrKind(t, err, apperr.PreconditionFailed)

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	require.Equal(t, model.ProjectStatusDraft, reloaded.Status)
}

func TestSubmitForReviewCompleteForm(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	project := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusDraft)

	submitted, err := logic.SubmitForReview(project.Slug, user.Id)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusOnReview, submitted.Status)

	// 审核中不允许重复提交
	_, err = logic.SubmitForReview(project.Slug, user.Id)
	requireErrKind(t, err, apperr.PreconditionFailed)
}

func TestOverviewDemotesBrokenOnReviewProject(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	project := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusOnReview)

	// 审核中途把故事分区改破
	_, err := logic.UpdateStory(project.Slug, user.Id, StorySectionInput{
		Detail:   "",
		Benefits: "收益",
	})
	require.NoError(t, err)

	overview, err := logic.Overview(project.Slug, user.Id)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusDraft, overview.BuildStatus)
	require.Less(t, overview.StoryProgress, float64(100))

	var reloaded model.Project
	require.NoError(t, db.First(&reloaded, project.Id).Error)
	require.Equal(t, model.ProjectStatusDraft, reloaded.Status)

	// 再次读取不再变化
	overview, err = logic.Overview(project.Slug, user.Id)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusDraft, overview.BuildStatus)
}

func TestOverviewKeepsCompleteOnReviewProject(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	project := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusOnReview)

	overview, err := logic.Overview(project.Slug, user.Id)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusOnReview, overview.BuildStatus)
	require.Equal(t, float64(100), overview.BasicProgress)
}

func TestOverviewDeniesNonOwner(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	owner := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	other := createTestUser(t, db, "Siti Rahma", "siti@example.com")
	project := createTestProject(t, db, owner, "kopi-kampus", model.ProjectStatusDraft)

	_, err := logic.Overview(project.Slug, other.Id)
	requireErrKind(t, err, apperr.AuthorizationDenied)
}

func TestReviewDecision(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	creator := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	admin := createTestUser(t, db, "Admin", "admin@example.com")
	require.NoError(t, db.Model(admin).Update("is_admin", true).Error)

	project := createTestProject(t, db, creator, "kopi-kampus", model.ProjectStatusOnReview)

	// 非管理员无权审核
	_, err := logic.ReviewDecision(project.Slug, creator.Id, true)
	requireErrKind(t, err, apperr.AuthorizationDenied)

	approved, err := logic.ReviewDecision(project.Slug, admin.Id, true)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusLaunching, approved.Status)

	// 不在审核中的项目无法再次裁决
	_, err = logic.ReviewDecision(project.Slug, admin.Id, false)
	requireErrKind(t, err, apperr.PreconditionFailed)

	// 驳回退回草稿
	rejected := createTestProject(t, db, creator, "kopi-kampus-2", model.ProjectStatusOnReview)
	demoted, err := logic.ReviewDecision(rejected.Slug, admin.Id, false)
	require.NoError(t, err)
	require.Equal(t, model.ProjectStatusDraft, demoted.Status)
}

func TestDeleteProjectRemovesChildren(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	project := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusDraft)

	require.NoError(t, db.Create(&model.Support{ProjectId: project.Id, SupporterId: user.Id, SupportAmount: 1000}).Error)
	require.NoError(t, db.Create(&model.Comment{ProjectId: project.Id, AuthorId: user.Id, Content: "加油"}).Error)
	require.NoError(t, db.Create(&model.ProjectUpdate{ProjectId: project.Id, AuthorId: user.Id, Title: "进展", Content: "第一周"}).Error)

	require.NoError(t, logic.DeleteProject(project.Slug, user.Id))

	// slug和ID两条查找路径都应失效
	_, err := findProjectByRef(db, project.Slug)
	requireErrKind(t, err, apperr.NotFound)
	_, err = findProjectByRef(db, "1")
	requireErrKind(t, err, apperr.NotFound)

	var supports, comments, updates int64
	require.NoError(t, db.Model(&model.Support{}).Where("project_id = ?", project.Id).Count(&supports).Error)
	require.NoError(t, db.Model(&model.Comment{}).Where("project_id = ?", project.Id).Count(&comments).Error)
	require.NoError(t, db.Model(&model.ProjectUpdate{}).Where("project_id = ?", project.Id).Count(&updates).Error)
	require.Zero(t, supports)
	require.Zero(t, comments)
	require.Zero(t, updates)
}

func TestDeleteProjectRejectsActiveCampaign(t *testing.T) {
	db := newTestDB(t)
	logic := newBuildLogic(t, db)
	user := createTestUser(t, db, "Budi Santoso", "budi@example.com")

	campaign := createTestProject(t, db, user, "kopi-kampus", model.ProjectStatusOnCampaign)
	err := logic.DeleteProject(campaign.Slug, user.Id)
	requireErrKind(t, err, apperr.PreconditionFailed)

	finished := createTestProject(t, db, user, "kopi-kampus-2", model.ProjectStatusFinished)
	err = logic.DeleteProject(finished.Slug, user.Id)
	requireErrKind(t, err, apperr.PreconditionFailed)
}
