package logic

import (
	"fmt"
	"testing"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListComments(t *testing.T) {
	db := newTestDB(t)
	logic := NewCommentLogic(db)
	creator := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	commenter := createTestUser(t, db, "Siti Rahma", "siti@example.com")
	project := createTestProject(t, db, creator, "kopi-kampus", model.ProjectStatusOnCampaign)

	for i := 0; i < 12; i++ {
		_, err := logic.CreateComment(project.Slug, commenter.Id, fmt.Sprintf("评论 %d", i))
		require.NoError(t, err)
	}

	comments, total, err := logic.GetComments(project.Slug, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(12), total)
	require.Len(t, comments, 10)
	require.Equal(t, "Siti Rahma", comments[0].Author.Name)

	comments, _, err = logic.GetComments(project.Slug, 2, 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)

	_, err = logic.CreateComment(project.Slug, commenter.Id, "")
	requireErrKind(t, err, apperr.ValidationFailed)
	_, _, err = logic.GetComments("no-such-project", 1, 10)
	requireErrKind(t, err, apperr.NotFound)
}

func TestCreateAndListReplies(t *testing.T) {
	db := newTestDB(t)
	logic := NewCommentLogic(db)
	creator := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	commenter := createTestUser(t, db, "Siti Rahma", "siti@example.com")
	project := createTestProject(t, db, creator, "kopi-kampus", model.ProjectStatusOnCampaign)

	comment, err := logic.CreateComment(project.Slug, commenter.Id, "有优惠吗?")
	require.NoError(t, err)

	_, err = logic.CreateReply(comment.Id, creator.Id, "前100名支持者有折扣。")
	require.NoError(t, err)
	_, err = logic.CreateReply(comment.Id, commenter.Id, "好的谢谢。")
	require.NoError(t, err)

	// 回复按时间正序
	replies, total, err := logic.GetReplies(comment.Id, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, replies, 2)
	require.Equal(t, "前100名支持者有折扣。", replies[0].Content)

	_, err = logic.CreateReply(9999, creator.Id, "落空的回复")
	requireErrKind(t, err, apperr.NotFound)
}

func TestProjectUpdatesCreatorOnly(t *testing.T) {
	db := newTestDB(t)
	logic := NewCommentLogic(db)
	creator := createTestUser(t, db, "Budi Santoso", "budi@example.com")
	other := createTestUser(t, db, "Siti Rahma", "siti@example.com")
	project := createTestProject(t, db, creator, "kopi-kampus", model.ProjectStatusOnCampaign)

	_, err := logic.CreateUpdate(project.Slug, other.Id, "进展", "第一周进展")
	requireErrKind(t, err, apperr.AuthorizationDenied)

	_, err = logic.CreateUpdate(project.Slug, creator.Id, "进展", "第一周进展")
	require.NoError(t, err)

	updates, total, err := logic.GetUpdates(project.Slug, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "进展", updates[0].Title)
	require.Equal(t, "Budi Santoso", updates[0].Author.Name)
}
