package logic

import (
	"errors"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"gorm.io/gorm"
)

// CommentLogic 评论/回复/项目动态业务逻辑
type CommentLogic struct {
	db *gorm.DB
}

// NewCommentLogic 创建评论业务逻辑
func NewCommentLogic(db *gorm.DB) *CommentLogic {
	return &CommentLogic{db: db}
}

// CreateComment 发表评论
func (c *CommentLogic) CreateComment(projectRef string, authorId int64, content string) (*model.Comment, error) {
	if content == "" {
		return nil, apperr.New(apperr.ValidationFailed, "评论内容不能为空。")
	}

	project, err := findProjectByRef(c.db, projectRef)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ProjectId: project.Id,
		AuthorId:  authorId,
		Content:   content,
	}
	if err := c.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// GetComments 分页获取项目评论
func (c *CommentLogic) GetComments(projectRef string, page, pageSize int) ([]model.Comment, int64, error) {
	project, err := findProjectByRef(c.db, projectRef)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := c.db.Model(&model.Comment{}).Where("project_id = ?", project.Id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	offset := (page - 1) * pageSize
	err = c.db.Preload("Author").
		Where("project_id = ?", project.Id).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

// CreateReply 回复评论
func (c *CommentLogic) CreateReply(commentId, authorId int64, content string) (*model.Reply, error) {
	if content == "" {
		return nil, apperr.New(apperr.ValidationFailed, "回复内容不能为空。")
	}

	var comment model.Comment
	if err := c.db.First(&comment, commentId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "评论不存在。")
		}
		return nil, err
	}

	reply := &model.Reply{
		CommentId: comment.Id,
		AuthorId:  authorId,
		Content:   content,
	}
	if err := c.db.Create(reply).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

// GetReplies 分页获取评论回复
func (c *CommentLogic) GetReplies(commentId int64, page, pageSize int) ([]model.Reply, int64, error) {
	var total int64
	if err := c.db.Model(&model.Reply{}).Where("comment_id = ?", commentId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var replies []model.Reply
	offset := (page - 1) * pageSize
	err := c.db.Preload("Author").
		Where("comment_id = ?", commentId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, 0, err
	}

	return replies, total, nil
}

// CreateUpdate 发布项目动态, 仅创建者可发布
func (c *CommentLogic) CreateUpdate(projectRef string, authorId int64, title, content string) (*model.ProjectUpdate, error) {
	if title == "" || content == "" {
		return nil, apperr.New(apperr.ValidationFailed, "动态标题和内容不能为空。")
	}

	project, err := findOwnedProject(c.db, projectRef, authorId)
	if err != nil {
		return nil, err
	}

	update := &model.ProjectUpdate{
		ProjectId: project.Id,
		AuthorId:  authorId,
		Title:     title,
		Content:   content,
	}
	if err := c.db.Create(update).Error; err != nil {
		return nil, err
	}
	return update, nil
}

// GetUpdates 分页获取项目动态
func (c *CommentLogic) GetUpdates(projectRef string, page, pageSize int) ([]model.ProjectUpdate, int64, error) {
	project, err := findProjectByRef(c.db, projectRef)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := c.db.Model(&model.ProjectUpdate{}).Where("project_id = ?", project.Id).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var updates []model.ProjectUpdate
	offset := (page - 1) * pageSize
	err = c.db.Preload("Author").
		Where("project_id = ?", project.Id).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, 0, err
	}

	return updates, total, nil
}
