package logic

import (
	"errors"
	"strconv"

	"github.com/rizaldinur/crowdfunding-api/internal/apperr"
	"github.com/rizaldinur/crowdfunding-api/internal/model"
	"gorm.io/gorm"
)

// findUserByRef 先按slug查找用户, 失败后按ID查找
func findUserByRef(db *gorm.DB, ref string) (*model.User, error) {
	var user model.User
	err := db.Where("slug = ?", ref).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil {
		return nil, apperr.New(apperr.NotFound, "用户不存在。")
	}
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "用户不存在。")
		}
		return nil, err
	}
	return &user, nil
}

// findProjectByRef 先按slug查找项目, 失败后按ID查找
func findProjectByRef(db *gorm.DB, ref string) (*model.Project, error) {
	var project model.Project
	err := db.Preload("Creator").Where("slug = ?", ref).First(&project).Error
	if err == nil {
		return &project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	id, parseErr := strconv.ParseInt(ref, 10, 64)
	if parseErr != nil {
		return nil, apperr.New(apperr.NotFound, "项目不存在。")
	}
	if err := db.Preload("Creator").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "项目不存在。")
		}
		return nil, err
	}
	return &project, nil
}

// findOwnedProject 查找项目并校验当前用户为创建者
func findOwnedProject(db *gorm.DB, ref string, userId int64) (*model.Project, error) {
	project, err := findProjectByRef(db, ref)
	if err != nil {
		return nil, err
	}
	if project.CreatorId != userId {
		return nil, apperr.New(apperr.AuthorizationDenied, "无权操作该项目。").
			WithData(map[string]interface{}{"authorized": false})
	}
	return project, nil
}
