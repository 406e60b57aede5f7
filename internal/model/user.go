package model

import (
	"time"
)

// User 用户模型
type User struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name" gorm:"not null" binding:"required"`
	Email    string `json:"email" gorm:"uniqueIndex;not null" binding:"required"`
	Password string `json:"-" gorm:"not null"`

	AvatarUrl string `json:"avatar_url"`
	Biography string `json:"biography"`

	// 唯一slug, 默认由用户名生成, 也可自定义
	Slug string `json:"slug" gorm:"uniqueIndex"`

	IsAdmin bool `json:"is_admin" gorm:"default:false"`
}

// TableName 自定义表名
func (User) TableName() string {
	return "user"
}
