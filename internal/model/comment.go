package model

import (
	"time"
)

// Comment 项目评论
type Comment struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId int64  `json:"project_id" gorm:"not null;index"`
	AuthorId  int64  `json:"author_id" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text;not null"`

	// 关联
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorId"`
}

// TableName 自定义表名
func (Comment) TableName() string {
	return "comment"
}
