package model

import (
	"time"
)

// Reply 评论回复
type Reply struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CommentId int64  `json:"comment_id" gorm:"not null;index"`
	AuthorId  int64  `json:"author_id" gorm:"not null"`
	Content   string `json:"content" gorm:"type:text;not null"`

	// 关联
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorId"`
}

// TableName 自定义表名
func (Reply) TableName() string {
	return "reply"
}
