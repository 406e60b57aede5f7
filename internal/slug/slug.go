package slug

import (
	"fmt"
	"strconv"
	"strings"

	gslug "github.com/gosimple/slug"
	"gorm.io/gorm"
)

// ForTitle 根据项目标题生成唯一slug, 标题为空时回退为记录ID
func ForTitle(db *gorm.DB, model interface{}, title string, selfId int64) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" || trimmed == "empty" {
		return strconv.FormatInt(selfId, 10), nil
	}
	return Unique(db, model, gslug.Make(trimmed), selfId)
}

// ForName 根据名称生成唯一slug
func ForName(db *gorm.DB, model interface{}, name string, selfId int64) (string, error) {
	return Unique(db, model, gslug.Make(name), selfId)
}

// Unique 冲突时追加数字后缀直到唯一, selfId用于更新时排除自身
func Unique(db *gorm.DB, model interface{}, base string, selfId int64) (string, error) {
	candidate := base
	for counter := 1; ; counter++ {
		var count int64
		err := db.Model(model).
			Where("slug = ? AND id <> ?", candidate, selfId).
			Count(&count).Error
		if err != nil {
			return "", fmt.Errorf("生成slug失败: %w", err)
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}
