package models

import "time"

// Base 替代 gorm.Model ：这里的记录都是直接删除（不做软删除），这样级联删除和唯一索引才能正常工作
type Base struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}
