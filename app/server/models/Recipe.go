package models

import "github.com/shopspring/decimal"

type Recipe struct {
	Base

	// 菜谱基础信息
	Title       string          `gorm:"column:title;size:255;not null"`          // 标题
	TimeMinutes int             `gorm:"column:time_minutes;not null"`            // 耗时（分钟）
	Price       decimal.Decimal `gorm:"column:price;type:numeric(5,2);not null"` // 价格，最多 3 位整数、2 位小数
	Link        string          `gorm:"column:link;size:255"`                    // 外部链接，可以为空
	Image       string          `gorm:"column:image"`                            // 图片在存储中的路径，空表示没有图片

	AccountID uint `gorm:"column:account_id;index;not null"`

	// 连接模型时使用
	Account     Account      `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Tags        []Tag        `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}
