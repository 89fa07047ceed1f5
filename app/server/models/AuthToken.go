package models

import "time"

type AuthToken struct {
	Key       string    `gorm:"column:key;primaryKey;size:40"`          // 不透明的 token ，本身不携带任何账户信息
	AccountID uint      `gorm:"column:account_id;uniqueIndex;not null"` // 每个账户最多一个 token ，登录时签发或复用
	CreatedAt time.Time `gorm:"column:created_at"`

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}
