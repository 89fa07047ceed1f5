package models

type Account struct {
	Base

	// 基础信息
	Email string `gorm:"column:email;size:255;uniqueIndex;not null"` // 邮箱，全局唯一，用于登录（域名部分统一为小写）
	Name  string `gorm:"column:name;size:255"`                       // 显示名称

	// 登录与授权认证相关
	Password    string `gorm:"column:password;not null" json:"-"` // 密码，使用 argon2id 储存，不会出现在任何响应中
	IsActive    bool   `gorm:"column:is_active;not null"`         // 是否启用：未启用的账户无法登录，也无法使用已有的 token
	IsStaff     bool   `gorm:"column:is_staff;not null"`          // 是否为工作人员
	IsSuperuser bool   `gorm:"column:is_superuser;not null"`      // 是否为超级用户
}
