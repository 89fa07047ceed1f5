package models

type Tag struct {
	Base

	Name      string `gorm:"column:name;size:255;not null"` // 标签名
	AccountID uint   `gorm:"column:account_id;index;not null"`

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"` // 所属账户，删除账户时一并删除
}

func (t *Tag) Identity() uint          { return t.ID }
func (t *Tag) Label() string           { return t.Name }
func (t *Tag) SetLabel(name string)    { t.Name = name }
func (t *Tag) SetOwner(accountID uint) { t.AccountID = accountID }
