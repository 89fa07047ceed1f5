package models

type Ingredient struct {
	Base

	Name      string `gorm:"column:name;size:255;not null"` // 食材名
	AccountID uint   `gorm:"column:account_id;index;not null"`

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"` // 所属账户，删除账户时一并删除
}

func (i *Ingredient) Identity() uint          { return i.ID }
func (i *Ingredient) Label() string           { return i.Name }
func (i *Ingredient) SetLabel(name string)    { i.Name = name }
func (i *Ingredient) SetOwner(accountID uint) { i.AccountID = accountID }
