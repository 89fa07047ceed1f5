package models

// Attribute 是 Tag 和 Ingredient 共同的形状：带名字、属于某个账户、可以挂到菜谱上
type Attribute interface {
	Identity() uint
	Label() string
	SetLabel(name string)
	SetOwner(accountID uint)
}

var (
	_ Attribute = (*Tag)(nil)
	_ Attribute = (*Ingredient)(nil)
)
