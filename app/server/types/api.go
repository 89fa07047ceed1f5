package types

import "github.com/shopspring/decimal"

// FieldErrors 按字段名（JSON 名）索引的校验错误，非字段错误放在 NonFieldErrors 下
type FieldErrors map[string][]string

const NonFieldErrors = "non_field_errors"

func (fe FieldErrors) Add(field string, message string) {
	fe[field] = append(fe[field], message)
}

type ErrorMessage struct {
	Message *string `json:"message,omitempty"`
}

// 账户

type AccountInput struct {
	Email    *string `json:"email" validate:"required,email,max=255"`
	Password *string `json:"password" validate:"required,min=5"`
	Name     *string `json:"name" validate:"required,notblank,max=255"`
}

type AccountInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type TokenInput struct {
	Email    *string `json:"email" validate:"required,notblank"`
	Password *string `json:"password" validate:"required,notblank"`
}

type Token struct {
	Token string `json:"token"`
}

// 标签与食材

type AttributeInput struct {
	Name *string `json:"name" validate:"required,notblank,max=255"`
}

type AttributeInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// 菜谱

type RecipeInput struct {
	Title       *string          `json:"title" validate:"required,notblank,max=255"`
	TimeMinutes *int             `json:"time_minutes" validate:"required,min=0"`
	Price       *decimal.Decimal `json:"price" validate:"required,price"`
	Link        *string          `json:"link" validate:"omitempty,max=255"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`
}

// RecipeInfo 是列表和写入时使用的形式：关联只给出 ID
type RecipeInfo struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	TimeMinutes int    `json:"time_minutes"`
	Price       string `json:"price"`
	Link        string `json:"link"`
	Tags        []uint `json:"tags"`
	Ingredients []uint `json:"ingredients"`
}

// RecipeDetail 是详情形式：关联展开成完整对象
type RecipeDetail struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       string          `json:"price"`
	Link        string          `json:"link"`
	Image       *string         `json:"image"`
	Tags        []AttributeInfo `json:"tags"`
	Ingredients []AttributeInfo `json:"ingredients"`
}

type RecipeImage struct {
	ID    uint    `json:"id"`
	Image *string `json:"image"`
}

// RecipeListParams 列表查询参数，page 和 limit 都为 0 时返回全部
type RecipeListParams struct {
	Tags        string // 逗号分隔的标签 ID
	Ingredients string // 逗号分隔的食材 ID
	Page        uint
	Limit       uint
}
