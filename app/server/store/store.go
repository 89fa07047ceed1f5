// Package store is the data access layer. Every read and write of an owned row takes the
// owner's account ID explicitly; rows owned by somebody else behave exactly like missing rows.
package store

import (
	"context"
	"errors"

	"recipe-app-api/app/server/models"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicated key")
	ErrUnknownIDs = errors.New("unknown ids")
)

type Accounts interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	SaveAccount(ctx context.Context, account *models.Account) error
	FindAccount(ctx context.Context, id uint) (*models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	DeleteAccount(ctx context.Context, id uint) error

	// IssueToken returns the account's token, creating it with key when there is none yet.
	IssueToken(ctx context.Context, accountID uint, key string) (*models.AuthToken, error)
	FindAccountByToken(ctx context.Context, key string) (*models.Account, error)
	FindToken(ctx context.Context, accountID uint) (*models.AuthToken, error)
}

// Attributes is the owner-scoped repository shared by tags and ingredients.
type Attributes[M any] interface {
	List(ctx context.Context, ownerID uint) ([]M, error) // ordered by name, descending
	Find(ctx context.Context, ownerID uint, id uint) (*M, error)
	Create(ctx context.Context, m *M) error
	Save(ctx context.Context, m *M) error
	Delete(ctx context.Context, ownerID uint, id uint) error

	// Resolve loads every id in ids owned by ownerID, failing with ErrUnknownIDs if any is missing.
	Resolve(ctx context.Context, ownerID uint, ids []uint) ([]M, error)
}

type RecipeFilter struct {
	TagIDs        []uint // 至少包含其中一个标签
	IngredientIDs []uint // 至少包含其中一个食材

	Limit  int // <= 0 表示不限制
	Offset int
}

// Relation names an association of a recipe that SaveRecipe should rewrite.
type Relation string

const (
	RelationTags        Relation = "Tags"
	RelationIngredients Relation = "Ingredients"
)

type Recipes interface {
	ListRecipes(ctx context.Context, ownerID uint, filter RecipeFilter) ([]models.Recipe, error)
	CountRecipes(ctx context.Context, ownerID uint, filter RecipeFilter) (int64, error)
	FindRecipe(ctx context.Context, ownerID uint, id uint) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe *models.Recipe) error
	SaveRecipe(ctx context.Context, recipe *models.Recipe, relations ...Relation) error
	DeleteRecipe(ctx context.Context, ownerID uint, id uint) error
}

type Store interface {
	Accounts
	Recipes

	Tags() Attributes[models.Tag]
	Ingredients() Attributes[models.Ingredient]

	Ping(ctx context.Context) error
}
