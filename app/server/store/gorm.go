package store

import (
	"context"
	"errors"
	"fmt"

	"recipe-app-api/app/server/models"

	"gorm.io/gorm"
)

var _ Store = (*Gorm)(nil)

type Gorm struct {
	db *gorm.DB

	tags        *gormAttributes[models.Tag]
	ingredients *gormAttributes[models.Ingredient]
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{
		db:          db,
		tags:        &gormAttributes[models.Tag]{db: db},
		ingredients: &gormAttributes[models.Ingredient]{db: db},
	}
}

func (g *Gorm) Tags() Attributes[models.Tag] {
	return g.tags
}

func (g *Gorm) Ingredients() Attributes[models.Ingredient] {
	return g.ingredients
}

func (g *Gorm) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	return sqlDB.PingContext(ctx)
}

// translate 把 gorm 的错误转换成本包的错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}

// Migrate 创建或更新所有表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Account{},
		&models.AuthToken{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
	)
}
