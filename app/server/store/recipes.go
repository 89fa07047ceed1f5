package store

import (
	"context"
	"fmt"

	"recipe-app-api/app/server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func (g *Gorm) recipeQuery(ctx context.Context, ownerID uint, filter RecipeFilter) *gorm.DB {
	q := g.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("account_id = ?", ownerID)

	// 两种过滤条件各自是一个 IN 集合，同时出现时取交集
	if len(filter.TagIDs) > 0 {
		q = q.Where("id IN (?)", g.db.Table("recipe_tags").Select("recipe_id").Where("tag_id IN ?", filter.TagIDs))
	}
	if len(filter.IngredientIDs) > 0 {
		q = q.Where("id IN (?)", g.db.Table("recipe_ingredients").Select("recipe_id").Where("ingredient_id IN ?", filter.IngredientIDs))
	}

	return q
}

func (g *Gorm) ListRecipes(ctx context.Context, ownerID uint, filter RecipeFilter) ([]models.Recipe, error) {
	q := g.recipeQuery(ctx, ownerID, filter).
		Preload("Tags", orderByID).
		Preload("Ingredients", orderByID).
		Order("id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	recipes := []models.Recipe{}
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", translate(err))
	}

	return recipes, nil
}

func (g *Gorm) CountRecipes(ctx context.Context, ownerID uint, filter RecipeFilter) (int64, error) {
	var count int64
	if err := g.recipeQuery(ctx, ownerID, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count recipes: %w", translate(err))
	}

	return count, nil
}

func (g *Gorm) FindRecipe(ctx context.Context, ownerID uint, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := g.db.WithContext(ctx).
		Preload("Tags", orderByID).
		Preload("Ingredients", orderByID).
		First(&recipe, "id = ? AND account_id = ?", id, ownerID).Error; err != nil {
		return nil, fmt.Errorf("find recipe %d: %w", id, translate(err))
	}

	return &recipe, nil
}

func (g *Gorm) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return err
		}
		return replaceRelations(tx, recipe, RelationTags, RelationIngredients)
	})
	if err != nil {
		return fmt.Errorf("create recipe: %w", translate(err))
	}

	return nil
}

func (g *Gorm) SaveRecipe(ctx context.Context, recipe *models.Recipe, relations ...Relation) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		return replaceRelations(tx, recipe, relations...)
	})
	if err != nil {
		return fmt.Errorf("save recipe %d: %w", recipe.ID, translate(err))
	}

	return nil
}

// replaceRelations 把关联表改写成 recipe 上当前的值，空列表表示清空
func replaceRelations(tx *gorm.DB, recipe *models.Recipe, relations ...Relation) error {
	for _, rel := range relations {
		var values any
		switch rel {
		case RelationTags:
			values = recipe.Tags
		case RelationIngredients:
			values = recipe.Ingredients
		default:
			return fmt.Errorf("unknown relation %q", rel)
		}

		association := tx.Model(recipe).Association(string(rel))
		var err error
		if relationLen(values) == 0 {
			err = association.Clear()
		} else {
			err = association.Replace(values)
		}
		if err != nil {
			return fmt.Errorf("replace %s: %w", rel, err)
		}
	}

	return nil
}

func relationLen(values any) int {
	switch v := values.(type) {
	case []models.Tag:
		return len(v)
	case []models.Ingredient:
		return len(v)
	default:
		return 0
	}
}

func (g *Gorm) DeleteRecipe(ctx context.Context, ownerID uint, id uint) error {
	res := g.db.WithContext(ctx).Delete(&models.Recipe{}, "id = ? AND account_id = ?", id, ownerID)
	if res.Error != nil {
		return fmt.Errorf("delete recipe %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete recipe %d: %w", id, ErrNotFound)
	}

	return nil
}
