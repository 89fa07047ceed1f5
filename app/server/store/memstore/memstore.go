// Package memstore is an in-memory store.Store used by tests in place of postgres.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"
)

var _ store.Store = (*Store)(nil)

type recipeRow struct {
	recipe        models.Recipe // 不含关联
	tagIDs        []uint
	ingredientIDs []uint
}

type Store struct {
	mu sync.Mutex

	nextID   uint
	accounts map[uint]models.Account
	tokens   map[string]models.AuthToken
	recipes  map[uint]*recipeRow

	tags        *attributes[models.Tag, *models.Tag]
	ingredients *attributes[models.Ingredient, *models.Ingredient]

	// PingErr 不为空时 Ping 返回它
	PingErr error
}

func New() *Store {
	s := &Store{
		accounts: make(map[uint]models.Account),
		tokens:   make(map[string]models.AuthToken),
		recipes:  make(map[uint]*recipeRow),
	}
	s.tags = &attributes[models.Tag, *models.Tag]{s: s, rows: make(map[uint]models.Tag)}
	s.ingredients = &attributes[models.Ingredient, *models.Ingredient]{s: s, rows: make(map[uint]models.Ingredient)}
	return s
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) Tags() store.Attributes[models.Tag] {
	return s.tags
}

func (s *Store) Ingredients() store.Attributes[models.Ingredient] {
	return s.ingredients
}

func (s *Store) Ping(context.Context) error {
	return s.PingErr
}

func notFound(what string, id any) error {
	return fmt.Errorf("%s %v: %w", what, id, store.ErrNotFound)
}

// ---- accounts ----

func (s *Store) CreateAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == account.Email {
			return fmt.Errorf("create account: %w", store.ErrDuplicate)
		}
	}

	now := time.Now()
	account.ID = s.id()
	account.CreatedAt, account.UpdatedAt = now, now
	s.accounts[account.ID] = *account
	return nil
}

func (s *Store) SaveAccount(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; !ok {
		return notFound("account", account.ID)
	}
	for _, a := range s.accounts {
		if a.ID != account.ID && a.Email == account.Email {
			return fmt.Errorf("save account: %w", store.ErrDuplicate)
		}
	}

	account.UpdatedAt = time.Now()
	s.accounts[account.ID] = *account
	return nil
}

func (s *Store) FindAccount(_ context.Context, id uint) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, notFound("account", id)
	}
	return &a, nil
}

func (s *Store) FindAccountByEmail(_ context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, notFound("account", email)
}

func (s *Store) DeleteAccount(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[id]; !ok {
		return notFound("account", id)
	}
	delete(s.accounts, id)

	// 级联删除
	for key, t := range s.tokens {
		if t.AccountID == id {
			delete(s.tokens, key)
		}
	}
	for rid, row := range s.recipes {
		if row.recipe.AccountID == id {
			delete(s.recipes, rid)
		}
	}
	s.tags.deleteOwnedLocked(id)
	s.ingredients.deleteOwnedLocked(id)
	return nil
}

func (s *Store) IssueToken(_ context.Context, accountID uint, key string) (*models.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tokens {
		if t.AccountID == accountID {
			return &t, nil
		}
	}
	if _, ok := s.accounts[accountID]; !ok {
		return nil, notFound("account", accountID)
	}

	t := models.AuthToken{Key: key, AccountID: accountID, CreatedAt: time.Now()}
	s.tokens[key] = t
	return &t, nil
}

func (s *Store) FindAccountByToken(_ context.Context, key string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[key]
	if !ok {
		return nil, notFound("token", key)
	}
	a, ok := s.accounts[t.AccountID]
	if !ok {
		return nil, notFound("account", t.AccountID)
	}
	return &a, nil
}

func (s *Store) FindToken(_ context.Context, accountID uint) (*models.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.tokens {
		if t.AccountID == accountID {
			return &t, nil
		}
	}
	return nil, notFound("token of account", accountID)
}

// ---- recipes ----

func containsAny(have []uint, want []uint) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (s *Store) matchLocked(ownerID uint, filter store.RecipeFilter) []*recipeRow {
	var rows []*recipeRow
	for _, row := range s.recipes {
		if row.recipe.AccountID != ownerID {
			continue
		}
		if len(filter.TagIDs) > 0 && !containsAny(row.tagIDs, filter.TagIDs) {
			continue
		}
		if len(filter.IngredientIDs) > 0 && !containsAny(row.ingredientIDs, filter.IngredientIDs) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].recipe.ID < rows[j].recipe.ID })
	return rows
}

func (s *Store) materializeLocked(row *recipeRow) models.Recipe {
	r := row.recipe
	r.Tags = s.tags.pickLocked(row.tagIDs)
	r.Ingredients = s.ingredients.pickLocked(row.ingredientIDs)
	return r
}

func (s *Store) ListRecipes(_ context.Context, ownerID uint, filter store.RecipeFilter) ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.matchLocked(ownerID, filter)
	if filter.Limit > 0 {
		if filter.Offset >= len(rows) {
			rows = nil
		} else {
			rows = rows[filter.Offset:min(len(rows), filter.Offset+filter.Limit)]
		}
	}

	recipes := []models.Recipe{}
	for _, row := range rows {
		recipes = append(recipes, s.materializeLocked(row))
	}
	return recipes, nil
}

func (s *Store) CountRecipes(_ context.Context, ownerID uint, filter store.RecipeFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.matchLocked(ownerID, filter))), nil
}

func (s *Store) FindRecipe(_ context.Context, ownerID uint, id uint) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.recipes[id]
	if !ok || row.recipe.AccountID != ownerID {
		return nil, notFound("recipe", id)
	}
	r := s.materializeLocked(row)
	return &r, nil
}

func tagIDs(tags []models.Tag) []uint {
	var ids []uint
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}

func ingredientIDs(ingredients []models.Ingredient) []uint {
	var ids []uint
	for _, i := range ingredients {
		ids = append(ids, i.ID)
	}
	return ids
}

func (s *Store) CreateRecipe(_ context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	recipe.ID = s.id()
	recipe.CreatedAt, recipe.UpdatedAt = now, now

	row := &recipeRow{
		tagIDs:        tagIDs(recipe.Tags),
		ingredientIDs: ingredientIDs(recipe.Ingredients),
	}
	row.recipe = *recipe
	row.recipe.Tags, row.recipe.Ingredients = nil, nil
	s.recipes[recipe.ID] = row
	return nil
}

func (s *Store) SaveRecipe(_ context.Context, recipe *models.Recipe, relations ...store.Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.recipes[recipe.ID]
	if !ok {
		return notFound("recipe", recipe.ID)
	}

	recipe.UpdatedAt = time.Now()
	row.recipe = *recipe
	row.recipe.Tags, row.recipe.Ingredients = nil, nil
	for _, rel := range relations {
		switch rel {
		case store.RelationTags:
			row.tagIDs = tagIDs(recipe.Tags)
		case store.RelationIngredients:
			row.ingredientIDs = ingredientIDs(recipe.Ingredients)
		default:
			return fmt.Errorf("unknown relation %q", rel)
		}
	}
	return nil
}

func (s *Store) DeleteRecipe(_ context.Context, ownerID uint, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.recipes[id]
	if !ok || row.recipe.AccountID != ownerID {
		return notFound("recipe", id)
	}
	delete(s.recipes, id)
	return nil
}

// unlinkLocked 删除标签或食材时同步清理关联
func (s *Store) unlinkLocked(id uint) {
	for _, row := range s.recipes {
		row.tagIDs = without(row.tagIDs, id)
		row.ingredientIDs = without(row.ingredientIDs, id)
	}
}

func without(ids []uint, id uint) []uint {
	var res []uint
	for _, i := range ids {
		if i != id {
			res = append(res, i)
		}
	}
	return res
}
