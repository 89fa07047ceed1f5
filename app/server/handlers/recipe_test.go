package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"recipe-app-api/app/server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipesPath = "/api/recipe/recipes"

func recipePath(id uint) string {
	return fmt.Sprintf("%s/%d", recipesPath, id)
}

func createRecipe(t *testing.T, env *testEnv, token string, payload map[string]any) types.RecipeInfo {
	t.Helper()

	body := map[string]any{
		"title":        "Sample recipe",
		"time_minutes": 22,
		"price":        "5.25",
	}
	for k, v := range payload {
		body[k] = v
	}

	rec := env.do(t, http.MethodPost, recipesPath, token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[types.RecipeInfo](t, rec)
}

func TestRecipeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, recipesPath, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestRecipeCreate(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	rec := env.do(t, http.MethodPost, recipesPath, token, map[string]any{
		"title":        "Thai prawn curry",
		"time_minutes": 30,
		"price":        5.5,
		"link":         "https://example.com/curry",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[map[string]any](t, rec)
	assert.Equal(t, "Thai prawn curry", res["title"])
	assert.Equal(t, float64(30), res["time_minutes"])
	assert.Equal(t, "5.50", res["price"])
	assert.Equal(t, "https://example.com/curry", res["link"])
	assert.Equal(t, []any{}, res["tags"])
	assert.Equal(t, []any{}, res["ingredients"])
	assert.NotContains(t, res, "image")
}

func TestRecipeCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	for name, tc := range map[string]struct {
		payload map[string]any
		field   string
	}{
		"missing title":     {map[string]any{"time_minutes": 5, "price": "1.00"}, "title"},
		"missing time":      {map[string]any{"title": "T", "price": "1.00"}, "time_minutes"},
		"negative time":     {map[string]any{"title": "T", "time_minutes": -1, "price": "1.00"}, "time_minutes"},
		"missing price":     {map[string]any{"title": "T", "time_minutes": 5}, "price"},
		"too many decimals": {map[string]any{"title": "T", "time_minutes": 5, "price": "1.005"}, "price"},
		"too large price":   {map[string]any{"title": "T", "time_minutes": 5, "price": "1000.00"}, "price"},
		"time wrong type":   {map[string]any{"title": "T", "time_minutes": "soon", "price": "1.00"}, "time_minutes"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, recipesPath, token, tc.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]any](t, rec), tc.field)
		})
	}
}

func TestRecipeCreateRejectsUnknownOrForeignIDs(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")
	other := env.signup(t, "other@example.com")

	foreignTag := createAttribute(t, env, "/api/recipe/tags", other, "Foreign")
	ownTag := createAttribute(t, env, "/api/recipe/tags", token, "Own")

	for _, ids := range [][]uint{{9999}, {foreignTag.ID}, {ownTag.ID, foreignTag.ID}} {
		rec := env.do(t, http.MethodPost, recipesPath, token, map[string]any{
			"title":        "Bad",
			"time_minutes": 1,
			"price":        "1.00",
			"tags":         ids,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[map[string]any](t, rec), "tags")
	}

	rec := env.do(t, http.MethodGet, recipesPath, token, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecipeDetailEmbedsRelations(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	vegan := createAttribute(t, env, "/api/recipe/tags", token, "Vegan")
	dessert := createAttribute(t, env, "/api/recipe/tags", token, "Dessert")
	salt := createAttribute(t, env, "/api/recipe/ingredients", token, "Salt")

	created := createRecipe(t, env, token, map[string]any{
		"tags":        []uint{dessert.ID, vegan.ID},
		"ingredients": []uint{salt.ID},
	})
	assert.ElementsMatch(t, []uint{vegan.ID, dessert.ID}, created.Tags)
	assert.Equal(t, []uint{salt.ID}, created.Ingredients)

	rec := env.do(t, http.MethodGet, recipePath(created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	detail := decode[types.RecipeDetail](t, rec)
	assert.Equal(t, created.ID, detail.ID)
	assert.Equal(t, "5.25", detail.Price)
	assert.Nil(t, detail.Image)
	assert.ElementsMatch(t, []types.AttributeInfo{vegan, dessert}, detail.Tags)
	assert.Equal(t, []types.AttributeInfo{salt}, detail.Ingredients)
}

func TestRecipeIsolation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")
	other := env.signup(t, "other@example.com")

	mine := createRecipe(t, env, token, map[string]any{"title": "Mine"})
	theirs := createRecipe(t, env, other, map[string]any{"title": "Theirs"})

	rec := env.do(t, http.MethodGet, recipesPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]types.RecipeInfo](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodPut, http.MethodDelete} {
		var payload any
		if method == http.MethodPatch || method == http.MethodPut {
			payload = map[string]any{"title": "Hijacked", "time_minutes": 1, "price": "1.00"}
		}
		rec = env.do(t, method, recipePath(theirs.ID), token, payload)
		assert.Equal(t, http.StatusNotFound, rec.Code, method)
		assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String(), method)
	}

	rec = env.do(t, http.MethodGet, recipePath(theirs.ID), other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Theirs", decode[types.RecipeDetail](t, rec).Title)
}

func TestRecipeListInsertionOrder(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	first := createRecipe(t, env, token, map[string]any{"title": "Zucchini bake"})
	second := createRecipe(t, env, token, map[string]any{"title": "Apple pie"})

	rec := env.do(t, http.MethodGet, recipesPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(headerPageMax))

	list := decode[[]types.RecipeInfo](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}

func TestRecipeListFilters(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")
	other := env.signup(t, "other@example.com")

	vegan := createAttribute(t, env, "/api/recipe/tags", token, "Vegan")
	quick := createAttribute(t, env, "/api/recipe/tags", token, "Quick")
	unused := createAttribute(t, env, "/api/recipe/tags", token, "Unused")
	salt := createAttribute(t, env, "/api/recipe/ingredients", token, "Salt")

	r1 := createRecipe(t, env, token, map[string]any{"title": "R1", "tags": []uint{vegan.ID}, "ingredients": []uint{salt.ID}})
	r2 := createRecipe(t, env, token, map[string]any{"title": "R2", "tags": []uint{quick.ID}})
	r3 := createRecipe(t, env, token, map[string]any{"title": "R3"})
	createRecipe(t, env, other, map[string]any{"title": "Theirs"})

	ids := func(query string) []uint {
		rec := env.do(t, http.MethodGet, recipesPath+query, token, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res []uint
		for _, r := range decode[[]types.RecipeInfo](t, rec) {
			res = append(res, r.ID)
		}
		return res
	}

	assert.Equal(t, []uint{r1.ID, r2.ID, r3.ID}, ids(""))
	assert.Equal(t, []uint{r1.ID, r2.ID}, ids(fmt.Sprintf("?tags=%d,%d", vegan.ID, quick.ID)))
	assert.Equal(t, []uint{r1.ID}, ids(fmt.Sprintf("?tags=%d", vegan.ID)))
	assert.Empty(t, ids(fmt.Sprintf("?tags=%d", unused.ID)))
	assert.Equal(t, []uint{r1.ID}, ids(fmt.Sprintf("?ingredients=%d", salt.ID)))
	assert.Equal(t, []uint{r1.ID}, ids(fmt.Sprintf("?tags=%d,%d&ingredients=%d", vegan.ID, quick.ID, salt.ID)))
	assert.Empty(t, ids(fmt.Sprintf("?tags=%d&ingredients=%d", quick.ID, salt.ID)))

	rec := env.do(t, http.MethodGet, recipesPath+"?tags=1,x", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec), "tags")
}

func TestRecipeListPagination(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	var created []uint
	for i := 0; i < 5; i++ {
		created = append(created, createRecipe(t, env, token, map[string]any{"title": fmt.Sprintf("R%d", i)}).ID)
	}

	rec := env.do(t, http.MethodGet, recipesPath+"?page=2&limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get(headerPageMax))

	list := decode[[]types.RecipeInfo](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, created[2], list[0].ID)
	assert.Equal(t, created[3], list[1].ID)

	rec = env.do(t, http.MethodGet, recipesPath+"?page=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecipePartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	tag := createAttribute(t, env, "/api/recipe/tags", token, "Vegan")
	created := createRecipe(t, env, token, map[string]any{
		"title": "Original",
		"link":  "https://example.com/r",
		"tags":  []uint{tag.ID},
	})

	payload := map[string]any{"title": "Renamed"}
	var first, second string
	for i, body := range []*string{&first, &second} {
		rec := env.do(t, http.MethodPatch, recipePath(created.ID), token, payload)
		require.Equal(t, http.StatusOK, rec.Code, "attempt %d: %s", i, rec.Body.String())
		*body = rec.Body.String()
	}
	assert.JSONEq(t, first, second)

	detail := decode[types.RecipeDetail](t, env.do(t, http.MethodGet, recipePath(created.ID), token, nil))
	assert.Equal(t, "Renamed", detail.Title)
	assert.Equal(t, "https://example.com/r", detail.Link)
	assert.Equal(t, "5.25", detail.Price)
	assert.Equal(t, []types.AttributeInfo{tag}, detail.Tags)
}

func TestRecipePartialUpdateReplacesSuppliedRelations(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	breakfast := createAttribute(t, env, "/api/recipe/tags", token, "Breakfast")
	lunch := createAttribute(t, env, "/api/recipe/tags", token, "Lunch")
	created := createRecipe(t, env, token, map[string]any{"tags": []uint{breakfast.ID}})

	rec := env.do(t, http.MethodPatch, recipePath(created.ID), token, map[string]any{"tags": []uint{lunch.ID}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uint{lunch.ID}, decode[types.RecipeInfo](t, rec).Tags)

	rec = env.do(t, http.MethodPatch, recipePath(created.ID), token, map[string]any{"tags": []uint{}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[types.RecipeInfo](t, rec).Tags)
}

func TestRecipeFullUpdateClearsOmittedFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	tag := createAttribute(t, env, "/api/recipe/tags", token, "Vegan")
	ingredient := createAttribute(t, env, "/api/recipe/ingredients", token, "Salt")
	created := createRecipe(t, env, token, map[string]any{
		"link":        "https://example.com/r",
		"tags":        []uint{tag.ID},
		"ingredients": []uint{ingredient.ID},
	})

	rec := env.do(t, http.MethodPut, recipePath(created.ID), token, map[string]any{
		"title":        "Replaced",
		"time_minutes": 10,
		"price":        "2.00",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	res := decode[types.RecipeInfo](t, rec)
	assert.Equal(t, "Replaced", res.Title)
	assert.Equal(t, 10, res.TimeMinutes)
	assert.Equal(t, "2.00", res.Price)
	assert.Empty(t, res.Link)
	assert.Empty(t, res.Tags)
	assert.Empty(t, res.Ingredients)

	// 整体更新缺少必填字段
	rec = env.do(t, http.MethodPut, recipePath(created.ID), token, map[string]any{"title": "Only title"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs := decode[map[string]any](t, rec)
	assert.Contains(t, errs, "time_minutes")
	assert.Contains(t, errs, "price")
}

func TestRecipeDestroy(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	created := createRecipe(t, env, token, nil)

	rec := env.do(t, http.MethodDelete, recipePath(created.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodGet, recipePath(created.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeletingTagDetachesItFromRecipes(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	tag := createAttribute(t, env, "/api/recipe/tags", token, "Vegan")
	created := createRecipe(t, env, token, map[string]any{"tags": []uint{tag.ID}})

	rec := env.do(t, http.MethodDelete, fmt.Sprintf("/api/recipe/tags/%d", tag.ID), token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	detail := decode[types.RecipeDetail](t, env.do(t, http.MethodGet, recipePath(created.ID), token, nil))
	assert.Empty(t, detail.Tags)
}
