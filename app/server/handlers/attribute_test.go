package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"recipe-app-api/app/server/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attributePrefixes = []string{"/api/recipe/tags", "/api/recipe/ingredients"}

func createAttribute(t *testing.T, env *testEnv, prefix string, token string, name string) types.AttributeInfo {
	t.Helper()

	rec := env.do(t, http.MethodPost, prefix, token, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[types.AttributeInfo](t, rec)
}

func TestAttributeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	for _, prefix := range attributePrefixes {
		rec := env.do(t, http.MethodGet, prefix, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, prefix)
	}
}

func TestAttributeListIsScopedAndOrdered(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")
	other := env.signup(t, "other@example.com")

	for _, prefix := range attributePrefixes {
		t.Run(prefix, func(t *testing.T) {
			createAttribute(t, env, prefix, token, "Apple")
			createAttribute(t, env, prefix, token, "Kale")
			createAttribute(t, env, prefix, token, "Dessert")
			createAttribute(t, env, prefix, other, "Foreign")

			rec := env.do(t, http.MethodGet, prefix, token, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var names []string
			for _, info := range decode[[]types.AttributeInfo](t, rec) {
				names = append(names, info.Name)
			}
			assert.Equal(t, []string{"Kale", "Dessert", "Apple"}, names)
		})
	}
}

func TestAttributeListEmpty(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	rec := env.do(t, http.MethodGet, "/api/recipe/tags", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAttributeCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")

	for _, prefix := range attributePrefixes {
		rec := env.do(t, http.MethodPost, prefix, token, map[string]any{"name": ""})
		assert.Equal(t, http.StatusBadRequest, rec.Code, prefix)
		assert.Contains(t, decode[map[string]any](t, rec), "name", prefix)

		// id 不能由客户端指定
		rec = env.do(t, http.MethodPost, prefix, token, map[string]any{"id": 999, "name": "Named"})
		require.Equal(t, http.StatusCreated, rec.Code, prefix)
		assert.NotEqual(t, uint(999), decode[types.AttributeInfo](t, rec).ID, prefix)
	}
}

func TestAttributeUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")
	other := env.signup(t, "other@example.com")

	for _, prefix := range attributePrefixes {
		t.Run(prefix, func(t *testing.T) {
			info := createAttribute(t, env, prefix, token, "Before")
			path := fmt.Sprintf("%s/%d", prefix, info.ID)

			rec := env.do(t, http.MethodPatch, path, token, map[string]any{"name": "After"})
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, types.AttributeInfo{ID: info.ID, Name: "After"}, decode[types.AttributeInfo](t, rec))

			// 空的部分更新不改变任何内容
			rec = env.do(t, http.MethodPatch, path, token, map[string]any{})
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "After", decode[types.AttributeInfo](t, rec).Name)

			// 整体更新必须带上 name
			rec = env.do(t, http.MethodPut, path, token, map[string]any{})
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			// 其他账户看不到
			rec = env.do(t, http.MethodPatch, path, other, map[string]any{"name": "Stolen"})
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestAttributeDestroy(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "user@example.com")
	other := env.signup(t, "other@example.com")

	for _, prefix := range attributePrefixes {
		t.Run(prefix, func(t *testing.T) {
			info := createAttribute(t, env, prefix, token, "Doomed")
			path := fmt.Sprintf("%s/%d", prefix, info.ID)

			rec := env.do(t, http.MethodDelete, path, other, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = env.do(t, http.MethodDelete, path, token, nil)
			assert.Equal(t, http.StatusNoContent, rec.Code)

			rec = env.do(t, http.MethodDelete, path, token, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = env.do(t, http.MethodDelete, prefix+"/abc", token, nil)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}
