package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/users/create", "", map[string]any{
		"email":    "test@LONDONAPPDEV.com",
		"password": "testpass123",
		"name":     "Test Name",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[map[string]any](t, rec)
	assert.Equal(t, "test@londonappdev.com", res["email"])
	assert.Equal(t, "Test Name", res["name"])
	assert.NotContains(t, res, "password")

	account, err := env.st.FindAccountByEmail(context.Background(), "test@londonappdev.com")
	require.NoError(t, err)
	assert.NotEqual(t, "testpass123", account.Password)

	_, err = env.m.Authenticate(context.Background(), "test@londonappdev.com", "testpass123")
	assert.NoError(t, err)
}

func TestUserCreateRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "test@example.com")

	rec := env.do(t, http.MethodPost, "/api/users/create", "", map[string]any{
		"email":    "test@EXAMPLE.com",
		"password": "testpass123",
		"name":     "Again",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec), "email")
}

func TestUserCreateValidation(t *testing.T) {
	env := newTestEnv(t)

	for name, tc := range map[string]struct {
		payload map[string]any
		field   string
	}{
		"short password": {map[string]any{"email": "a@example.com", "password": "pw", "name": "A"}, "password"},
		"missing email":  {map[string]any{"password": "testpass123", "name": "A"}, "email"},
		"invalid email":  {map[string]any{"email": "not-an-email", "password": "testpass123", "name": "A"}, "email"},
		"blank name":     {map[string]any{"email": "a@example.com", "password": "testpass123", "name": "  "}, "name"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/users/create", "", tc.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode[map[string]any](t, rec), tc.field)
		})
	}

	_, err := env.st.FindAccountByEmail(context.Background(), "a@example.com")
	assert.Error(t, err)
}

func TestUserTokenReusesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "test@example.com")

	rec := env.do(t, http.MethodPost, "/api/users/token", "", map[string]any{
		"email":    "test@example.com",
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, token, decode[map[string]any](t, rec)["token"])
	assert.Len(t, token, 32)
}

func TestUserTokenFailures(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "test@example.com")

	for name, payload := range map[string]map[string]any{
		"wrong password":   {"email": "test@example.com", "password": "wrongpass"},
		"unknown email":    {"email": "nobody@example.com", "password": "testpass123"},
		"missing password": {"email": "test@example.com"},
		"blank password":   {"email": "test@example.com", "password": ""},
	} {
		t.Run(name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/users/token", "", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotContains(t, decode[map[string]any](t, rec), "token")
		})
	}

	rec := env.do(t, http.MethodPost, "/api/users/token", "", map[string]any{
		"email":    "test@example.com",
		"password": "wrongpass",
	})
	assert.JSONEq(t, `{"non_field_errors":["Unable to authenticate with provided credentials"]}`, rec.Body.String())
}

func TestUserMeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserMe(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "test@example.com")

	rec := env.do(t, http.MethodGet, "/api/users/me/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"email":"test@example.com","name":"Test Name"}`, rec.Body.String())

	// 部分更新：名字和密码
	rec = env.do(t, http.MethodPatch, "/api/users/me", token, map[string]any{
		"name":     "Updated",
		"password": "newpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"email":"test@example.com","name":"Updated"}`, rec.Body.String())

	_, err := env.m.Authenticate(context.Background(), "test@example.com", "newpass123")
	assert.NoError(t, err)
}

func TestUserMeFullUpdateRequiresAllFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "test@example.com")

	rec := env.do(t, http.MethodPut, "/api/users/me", token, map[string]any{"name": "Only Name"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	res := decode[map[string]any](t, rec)
	assert.Contains(t, res, "email")
	assert.Contains(t, res, "password")
}

func TestUserMeEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "other@example.com")
	token := env.signup(t, "test@example.com")

	rec := env.do(t, http.MethodPatch, "/api/users/me", token, map[string]any{"email": "other@EXAMPLE.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec), "email")
}
