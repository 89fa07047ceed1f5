package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/storage"
	"recipe-app-api/app/server/store/memstore"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var cheapParams = &argon2id.Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type testEnv struct {
	e    *echo.Echo
	st   *memstore.Store
	m    *accounts.Manager
	root string // 本地图片存储目录
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memstore.New()
	m, err := accounts.NewManager(st, accounts.WithParams(cheapParams))
	require.NoError(t, err)

	root := t.TempDir()
	app := NewApp(zap.NewNop(), st, m, nil, storage.NewLocal(root, "/media/"), 1<<20)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	RegisterHandlers(e, app)

	return &testEnv{e: e, st: st, m: m, root: root}
}

func (env *testEnv) request(t *testing.T, method string, path string, token string, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) do(t *testing.T, method string, path string, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	if payload == nil {
		return env.request(t, method, path, token, "", nil)
	}

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return env.request(t, method, path, token, echo.MIMEApplicationJSON, bytes.NewReader(body))
}

// signup 注册账户并换取 token
func (env *testEnv) signup(t *testing.T, email string) string {
	t.Helper()

	rec := env.do(t, http.MethodPost, "/api/users/create", "", map[string]any{
		"email":    email,
		"password": "testpass123",
		"name":     "Test Name",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/users/token", "", map[string]any{
		"email":    email,
		"password": "testpass123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
