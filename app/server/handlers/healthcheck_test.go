package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	env.st.PingErr = errors.New("connection refused")
	rec = env.do(t, http.MethodGet, "/api/healthcheck", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
