package inits

import (
	"context"
	"testing"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/config"
	"recipe-app-api/app/server/store/memstore"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitDataCreatesSuperuserOnce(t *testing.T) {
	st := memstore.New()
	m, err := accounts.NewManager(st, accounts.WithParams(&argon2id.Params{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32,
	}))
	require.NoError(t, err)

	var cfg config.Config
	cfg.Bootstrap.SuperuserEmail = "admin@EXAMPLE.com"
	cfg.Bootstrap.SuperuserPassword = "admin123"

	ctx := context.Background()
	require.NoError(t, InitData(ctx, &cfg, st, m, zap.NewNop()))
	require.NoError(t, InitData(ctx, &cfg, st, m, zap.NewNop()))

	account, err := st.FindAccountByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, account.IsSuperuser)
	assert.True(t, account.IsStaff)
}

func TestInitDataWithoutSuperuser(t *testing.T) {
	st := memstore.New()
	m, err := accounts.NewManager(st)
	require.NoError(t, err)

	assert.NoError(t, InitData(context.Background(), &config.Config{}, st, m, zap.NewNop()))
}
