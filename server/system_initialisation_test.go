package server_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/internal/config"
	"github.com/jrsteele09/portfolio-lab/server"
	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/stretchr/testify/require"
)

func TestInitialiseSystem(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		driver string
		want   any
	}{
		{"cookie", config.StorageCookie, &storage.CookieScope{}},
		{"memory", config.StorageMemory, &storage.MemoryScope{}},
		{"sqlite", config.StorageSQLite, &storage.ClientScope{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.Driver = tt.driver
			cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "client.db")

			sys, err := server.InitialiseSystem(ctx, cfg)
			require.NoError(t, err)
			defer func() { require.NoError(t, sys.Close()) }()

			require.IsType(t, tt.want, sys.Scope)
			require.IsType(t, &auth.LocalTable{}, sys.Checker)
			require.Len(t, sys.Accounts.Accounts(), 2)

			kv, err := sys.Scope.ForRequest(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			require.NoError(t, kv.Set(ctx, "k", "v"))
			v, ok, err := kv.Get(ctx, "k")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "v", v)
		})
	}
}

func TestNewChecker(t *testing.T) {
	accounts, err := auth.NewLocalTable(auth.DemoAccounts()...)
	require.NoError(t, err)

	cfg := config.Default()
	checker, err := server.NewChecker(cfg, accounts)
	require.NoError(t, err)
	require.Same(t, accounts, checker)

	cfg.Auth.Strategy = config.AuthStrategyRemote
	checker, err = server.NewChecker(cfg, accounts)
	require.NoError(t, err)
	require.IsType(t, &auth.RemoteCheck{}, checker)

	cfg.Auth.Strategy = "ldap"
	_, err = server.NewChecker(cfg, accounts)
	require.Error(t, err)
}
