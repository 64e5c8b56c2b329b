package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/portfolio-lab/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.False(t, cfg.IsProduction())
	require.Equal(t, config.AuthStrategyLocal, cfg.GetAuthStrategy())
	require.Equal(t, "http://localhost:8080/token", cfg.GetRemoteTokenURL())
	require.Equal(t, "http://localhost:8080", cfg.GetTokenIssuer())
	require.Equal(t, filepath.Join("./data", "client-storage.db"), cfg.GetSQLitePath())

	attempts, window := cfg.GetLoginRateLimit()
	require.Equal(t, 5, attempts)
	require.Equal(t, time.Minute, window)
	require.True(t, cfg.GetAllowedOrigins().IsAllowedOrigin("http://localhost:8080"))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	yaml := `
app:
  port: "9090"
  name: Lab
  prefer_dark: true
security:
  login_attempts: 3
  login_window: 30s
storage:
  driver: sqlite
  sqlite_path: /tmp/x.db
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("PORTFOLIO_APP__PORT", ":7070")
	t.Setenv("PORTFOLIO_AUTH__STRATEGY", "remote")
	t.Setenv("PORTFOLIO_AUTH__REMOTE_TOKEN_URL", "https://auth.example.com/token")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	require.Equal(t, ":7070", cfg.GetPort(), "env wins over file")
	require.Equal(t, "Lab", cfg.GetAppName())
	require.True(t, cfg.GetPreferDark())
	attempts, window := cfg.GetLoginRateLimit()
	require.Equal(t, 3, attempts)
	require.Equal(t, 30*time.Second, window)
	require.Equal(t, config.StorageSQLite, cfg.GetStorageDriver())
	require.Equal(t, "/tmp/x.db", cfg.GetSQLitePath())
	require.Equal(t, config.AuthStrategyRemote, cfg.GetAuthStrategy())
	require.Equal(t, "https://auth.example.com/token", cfg.GetRemoteTokenURL())
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*config.Settings){
		"unknown strategy":       func(s *config.Settings) { s.Auth.Strategy = "ldap" },
		"relative remote url":    func(s *config.Settings) { s.Auth.Strategy = "remote"; s.Auth.RemoteTokenURL = "/token" },
		"unknown driver":         func(s *config.Settings) { s.Storage.Driver = "redis" },
		"postgres without dsn":   func(s *config.Settings) { s.Storage.Driver = "postgres" },
		"dev secret in prod":     func(s *config.Settings) { s.App.Env = "prod" },
		"negative rate limit":    func(s *config.Settings) { s.Security.LoginAttempts = -1 },
		"rate limit, no window":  func(s *config.Settings) { s.Security.LoginWindow = 0 },
		"cookie max age too low": func(s *config.Settings) { s.Security.CookieMaxAge = 0 },
		"no port":                func(s *config.Settings) { s.App.Port = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := config.Default()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}

	t.Run("production with secrets", func(t *testing.T) {
		cfg := config.Default()
		cfg.App.Env = "prod"
		cfg.Auth.TokenSecret = "a-real-token-secret"
		cfg.Storage.CookieSecret = "a-real-cookie-secret"
		require.NoError(t, cfg.Validate())
		require.True(t, cfg.IsProduction())
	})
}

func TestAllowedOrigins(t *testing.T) {
	cfg := config.Default()
	cfg.Cors.AllowedOrigins = []string{" https://b.example ", "https://a.example", ""}
	origins := cfg.GetAllowedOrigins()
	require.Equal(t, []string{"https://a.example", "https://b.example"}, origins.List())
	require.Equal(t, "https://a.example, https://b.example", origins.String())
	require.False(t, origins.IsAllowedOrigin(""))
}
