package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

const (
	StorageCookie   = "cookie"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type StorageConfig interface {
	GetStorageDriver() string
	GetSQLitePath() string
	GetPostgresDSN() string
	GetCookieSecret() string
}

type StorageSettings struct {
	Driver       string `koanf:"driver" yaml:"driver"`
	SQLitePath   string `koanf:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN  string `koanf:"postgres_dsn" yaml:"postgres_dsn"`
	CookieSecret string `koanf:"cookie_secret" yaml:"cookie_secret"`
}

func (st StorageSettings) validate(production bool) error {
	var errs []error
	switch st.Driver {
	case StorageCookie, StorageSQLite, StorageMemory:
	case StoragePostgres:
		if st.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q must be one of cookie, sqlite, postgres, memory", st.Driver))
	}
	if st.Driver == StorageCookie && (st.CookieSecret == "" || (production && st.CookieSecret == devSecret)) {
		errs = append(errs, errors.New("storage.cookie_secret must be set for the cookie driver"))
	}
	return errors.Join(errs...)
}

func (s *Settings) GetStorageDriver() string {
	return s.Storage.Driver
}

// GetSQLitePath defaults to client-storage.db inside the data folder.
func (s *Settings) GetSQLitePath() string {
	if s.Storage.SQLitePath != "" {
		return s.Storage.SQLitePath
	}
	return filepath.Join(s.GetDataFolder(), "client-storage.db")
}

func (s *Settings) GetPostgresDSN() string {
	return s.Storage.PostgresDSN
}

func (s *Settings) GetCookieSecret() string {
	return s.Storage.CookieSecret
}
