package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/portfolio-lab/auth"
	"github.com/jrsteele09/portfolio-lab/internal/config"
	"github.com/jrsteele09/portfolio-lab/storage"
	"github.com/rs/zerolog/log"
)

// System is everything the server needs that depends on configuration
// and may hold open resources.
type System struct {
	Scope    storage.RequestScoped
	Checker  auth.Checker
	Accounts *auth.LocalTable

	closers []func() error
}

// InitialiseSystem opens client storage and builds the credential checker
// the configuration asks for.
func InitialiseSystem(ctx context.Context, cfg config.Config) (*System, error) {
	accounts, err := auth.NewLocalTable(auth.DemoAccounts()...)
	if err != nil {
		return nil, fmt.Errorf("[Server InitialiseSystem] demo accounts: %w", err)
	}
	sys := &System{Accounts: accounts}

	sys.Checker, err = NewChecker(cfg, accounts)
	if err != nil {
		return nil, fmt.Errorf("[Server InitialiseSystem] credential checker: %w", err)
	}

	if err := sys.openScope(ctx, cfg); err != nil {
		return nil, fmt.Errorf("[Server InitialiseSystem] client storage: %w", err)
	}

	log.Info().
		Str("base_url", cfg.GetBaseURL()).
		Str("storage", cfg.GetStorageDriver()).
		Str("auth", cfg.GetAuthStrategy()).
		Msg("System configuration")
	if cfg.GetEnv() == config.DevEnv {
		for _, a := range accounts.Accounts() {
			log.Info().Str("email", a.Email).Str("password", a.Password).Str("role", a.Role.String()).Msg("Demo account")
		}
	}
	return sys, nil
}

func (sys *System) openScope(ctx context.Context, cfg config.Config) error {
	secure := cfg.GetSecureCookies()
	switch cfg.GetStorageDriver() {
	case config.StorageCookie:
		key, err := storage.DeriveCookieKey(cfg.GetCookieSecret())
		if err != nil {
			return err
		}
		scope, err := storage.NewCookieScope(key, int(cfg.GetCookieMaxAge().Seconds()), secure)
		if err != nil {
			return err
		}
		sys.Scope = scope
		return nil
	case config.StorageMemory:
		sys.Scope = storage.NewMemoryScope(storage.NewMemory())
		return nil
	}

	backend, closer, err := OpenBackend(ctx, cfg)
	if err != nil {
		return err
	}
	sys.closers = append(sys.closers, closer)
	scope, err := storage.NewClientScope(backend, secure)
	if err != nil {
		return errors.Join(err, closer())
	}
	sys.Scope = scope
	return nil
}

// OpenBackend opens the server-side store for the sqlite and postgres
// drivers. Any other driver opens sqlite.
func OpenBackend(ctx context.Context, cfg config.StorageConfig) (storage.Namespacer, func() error, error) {
	if cfg.GetStorageDriver() == config.StoragePostgres {
		pg, err := storage.OpenPostgres(ctx, cfg.GetPostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	db, err := storage.OpenSQLite(ctx, cfg.GetSQLitePath())
	if err != nil {
		return nil, nil, err
	}
	return db, db.Close, nil
}

// NewChecker returns the credential check for the configured strategy.
func NewChecker(cfg config.AuthConfig, accounts *auth.LocalTable) (auth.Checker, error) {
	switch cfg.GetAuthStrategy() {
	case config.AuthStrategyRemote:
		rc, err := auth.NewRemoteCheck(cfg.GetRemoteTokenURL(), cfg.GetRemoteClientID(), cfg.GetRemoteTimeout())
		if err != nil {
			return nil, err
		}
		return rc, nil
	case config.AuthStrategyLocal, "":
		return accounts, nil
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.GetAuthStrategy())
	}
}

// Close releases the system's open stores.
func (sys *System) Close() error {
	var errs []error
	for _, c := range sys.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
