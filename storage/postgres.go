package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	_ Namespacer = (*Postgres)(nil)
	_ KV         = (*postgresKV)(nil)
)

const postgresSchema = `create table if not exists client_kv (
    namespace   text NOT NULL,
    key         text NOT NULL,
    value       text NOT NULL,
    updated_at  timestamp WITHOUT TIME ZONE NOT NULL DEFAULT (NOW() AT TIME ZONE 'UTC'),
    primary key (namespace, key))`

// Postgres keeps client values in a shared Postgres table so several server
// instances see the same clients.
type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, errors.New("[storage OpenPostgres] dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("[storage OpenPostgres] creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[storage OpenPostgres] ping: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[storage OpenPostgres] migrate: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Namespace(ns string) KV {
	return &postgresKV{pool: p.pool, ns: ns}
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

type postgresKV struct {
	pool *pgxpool.Pool
	ns   string
}

func (k *postgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.pool.QueryRow(ctx,
		`SELECT value FROM client_kv WHERE namespace = $1 AND key = $2`, k.ns, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[storage Postgres Get] %s: %w", key, errors.Join(ErrUnavailable, err))
	}
	return value, true, nil
}

func (k *postgresKV) Set(ctx context.Context, key, value string) error {
	_, err := k.pool.Exec(ctx, `INSERT INTO client_kv (namespace, key, value) VALUES ($1, $2, $3)
ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = (NOW() AT TIME ZONE 'UTC')`,
		k.ns, key, value)
	if err != nil {
		return fmt.Errorf("[storage Postgres Set] %s: %w", key, errors.Join(ErrUnavailable, err))
	}
	return nil
}

func (k *postgresKV) Delete(ctx context.Context, key string) error {
	if _, err := k.pool.Exec(ctx,
		`DELETE FROM client_kv WHERE namespace = $1 AND key = $2`, k.ns, key); err != nil {
		return fmt.Errorf("[storage Postgres Delete] %s: %w", key, errors.Join(ErrUnavailable, err))
	}
	return nil
}
