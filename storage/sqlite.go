package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Namespacer hands out KV views partitioned by client id.
type Namespacer interface {
	Namespace(ns string) KV
}

var (
	_ Namespacer = (*SQLite)(nil)
	_ KV         = (*sqliteKV)(nil)
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS client_kv (
    namespace  TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (namespace, key)
);`

// SQLite keeps client values in a single local database file.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("[storage OpenSQLite] creating database directory: %w", err)
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("[storage OpenSQLite] opening database: %w", err)
	}
	if path == ":memory:" {
		// every connection to :memory: is a different database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("[storage OpenSQLite] pinging database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("[storage OpenSQLite] running migrations: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

func (s *SQLite) Namespace(ns string) KV {
	return &sqliteKV{db: s.db, ns: ns}
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type sqliteKV struct {
	db *sql.DB
	ns string
}

func (k *sqliteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := k.db.QueryRowContext(ctx,
		`SELECT value FROM client_kv WHERE namespace = ? AND key = ?`, k.ns, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[storage SQLite Get] %s: %w", key, errors.Join(ErrUnavailable, err))
	}
	return value, true, nil
}

func (k *sqliteKV) Set(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx, `
INSERT INTO client_kv (namespace, key, value, updated_at) VALUES (?, ?, ?, datetime('now'))
ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		k.ns, key, value)
	if err != nil {
		return fmt.Errorf("[storage SQLite Set] %s: %w", key, errors.Join(ErrUnavailable, err))
	}
	return nil
}

func (k *sqliteKV) Delete(ctx context.Context, key string) error {
	if _, err := k.db.ExecContext(ctx,
		`DELETE FROM client_kv WHERE namespace = ? AND key = ?`, k.ns, key); err != nil {
		return fmt.Errorf("[storage SQLite Delete] %s: %w", key, errors.Join(ErrUnavailable, err))
	}
	return nil
}
