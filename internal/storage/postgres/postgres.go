// Package postgres provides a kv.Store backed by a Postgres table through
// the pgx database/sql driver.
package postgres

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver

	"github.com/agentstation/capmap/internal/storage/sqlkv"
	"github.com/agentstation/capmap/pkg/errors"
)

const (
	driverName = "pgx"
	defaultDSN = "postgres://localhost/capmap?sslmode=disable"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// Dialect is the Postgres statement set.
var Dialect = sqlkv.Dialect{
	Name: "postgres",
	Create: `CREATE TABLE IF NOT EXISTS capmap_kv (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL
	)`,
	Select: `SELECT value FROM capmap_kv WHERE key = $1`,
	Upsert: `INSERT INTO capmap_kv(key, value) VALUES($1, $2) ON CONFLICT(key) DO UPDATE SET value = EXCLUDED.value`,
	Delete: `DELETE FROM capmap_kv WHERE key = $1`,
}

// Open connects to dsn (falling back to a localhost default), verifies
// the connection and ensures the table exists.
func Open(ctx context.Context, dsn string) (*sqlkv.Store, error) {
	if dsn == "" {
		dsn = defaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen(driverName, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, errors.WrapIO("open", "postgres", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.NewSourceError("postgres", "kv", err)
	}
	s, err := sqlkv.New(ctx, db, Dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OverrideSQLOpen swaps the open function for tests and returns a restore
// function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
