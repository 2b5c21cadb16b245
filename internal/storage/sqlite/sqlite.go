// Package sqlite provides a kv.Store backed by a SQLite database file
// using the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/agentstation/capmap/internal/storage/sqlkv"
	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
)

// Dialect is the SQLite statement set.
var Dialect = sqlkv.Dialect{
	Name: "sqlite",
	Create: `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`,
	Select: `SELECT value FROM kv WHERE key = ?`,
	Upsert: `INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
	Delete: `DELETE FROM kv WHERE key = ?`,
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*sqlkv.Store, error) {
	if path == "" {
		path = constants.DefaultStorePath
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", filepath.Dir(path), err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	s, err := sqlkv.New(ctx, db, Dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
