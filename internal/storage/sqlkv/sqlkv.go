// Package sqlkv implements kv.Store over a database/sql handle using a
// single two-column table. The sqlite and postgres backends differ only
// in their Dialect.
package sqlkv

import (
	"context"
	"database/sql"
	"sync"

	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
)

var _ kv.Store = (*Store)(nil)

// Dialect holds the statements a backend needs.
type Dialect struct {
	Name   string
	Create string // table DDL
	Select string // one arg: key
	Upsert string // two args: key, value
	Delete string // one arg: key
}

// Store is a SQL-table-backed kv.Store.
type Store struct {
	db      *sql.DB
	dialect Dialect
	mu      sync.Mutex // serializes writers, SQLite allows one at a time
}

// New ensures the table exists and wraps db.
func New(ctx context.Context, db *sql.DB, d Dialect) (*Store, error) {
	if _, err := db.ExecContext(ctx, d.Create); err != nil {
		return nil, errors.WrapResource("create", d.Name+" table", "kv", err)
	}
	return &Store{db: db, dialect: d}, nil
}

// DB exposes the underlying handle for tests.
func (s *Store) DB() *sql.DB { return s.db }

// Get implements kv.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.Select, key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, kv.NotFound(key)
	case errors.Is(err, sql.ErrConnDone):
		return nil, errors.ErrClosed
	case err != nil:
		return nil, errors.WrapResource("get", s.dialect.Name, key, err)
	}
	return value, nil
}

// Put implements kv.Store.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value); err != nil {
		return errors.WrapResource("put", s.dialect.Name, key, err)
	}
	return nil
}

// Delete implements kv.Store.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, s.dialect.Delete, key); err != nil {
		return errors.WrapResource("delete", s.dialect.Name, key, err)
	}
	return nil
}

// Close implements kv.Store.
func (s *Store) Close() error {
	return s.db.Close()
}
