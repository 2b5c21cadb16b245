// Package storage selects and opens the durable kv.Store backend.
package storage

import (
	"context"
	"strings"

	"github.com/agentstation/capmap/internal/storage/filestore"
	"github.com/agentstation/capmap/internal/storage/memory"
	"github.com/agentstation/capmap/internal/storage/postgres"
	"github.com/agentstation/capmap/internal/storage/sqlite"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
)

// Driver names a kv backend.
type Driver string

// Supported drivers.
const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Drivers returns every supported driver.
func Drivers() []Driver {
	return []Driver{DriverMemory, DriverFile, DriverSQLite, DriverPostgres}
}

// Config selects a backend.
type Config struct {
	Driver Driver `mapstructure:"store_driver" yaml:"store_driver"`
	Path   string `mapstructure:"store_path" yaml:"store_path"` // file and sqlite
	DSN    string `mapstructure:"store_dsn" yaml:"store_dsn"`   // postgres
}

// Open opens the backend named by cfg.Driver. An empty driver selects
// the in-memory store.
func Open(ctx context.Context, cfg Config) (kv.Store, error) {
	switch Driver(strings.ToLower(string(cfg.Driver))) {
	case "", DriverMemory:
		return memory.New(), nil
	case DriverFile:
		s, err := filestore.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		s, err := postgres.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.NewConfigError("storage", "unknown store driver "+string(cfg.Driver), errors.ErrInvalidInput)
}
