package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/internal/storage/filestore"
	"github.com/agentstation/capmap/internal/storage/memory"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
)

// exercise runs the kv.Store contract against s.
func exercise(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "assignments")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, s.Put(ctx, "assignments", []byte(`{"c1":"p1"}`)))
	got, err := s.Get(ctx, "assignments")
	require.NoError(t, err)
	assert.JSONEq(t, `{"c1":"p1"}`, string(got))

	require.NoError(t, s.Put(ctx, "assignments", []byte(`{}`)))
	got, err = s.Get(ctx, "assignments")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(got))

	require.NoError(t, s.Delete(ctx, "assignments"))
	require.NoError(t, s.Delete(ctx, "assignments"))
	_, err = s.Get(ctx, "assignments")
	assert.True(t, errors.IsNotFound(err))
}

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  Config
	}{
		{"default", Config{}},
		{"memory", Config{Driver: DriverMemory}},
		{"file", Config{Driver: DriverFile, Path: filepath.Join(dir, "state.yaml")}},
		{"sqlite", Config{Driver: DriverSQLite, Path: filepath.Join(dir, "nested", "state.db")}},
		{"upper-case driver", Config{Driver: "SQLITE", Path: filepath.Join(dir, "upper.db")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(context.Background(), tt.cfg)
			require.NoError(t, err)
			defer func() { _ = s.Close() }()
			exercise(t, s)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "etcd"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.yaml")

	s, err := filestore.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "vendors", []byte(`[{"id":"v1"}]`)))
	require.NoError(t, s.Close())

	reopened, err := filestore.Open(path)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "vendors")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"v1"}]`, string(got))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")
	cfg := Config{Driver: DriverSQLite, Path: path}

	s, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "assignments", []byte(`{"c1":"p1"}`)))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	got, err := reopened.Get(ctx, "assignments")
	require.NoError(t, err)
	assert.JSONEq(t, `{"c1":"p1"}`, string(got))
}

func TestMemoryClosed(t *testing.T) {
	s := memory.New()
	require.NoError(t, s.Close())
	_, err := s.Get(context.Background(), "k")
	assert.ErrorIs(t, err, errors.ErrClosed)
	assert.ErrorIs(t, s.Put(context.Background(), "k", nil), errors.ErrClosed)
}
