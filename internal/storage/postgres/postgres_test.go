package postgres

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/pkg/errors"
)

func TestOpenPropagatesOpenError(t *testing.T) {
	boom := errors.New("boom")
	restore := OverrideSQLOpen(func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, defaultDSN, dsn)
		return nil, boom
	})
	defer restore()

	_, err := Open(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

// TestRoundTrip runs against a real server when CAPMAP_TEST_POSTGRES_DSN
// is set.
func TestRoundTrip(t *testing.T) {
	dsn := os.Getenv("CAPMAP_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("CAPMAP_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	require.NoError(t, s.Put(ctx, "capmap-test", []byte("v1")))
	require.NoError(t, s.Put(ctx, "capmap-test", []byte("v2")))
	got, err := s.Get(ctx, "capmap-test")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))
	require.NoError(t, s.Delete(ctx, "capmap-test"))
	_, err = s.Get(ctx, "capmap-test")
	assert.True(t, errors.IsNotFound(err))
}
