package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntilModifyContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendors.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n"), 0o600))

	ctx, cancel, err := UntilModifyContext(context.Background(), path)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, os.WriteFile(path, []byte("id\nv1\n"), 0o600))

	select {
	case <-ctx.Done():
		assert.Contains(t, context.Cause(ctx).Error(), "vendors.csv")
	case <-time.After(5 * time.Second):
		t.Fatal("context was not canceled after modification")
	}
}

func TestUntilModifyContextMissingPath(t *testing.T) {
	_, _, err := UntilModifyContext(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestDirDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Dir(ctx, dir, ".csv", 100*time.Millisecond, func(context.Context) {
			calls.Add(1)
		})
	}()
	// let the watcher register
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "vendors.csv"), []byte("id\n"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Dir did not return after cancel")
	}
}
