package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/pkg/logging"
)

func TestDefaultLoggerCapture(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	logging.Info().Str("collection", "vendors").Msg("collection loaded")
	logging.Warn().Msg("external load failed")

	captured.AssertContains(t, "collection loaded")
	captured.AssertContains(t, "vendors")
	assert.Len(t, captured.Lines(), 2)
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)

	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithCollection(ctx, "products")
	ctx = logging.WithSource(ctx, "csv")
	ctx = logging.WithOperation(ctx, "load")

	logging.FromContext(ctx).Info().Msg("merging")

	for _, want := range []string{`"collection":"products"`, `"source":"csv"`, `"operation":"load"`, "merging"} {
		tl.AssertContains(t, want)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestNewLoggerFromConfig(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(oldLevel) })

	t.Run("file output json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "capmap.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Format: "json", Output: path})
		logger.Debug().Msg("to file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"message":"to file"`)
	})

	t.Run("warning alias filters info", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "warning", Output: "discard"})
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "chatty", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("nil config", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)
	logger.Error().Msg("boom")
	assert.Contains(t, buf.String(), "boom")
}
