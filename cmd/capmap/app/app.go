// Package app provides the application context and dependency management
// for the capmap CLI: configuration, logging, the key-value store and the
// lazily created capmap client.
package app

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/sources/csvfiles"
	"github.com/agentstation/capmap/internal/sources/httpcsv"
	"github.com/agentstation/capmap/internal/sources/s3csv"
	"github.com/agentstation/capmap/internal/storage"
	"github.com/agentstation/capmap/internal/transport"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
	"github.com/agentstation/capmap/pkg/logging"
	"github.com/agentstation/capmap/pkg/sources"
)

var _ application.Application = (*App)(nil)

// App represents the capmap application with all its dependencies.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	viper       *viper.Viper
	config      *Config
	fixedConfig bool // set by WithConfig; flags do not rebuild it
	logger      *zerolog.Logger

	mu     sync.Mutex
	kv     kv.Store
	client capmap.Client
}

// New creates an App with configuration resolved from files and the
// environment. Flags are applied when a command runs.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	a := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		viper:   newViper(),
	}
	a.config = configFromViper(a.viper)

	logger := NewLogger(a.config)
	a.logger = &logger

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Version returns the version information.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Config returns the application configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string { return a.config.Format }

// ServeSettings returns the HTTP server settings.
func (a *App) ServeSettings() application.ServeSettings {
	return application.ServeSettings{
		Host:           a.config.Host,
		Port:           a.config.Port,
		CacheTTL:       a.config.CacheTTL,
		APIKey:         a.config.APIKey,
		ReadOnlyPublic: a.config.ReadOnlyPublic,
		CORSOrigins:    a.config.CORSOrigins,
		Watch:          a.config.Watch,
		DataDir:        a.config.DataDir,
	}
}

// KV returns the configured key-value store, opening it on first use.
func (a *App) KV(ctx context.Context) (kv.Store, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.openKV(ctx)
}

// openKV must be called with a.mu held.
func (a *App) openKV(ctx context.Context) (kv.Store, error) {
	if a.kv != nil {
		return a.kv, nil
	}
	store, err := storage.Open(ctx, a.config.Store)
	if err != nil {
		return nil, err
	}
	a.kv = store
	return store, nil
}

// Client returns the shared client, creating and loading it on first
// use. Assignments that cannot be restored are logged, not returned.
func (a *App) Client(ctx context.Context) (capmap.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	store, err := a.openKV(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := a.clientOptions(ctx)
	if err != nil {
		return nil, err
	}
	client, err := capmap.New(append(opts, capmap.WithStore(store))...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	ctx = logging.WithLogger(ctx, a.logger)
	if _, err := client.Load(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("Assignments could not be restored")
	}
	a.client = client
	return client, nil
}

// clientOptions translates configuration into client options.
func (a *App) clientOptions(ctx context.Context) ([]capmap.Option, error) {
	domain, err := catalog.ParseDomain(a.config.Domain)
	if err != nil {
		return nil, err
	}
	opts := []capmap.Option{
		capmap.WithDomain(domain),
		capmap.WithVendor(a.config.Vendor),
		capmap.WithExternal(a.config.External()),
		capmap.WithAutoReload(a.config.ReloadInterval),
	}
	if a.config.External() {
		src, err := a.rowSource(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, capmap.WithRowSource(src))
	}
	return opts, nil
}

// rowSource picks the external source: an HTTP base URL, then an S3
// bucket, then the local data directory.
func (a *App) rowSource(ctx context.Context) (sources.RowSource, error) {
	switch {
	case a.config.DataURL != "":
		client := transport.New(transport.WithAuth(transport.ParseAuth(a.config.DataAuth), a.config.DataToken))
		src, err := httpcsv.New(a.config.DataURL, client)
		if err != nil {
			return nil, err
		}
		return src, nil
	case a.config.S3.Bucket != "":
		src, err := s3csv.New(ctx, a.config.S3)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return csvfiles.New(os.DirFS(a.config.DataDir)), nil
	}
}

// Shutdown closes the client, which also closes the key-value store.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var err error
	switch {
	case a.client != nil:
		err = a.client.Close()
	case a.kv != nil:
		err = a.kv.Close()
	}
	a.client, a.kv = nil, nil
	return err
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		a.fixedConfig = true
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a prebuilt client (useful for testing).
func WithClient(client capmap.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
