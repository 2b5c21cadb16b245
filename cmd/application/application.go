// Package application provides the interface capmap commands depend on.
//
// Commands accept an Application rather than the concrete App from
// cmd/capmap/app so they can be tested with a Mock:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client(cmd.Context())
//	            if err != nil {
//	                return err
//	            }
//	            // ... use client.Query()
//	            return nil
//	        },
//	    }
//	}
package application

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/pkg/kv"
)

// Application provides what commands need from the running CLI.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the shared client, creating and loading it on first
	// use.
	Client(ctx context.Context) (capmap.Client, error)

	// KV returns the configured key-value store shared with the client.
	KV(ctx context.Context) (kv.Store, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide,
	// json, yaml).
	OutputFormat() string

	// ServeSettings returns the HTTP server settings.
	ServeSettings() ServeSettings

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}

// ServeSettings configures the serve command.
type ServeSettings struct {
	Host           string
	Port           int
	CacheTTL       time.Duration
	APIKey         string
	ReadOnlyPublic bool
	CORSOrigins    []string

	// Watch reloads the catalog when CSV files in DataDir change.
	Watch   bool
	DataDir string
}
