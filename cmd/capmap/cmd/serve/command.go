// Package serve provides the HTTP API server command.
package serve

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/internal/server"
	"github.com/agentstation/capmap/internal/watch"
	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/logging"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "management",
		Short:   "Start the REST API server",
		Long: `Start the REST API server for the capability map.

Features:
  - Catalog, query and assignment endpoints under /api/v1
  - In-memory response caching, cleared on reloads and assignment changes
  - Optional API key authentication and CORS
  - Health, readiness and Prometheus metrics endpoints
  - Reload when CSV files in the data directory change (--watch)
  - Graceful shutdown`,
		Example: `  # Start on default port 8080
  capmap serve

  # Serve CSV data and reload when it changes
  capmap serve --source csv --data-dir ./data --watch

  # Require an API key for writes and allow a web front end
  capmap serve --api-key secret --cors-origins https://map.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app)
		},
	}

	cmd.Flags().String("host", "localhost", "bind address")
	cmd.Flags().Int("port", constants.DefaultPort, "server port")
	cmd.Flags().Duration("cache-ttl", constants.DefaultCacheTTL, "response cache TTL")
	cmd.Flags().String("api-key", "", "require this API key (X-API-Key or Bearer)")
	cmd.Flags().Bool("read-only-public", true, "with --api-key, allow GET requests without a key")
	cmd.Flags().Bool("cors", false, "enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", nil, "allowed CORS origins (comma-separated)")
	cmd.Flags().Bool("watch", false, "reload when CSV files in --data-dir change")

	return cmd
}

func run(cmd *cobra.Command, app application.Application) error {
	ctx := cmd.Context()
	logger := app.Logger()

	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	settings := app.ServeSettings()
	cfg := server.DefaultConfig()
	cfg.Host = settings.Host
	cfg.Port = settings.Port
	cfg.APIKey = settings.APIKey
	cfg.ReadOnlyPublic = settings.ReadOnlyPublic
	if settings.CacheTTL > 0 {
		cfg.CacheTTL = settings.CacheTTL
	}
	if len(settings.CORSOrigins) > 0 {
		cfg.CORSOrigins = settings.CORSOrigins
	} else if all, _ := cmd.Flags().GetBool("cors"); all {
		cfg.CORSOrigins = []string{}
	}

	srv := server.New(client, cfg, logger)

	g, gctx := errgroup.WithContext(logging.WithLogger(ctx, logger))
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	if settings.Watch {
		g.Go(func() error {
			return watch.Dir(gctx, settings.DataDir, ".csv", constants.WatchDebounce, func(ctx context.Context) {
				report := client.Reload(ctx)
				logger.Info().Str("report", report.String()).Msg("Catalog reloaded after data change")
			})
		})
	}
	return g.Wait()
}
