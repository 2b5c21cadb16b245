// Package server provides the HTTP API over a capmap client.
package server

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/internal/server/cache"
	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/sources"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	client capmap.Client
	cache  *cache.Cache
	logger *zerolog.Logger
	config Config
}

// New creates a server over client. Every catalog reload flushes the
// response cache.
func New(client capmap.Client, cfg Config, logger *zerolog.Logger) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = constants.DefaultCacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = constants.APIPathPrefix
	}

	s := &Server{
		client: client,
		cache:  cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger: logger,
		config: cfg,
	}

	client.OnReload(func(r *sources.Report) {
		s.cache.Clear()
		s.logger.Debug().Str("summary", r.String()).Msg("Catalog reloaded, response cache cleared")
	})
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", srv.Addr).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.WrapIO("listen", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapIO("shutdown", srv.Addr, err)
	}
	return nil
}
