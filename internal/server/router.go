package server

import (
	"net/http"

	"github.com/agentstation/capmap/internal/metrics"
	"github.com/agentstation/capmap/internal/server/handlers"
	"github.com/agentstation/capmap/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()
	h := handlers.New(s.client, s.cache, s.logger)
	s.registerRoutes(mux, h)
	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	p := s.config.PathPrefix

	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/health", h.HandleHealth)
	mux.HandleFunc("GET "+p+"/ready", h.HandleReady)

	// catalog
	mux.HandleFunc("GET "+p+"/processes", h.HandleListProcesses)
	mux.HandleFunc("GET "+p+"/processes/{id}", h.HandleGetProcess)
	mux.HandleFunc("GET "+p+"/capabilities", h.HandleListCapabilities)
	mux.HandleFunc("GET "+p+"/capabilities/{id}/products", h.HandleCapabilityProducts)
	mux.HandleFunc("GET "+p+"/vendors", h.HandleListVendors)
	mux.HandleFunc("GET "+p+"/products", h.HandleListProducts)

	// queries
	mux.HandleFunc("GET "+p+"/processes/{id}/products", h.HandleProcessProducts)
	mux.HandleFunc("GET "+p+"/processes/{id}/products/{productId}", h.HandleProcessDetail)
	mux.HandleFunc("GET "+p+"/processes/{id}/vendors", h.HandleProcessVendors)
	mux.HandleFunc("GET "+p+"/processes/{id}/best", h.HandleBestProducts)
	mux.HandleFunc("GET "+p+"/processes/{id}/evaluations/{vendorId}", h.HandleProcessEvaluation)
	mux.HandleFunc("GET "+p+"/products/{id}/evaluations/{capabilityId}", h.HandleProductEvaluation)
	mux.HandleFunc("GET "+p+"/board", h.HandleBoard)

	// assignments
	mux.HandleFunc("GET "+p+"/assignments", h.HandleListAssignments)
	mux.HandleFunc("GET "+p+"/assignments/{capabilityId}", h.HandleResolve)
	mux.HandleFunc("PUT "+p+"/assignments/{capabilityId}", h.HandleAssign)
	mux.HandleFunc("DELETE "+p+"/assignments/{capabilityId}", h.HandleUnassign)

	// admin
	mux.HandleFunc("GET "+p+"/selection", h.HandleGetSelection)
	mux.HandleFunc("PUT "+p+"/selection", h.HandleSetSelection)
	mux.HandleFunc("POST "+p+"/reload", h.HandleReload)
	mux.HandleFunc("GET "+p+"/report", h.HandleReport)

	if s.config.MetricsEnabled {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

// applyMiddleware wraps handler with the middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	handler = middleware.Metrics(handler)

	if cfg.APIKey != "" {
		handler = middleware.Auth(middleware.DefaultAuthConfig(cfg.APIKey), cfg.ReadOnlyPublic, s.logger)(handler)
	}
	if cfg.CORSOrigins != nil {
		handler = middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins))(handler)
	}

	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
	)(handler)
}
