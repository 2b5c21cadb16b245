// Package handlers provides HTTP request handlers for the capmap API.
package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/internal/server/cache"
	"github.com/agentstation/capmap/internal/server/response"
	"github.com/agentstation/capmap/pkg/catalog"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	client    capmap.Client
	cache     *cache.Cache
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new Handlers instance.
func New(client capmap.Client, cache *cache.Cache, logger *zerolog.Logger) *Handlers {
	return &Handlers{
		client:    client,
		cache:     cache,
		logger:    logger,
		startTime: time.Now(),
	}
}

// cached answers GET requests from the response cache, keyed by the
// full request URI.
func (h *Handlers) cached(w http.ResponseWriter, r *http.Request, load func() (any, error)) {
	data, err := h.cache.GetOrLoad(r.URL.RequestURI(), load)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, data)
}

// domainParam reads the domain query parameter, falling back to the
// store's active domain.
func (h *Handlers) domainParam(r *http.Request) (catalog.Domain, error) {
	raw := r.URL.Query().Get("domain")
	if raw == "" {
		return h.client.Store().Selection().ActiveDomain, nil
	}
	return catalog.ParseDomain(raw)
}
