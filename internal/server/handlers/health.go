package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/capmap/internal/server/response"
)

// HandleHealth handles GET /health.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Router /health [get].
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "capmap-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. The server is ready once the
// catalog has been loaded at least once.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Router /api/v1/ready [get].
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	last := h.client.LastReport()
	if last == nil {
		response.ServiceUnavailable(w, "Catalog not loaded")
		return
	}
	response.OK(w, map[string]any{
		"status":      "ready",
		"collections": last.String(),
		"fell_back":   last.FellBack(),
		"uptime":      time.Since(h.startTime).Round(time.Second).String(),
		"cache":       map[string]any{"items": h.cache.ItemCount()},
	})
}
