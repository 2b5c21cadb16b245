package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/capmap/internal/server/response"
	"github.com/agentstation/capmap/pkg/catalog"
)

// selectionRequest is the body of PUT /api/v1/selection. Absent fields
// are left unchanged.
type selectionRequest struct {
	Domain   *string `json:"domain"`
	VendorID *string `json:"vendorId"`
}

// HandleGetSelection handles GET /api/v1/selection.
// @Summary Current domain and vendor selection
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=catalog.Selection}
// @Router /api/v1/selection [get].
func (h *Handlers) HandleGetSelection(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.client.Store().Selection())
}

// HandleSetSelection handles PUT /api/v1/selection.
// @Summary Change the active domain or selected vendor
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Response{data=catalog.Selection}
// @Failure 400 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/selection [put].
func (h *Handlers) HandleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	store := h.client.Store()
	if req.Domain != nil {
		d, err := catalog.ParseDomain(*req.Domain)
		if err != nil {
			response.ErrorFromType(w, err)
			return
		}
		store.SetActiveDomain(d)
	}
	if req.VendorID != nil {
		store.SelectVendor(*req.VendorID)
	}
	h.cache.Clear()
	response.OK(w, store.Selection())
}

// HandleReload handles POST /api/v1/reload.
// @Summary Reload the catalog from its sources
// @Tags admin
// @Produce json
// @Success 200 {object} response.Response{data=object}
// @Security ApiKeyAuth
// @Router /api/v1/reload [post].
func (h *Handlers) HandleReload(w http.ResponseWriter, r *http.Request) {
	report := h.client.Reload(r.Context())
	h.cache.Clear()

	collections := make(map[string]any, len(report.Collections))
	for k, c := range report.Collections {
		collections[k.String()] = map[string]any{
			"origin":  c.Origin.String(),
			"records": c.Records,
		}
	}
	data := map[string]any{
		"status":             "completed",
		"collections":        collections,
		"external_attempted": report.ExternalAttempted,
		"fell_back":          report.FellBack(),
		"duration":           report.Duration.String(),
	}
	if report.ExternalErr != nil {
		data["external_error"] = report.ExternalErr.Error()
	}
	response.OK(w, data)
}

// HandleReport handles GET /api/v1/report and returns Markdown.
// @Summary Markdown catalog report
// @Tags admin
// @Produce text/markdown
// @Success 200 {string} string
// @Router /api/v1/report [get].
func (h *Handlers) HandleReport(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	if err := h.client.Report(w); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render report")
	}
}
