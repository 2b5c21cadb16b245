package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/agentstation/capmap/internal/server/response"
	"github.com/agentstation/capmap/pkg/errors"
)

// assignRequest is the body of PUT /api/v1/assignments/{capabilityId}.
type assignRequest struct {
	ProductID string `json:"productId"`
}

// resolution is a capability's effective product.
type resolution struct {
	CapabilityID string `json:"capabilityId"`
	ProductID    string `json:"productId,omitempty"`
	Explicit     bool   `json:"explicit"`
}

// HandleListAssignments handles GET /api/v1/assignments.
// @Summary Explicit capability assignments
// @Tags assignments
// @Produce json
// @Success 200 {object} response.Response{data=map[string]string}
// @Router /api/v1/assignments [get].
func (h *Handlers) HandleListAssignments(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.client.Store().Assignments())
}

// HandleAssign handles PUT /api/v1/assignments/{capabilityId}.
// The product is not required to exist in the catalog.
// @Summary Assign a product to a capability
// @Tags assignments
// @Accept json
// @Produce json
// @Param capabilityId path string true "Capability ID"
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 503 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/assignments/{capabilityId} [put].
func (h *Handlers) HandleAssign(w http.ResponseWriter, r *http.Request) {
	capabilityID := r.PathValue("capabilityId")

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	err := h.client.Assign(r.Context(), capabilityID, req.ProductID)
	// the in-memory assignment stands even when persisting failed
	h.cache.Clear()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, resolution{CapabilityID: capabilityID, ProductID: req.ProductID, Explicit: true})
}

// HandleUnassign handles DELETE /api/v1/assignments/{capabilityId}.
// @Summary Remove an explicit assignment
// @Tags assignments
// @Produce json
// @Param capabilityId path string true "Capability ID"
// @Success 200 {object} response.Response{data=object}
// @Failure 503 {object} response.Response{error=response.Error}
// @Security ApiKeyAuth
// @Router /api/v1/assignments/{capabilityId} [delete].
func (h *Handlers) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	capabilityID := r.PathValue("capabilityId")
	err := h.client.Unassign(r.Context(), capabilityID)
	h.cache.Clear()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	response.OK(w, h.resolve(capabilityID))
}

// HandleResolve handles GET /api/v1/assignments/{capabilityId}.
// @Summary Effective product for a capability
// @Tags assignments
// @Produce json
// @Param capabilityId path string true "Capability ID"
// @Success 200 {object} response.Response{data=object}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/assignments/{capabilityId} [get].
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	capabilityID := r.PathValue("capabilityId")
	if _, ok := h.client.Store().Capability(capabilityID); !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("capability", capabilityID))
		return
	}
	response.OK(w, h.resolve(capabilityID))
}

func (h *Handlers) resolve(capabilityID string) resolution {
	res := resolution{
		CapabilityID: capabilityID,
		Explicit:     h.client.Assignments().Explicit(capabilityID),
	}
	if p, ok := h.client.Assignments().Resolve(capabilityID); ok {
		res.ProductID = p.ID
	}
	return res
}
