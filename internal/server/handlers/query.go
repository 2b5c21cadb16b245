package handlers

import (
	"net/http"

	"github.com/agentstation/capmap/internal/server/response"
	"github.com/agentstation/capmap/pkg/errors"
)

// HandleProcessProducts handles GET /api/v1/processes/{id}/products.
// @Summary Products covering any capability of a process
// @Tags query
// @Produce json
// @Param id path string true "Business process ID"
// @Param vendor query string false "Restrict to one vendor"
// @Success 200 {object} response.Response{data=[]catalog.Product}
// @Router /api/v1/processes/{id}/products [get].
func (h *Handlers) HandleProcessProducts(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		id := r.PathValue("id")
		if vendor := r.URL.Query().Get("vendor"); vendor != "" {
			return h.client.Query().VendorProductsForProcess(vendor, id), nil
		}
		return h.client.Query().ProductsForBusinessProcess(id), nil
	})
}

// HandleProcessVendors handles GET /api/v1/processes/{id}/vendors.
// @Summary Vendors with products in a process
// @Tags query
// @Produce json
// @Param id path string true "Business process ID"
// @Success 200 {object} response.Response{data=[]catalog.Vendor}
// @Router /api/v1/processes/{id}/vendors [get].
func (h *Handlers) HandleProcessVendors(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		return h.client.Query().VendorsForBusinessProcess(r.PathValue("id")), nil
	})
}

// HandleBestProducts handles GET /api/v1/processes/{id}/best.
// @Summary Best product per vendor for a process
// @Tags query
// @Produce json
// @Param id path string true "Business process ID"
// @Success 200 {object} response.Response{data=[]query.VendorProduct}
// @Router /api/v1/processes/{id}/best [get].
func (h *Handlers) HandleBestProducts(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		return h.client.Query().BestProductPerVendorForProcess(r.PathValue("id")), nil
	})
}

// HandleProcessDetail handles GET /api/v1/processes/{id}/products/{productId}.
// @Summary Product detail within a process
// @Tags query
// @Produce json
// @Param id path string true "Business process ID"
// @Param productId path string true "Product ID"
// @Success 200 {object} response.Response{data=query.ProcessDetail}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/processes/{id}/products/{productId} [get].
func (h *Handlers) HandleProcessDetail(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		processID, productID := r.PathValue("id"), r.PathValue("productId")
		detail, ok := h.client.Query().ProcessDetail(productID, processID)
		if !ok {
			return nil, errors.NewNotFoundError("process detail", productID+"/"+processID)
		}
		return detail, nil
	})
}

// HandleProcessEvaluation handles GET /api/v1/processes/{id}/evaluations/{vendorId}.
// @Summary Vendor evaluation for a process
// @Tags query
// @Produce json
// @Param id path string true "Business process ID"
// @Param vendorId path string true "Vendor ID"
// @Success 200 {object} response.Response{data=catalog.BusinessProcessEvaluation}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/processes/{id}/evaluations/{vendorId} [get].
func (h *Handlers) HandleProcessEvaluation(w http.ResponseWriter, r *http.Request) {
	processID, vendorID := r.PathValue("id"), r.PathValue("vendorId")
	ev, ok := h.client.Query().BusinessProcessEvaluation(vendorID, processID)
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("business process evaluation", vendorID+"/"+processID))
		return
	}
	response.OK(w, ev)
}

// HandleProductEvaluation handles GET /api/v1/products/{id}/evaluations/{capabilityId}.
// @Summary Product evaluation for a capability
// @Tags query
// @Produce json
// @Param id path string true "Product ID"
// @Param capabilityId path string true "Capability ID"
// @Success 200 {object} response.Response{data=catalog.ProductEvaluation}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/products/{id}/evaluations/{capabilityId} [get].
func (h *Handlers) HandleProductEvaluation(w http.ResponseWriter, r *http.Request) {
	productID, capabilityID := r.PathValue("id"), r.PathValue("capabilityId")
	ev, ok := h.client.Query().ProductEvaluation(productID, capabilityID)
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("product evaluation", productID+"/"+capabilityID))
		return
	}
	response.OK(w, ev)
}

// HandleBoard handles GET /api/v1/board.
// @Summary Capability cards with resolved products
// @Tags query
// @Produce json
// @Param domain query string false "Domain filter"
// @Success 200 {object} response.Response{data=[]query.Card}
// @Router /api/v1/board [get].
func (h *Handlers) HandleBoard(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		d, err := h.domainParam(r)
		if err != nil {
			return nil, err
		}
		return h.client.Query().Board(d, h.client.Assignments().Resolve), nil
	})
}
