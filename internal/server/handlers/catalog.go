package handlers

import (
	"net/http"

	"github.com/agentstation/capmap/internal/server/response"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/query"
)

// HandleListProcesses handles GET /api/v1/processes.
// @Summary List business processes
// @Tags catalog
// @Produce json
// @Param domain query string false "Domain filter (ALL, CRM, ERP, AI)"
// @Success 200 {object} response.Response{data=[]catalog.BusinessProcess}
// @Router /api/v1/processes [get].
func (h *Handlers) HandleListProcesses(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		d, err := h.domainParam(r)
		if err != nil {
			return nil, err
		}
		return h.client.Query().FilterBusinessProcesses(d, h.client.Store().BusinessProcesses()), nil
	})
}

// HandleGetProcess handles GET /api/v1/processes/{id}.
// @Summary Get a business process
// @Tags catalog
// @Produce json
// @Param id path string true "Business process ID"
// @Success 200 {object} response.Response{data=catalog.BusinessProcess}
// @Failure 404 {object} response.Response{error=response.Error}
// @Router /api/v1/processes/{id} [get].
func (h *Handlers) HandleGetProcess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	bp, ok := h.client.Store().BusinessProcess(id)
	if !ok {
		response.ErrorFromType(w, errors.NewNotFoundError("business process", id))
		return
	}
	response.OK(w, bp)
}

// HandleListCapabilities handles GET /api/v1/capabilities.
// With column set it returns the capability column for that domain.
// @Summary List capabilities
// @Tags catalog
// @Produce json
// @Param domain query string false "Domain filter"
// @Param column query string false "Column domain (CRM, ERP, AI)"
// @Param process query string false "Business process ID"
// @Success 200 {object} response.Response{data=[]catalog.Capability}
// @Router /api/v1/capabilities [get].
func (h *Handlers) HandleListCapabilities(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		d, err := h.domainParam(r)
		if err != nil {
			return nil, err
		}
		q := r.URL.Query()

		var caps []catalog.Capability
		if column := q.Get("column"); column != "" {
			col, err := catalog.ParseDomain(column)
			if err != nil {
				return nil, err
			}
			caps = h.client.Query().DomainColumn(d, col)
		} else {
			caps = h.client.Query().FilterCapabilities(d, h.client.Store().Capabilities())
		}

		if process := q.Get("process"); process != "" {
			filtered := caps[:0:0]
			for _, c := range caps {
				if c.BusinessProcessID == process {
					filtered = append(filtered, c)
				}
			}
			caps = filtered
		}
		return caps, nil
	})
}

// HandleCapabilityProducts handles GET /api/v1/capabilities/{id}/products.
// @Summary Products covering a capability
// @Tags catalog
// @Produce json
// @Param id path string true "Capability ID"
// @Param vendor query string false "Vendor ID"
// @Param search query string false "Case-insensitive name search"
// @Param domain query string false "Product domain filter"
// @Success 200 {object} response.Response{data=[]catalog.Product}
// @Router /api/v1/capabilities/{id}/products [get].
func (h *Handlers) HandleCapabilityProducts(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		q := r.URL.Query()
		d, err := catalog.ParseDomain(q.Get("domain"))
		if err != nil {
			return nil, err
		}
		return h.client.Query().ProductsForCapability(r.PathValue("id"), query.ProductFilter{
			VendorID: q.Get("vendor"),
			Search:   q.Get("search"),
			Domain:   d,
		}), nil
	})
}

// HandleListVendors handles GET /api/v1/vendors.
// @Summary List vendors
// @Tags catalog
// @Produce json
// @Success 200 {object} response.Response{data=[]catalog.Vendor}
// @Router /api/v1/vendors [get].
func (h *Handlers) HandleListVendors(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		return h.client.Store().Vendors(), nil
	})
}

// HandleListProducts handles GET /api/v1/products.
// @Summary List products
// @Tags catalog
// @Produce json
// @Param vendor query string false "Vendor ID"
// @Success 200 {object} response.Response{data=[]catalog.Product}
// @Router /api/v1/products [get].
func (h *Handlers) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	h.cached(w, r, func() (any, error) {
		vendor := r.URL.Query().Get("vendor")
		products := h.client.Store().Products()
		if vendor == "" {
			return products, nil
		}
		out := products[:0:0]
		for _, p := range products {
			if p.VendorID == vendor {
				out = append(out, p)
			}
		}
		return out, nil
	})
}
