package query

import (
	"strings"

	"github.com/agentstation/capmap/pkg/catalog"
)

// ProductFilter narrows the products offered for a capability.
type ProductFilter struct {
	VendorID string         // empty = all vendors
	Search   string         // case-insensitive substring of the product name
	Domain   catalog.Domain // matched against Product.Domains; ALL or empty = no filter
}

// ProductsForCapability lists the products that cover a capability and
// pass the filter, in product collection order.
func (e *Engine) ProductsForCapability(capabilityID string, f ProductFilter) []catalog.Product {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := []catalog.Product{}
	for _, p := range e.r.Products() {
		if !p.HasCapability(capabilityID) {
			continue
		}
		if f.VendorID != "" && p.VendorID != f.VendorID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if !p.InDomain(f.Domain) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProcessDetail is everything known about one product within one
// business process.
type ProcessDetail struct {
	Product        catalog.Product                    `json:"product" yaml:"product"`
	Vendor         catalog.Vendor                     `json:"vendor" yaml:"vendor"`
	Process        catalog.BusinessProcess            `json:"process" yaml:"process"`
	Capabilities   []catalog.Capability               `json:"capabilities" yaml:"capabilities"`
	Evaluation     *catalog.BusinessProcessEvaluation `json:"evaluation,omitempty" yaml:"evaluation,omitempty"`
	VendorProducts []catalog.Product                  `json:"vendorProducts" yaml:"vendorProducts"`
}

// ProcessDetail assembles the detail view of a product within a process.
// ok is false when the product, its vendor or the process is missing.
func (e *Engine) ProcessDetail(productID, processID string) (ProcessDetail, bool) {
	p, ok := e.r.Product(productID)
	if !ok {
		return ProcessDetail{}, false
	}
	v, ok := e.r.Vendor(p.VendorID)
	if !ok {
		return ProcessDetail{}, false
	}
	bp, ok := e.r.BusinessProcess(processID)
	if !ok {
		return ProcessDetail{}, false
	}
	d := ProcessDetail{
		Product:        p,
		Vendor:         v,
		Process:        bp,
		Capabilities:   e.CapabilitiesForProductInProcess(productID, processID),
		VendorProducts: e.VendorProductsForProcess(v.ID, processID),
	}
	if ev, ok := e.BusinessProcessEvaluation(v.ID, processID); ok {
		d.Evaluation = &ev
	}
	return d, true
}

// Resolver maps a capability to its effective product.
type Resolver func(capabilityID string) (catalog.Product, bool)

// Card is one capability on the board with its effective product.
type Card struct {
	Capability catalog.Capability `json:"capability" yaml:"capability"`
	Product    *catalog.Product   `json:"product,omitempty" yaml:"product,omitempty"`
	VendorName string             `json:"vendorName,omitempty" yaml:"vendorName,omitempty"`
}

// Assigned reports whether the card has an effective product.
func (c Card) Assigned() bool {
	return c.Product != nil
}

// Board lists the capabilities in domain d with the product resolve
// picks for each. A nil resolve leaves every card unassigned.
func (e *Engine) Board(d catalog.Domain, resolve Resolver) []Card {
	caps := e.FilterCapabilities(d, e.r.Capabilities())
	out := make([]Card, 0, len(caps))
	for _, c := range caps {
		card := Card{Capability: c}
		if resolve != nil {
			if p, ok := resolve(c.ID); ok {
				card.Product = &p
				card.VendorName = e.vendorOrUnknown(p.VendorID).Name
			}
		}
		out = append(out, card)
	}
	return out
}
