// Package query implements the read-only joins over the capability
// catalog: which products and vendors serve a business process, which
// capabilities a product covers, evaluation lookups and domain filters.
//
// Every method is pure and never fails. Missing data produces an empty
// slice or ok == false; dangling vendor references resolve to
// catalog.UnknownVendor.
package query

import (
	"github.com/agentstation/capmap/pkg/catalog"
)

// Reader is the read side of the entity store. *catalog.Store satisfies it.
type Reader interface {
	BusinessProcesses() []catalog.BusinessProcess
	Capabilities() []catalog.Capability
	Vendors() []catalog.Vendor
	Products() []catalog.Product
	ProductEvaluations() []catalog.ProductEvaluation
	BusinessProcessEvaluations() []catalog.BusinessProcessEvaluation

	BusinessProcess(id string) (catalog.BusinessProcess, bool)
	Capability(id string) (catalog.Capability, bool)
	Vendor(id string) (catalog.Vendor, bool)
	Product(id string) (catalog.Product, bool)
}

// Engine answers catalog queries against a Reader.
type Engine struct {
	r Reader
}

// New creates an Engine over r.
func New(r Reader) *Engine {
	return &Engine{r: r}
}

// VendorProduct pairs a vendor with its strongest product for a process.
type VendorProduct struct {
	Vendor          catalog.Vendor  `json:"vendor" yaml:"vendor"`
	Product         catalog.Product `json:"product" yaml:"product"`
	CapabilityCount int             `json:"capabilityCount" yaml:"capabilityCount"`
}

// processCapabilitySet returns the IDs of the capabilities belonging to
// a process.
func (e *Engine) processCapabilitySet(processID string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, c := range e.r.Capabilities() {
		if c.BusinessProcessID == processID {
			set[c.ID] = struct{}{}
		}
	}
	return set
}

func intersects(p catalog.Product, set map[string]struct{}) bool {
	for _, id := range p.CapabilityIDs {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func (e *Engine) vendorOrUnknown(id string) catalog.Vendor {
	if v, ok := e.r.Vendor(id); ok {
		return v
	}
	return catalog.UnknownVendor(id)
}

// ProductsForBusinessProcess returns the products covering at least one
// capability of the process, in product collection order.
func (e *Engine) ProductsForBusinessProcess(processID string) []catalog.Product {
	set := e.processCapabilitySet(processID)
	out := []catalog.Product{}
	if len(set) == 0 {
		return out
	}
	for _, p := range e.r.Products() {
		if intersects(p, set) {
			out = append(out, p)
		}
	}
	return out
}

// VendorsForBusinessProcess returns the distinct vendors of the products
// serving a process, in first-seen order.
func (e *Engine) VendorsForBusinessProcess(processID string) []catalog.Vendor {
	out := []catalog.Vendor{}
	seen := make(map[string]struct{})
	for _, p := range e.ProductsForBusinessProcess(processID) {
		if _, ok := seen[p.VendorID]; ok {
			continue
		}
		seen[p.VendorID] = struct{}{}
		out = append(out, e.vendorOrUnknown(p.VendorID))
	}
	return out
}

// VendorProductsForProcess returns a vendor's products that serve the
// process.
func (e *Engine) VendorProductsForProcess(vendorID, processID string) []catalog.Product {
	out := []catalog.Product{}
	for _, p := range e.ProductsForBusinessProcess(processID) {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out
}

// BestProductPerVendorForProcess returns one entry per vendor serving
// the process: the product covering the most process capabilities. Ties
// go to the product that appears first in the collection.
func (e *Engine) BestProductPerVendorForProcess(processID string) []VendorProduct {
	set := e.processCapabilitySet(processID)
	out := []VendorProduct{}
	index := make(map[string]int) // vendorID -> position in out
	for _, p := range e.ProductsForBusinessProcess(processID) {
		n := coverage(p, set)
		i, ok := index[p.VendorID]
		if !ok {
			index[p.VendorID] = len(out)
			out = append(out, VendorProduct{
				Vendor:          e.vendorOrUnknown(p.VendorID),
				Product:         p,
				CapabilityCount: n,
			})
			continue
		}
		if n > out[i].CapabilityCount {
			out[i].Product = p
			out[i].CapabilityCount = n
		}
	}
	return out
}

// coverage counts the distinct process capabilities a product lists.
func coverage(p catalog.Product, set map[string]struct{}) int {
	seen := make(map[string]struct{}, len(p.CapabilityIDs))
	for _, id := range p.CapabilityIDs {
		if _, ok := set[id]; ok {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}

// CapabilitiesForProductInProcess returns the process capabilities the
// product covers, in capability collection order.
func (e *Engine) CapabilitiesForProductInProcess(productID, processID string) []catalog.Capability {
	out := []catalog.Capability{}
	p, ok := e.r.Product(productID)
	if !ok {
		return out
	}
	for _, c := range e.r.Capabilities() {
		if c.BusinessProcessID == processID && p.HasCapability(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// CapabilityCountForProductInProcess returns
// len(CapabilitiesForProductInProcess(productID, processID)).
func (e *Engine) CapabilityCountForProductInProcess(productID, processID string) int {
	return len(e.CapabilitiesForProductInProcess(productID, processID))
}

// BusinessProcessEvaluation returns the first evaluation of the vendor
// for the process in collection order.
func (e *Engine) BusinessProcessEvaluation(vendorID, processID string) (catalog.BusinessProcessEvaluation, bool) {
	for _, ev := range e.r.BusinessProcessEvaluations() {
		if ev.VendorID == vendorID && ev.BusinessProcessID == processID {
			return ev, true
		}
	}
	return catalog.BusinessProcessEvaluation{}, false
}

// BusinessProcessEvaluationByID looks up a business process evaluation
// by its own ID.
func (e *Engine) BusinessProcessEvaluationByID(id string) (catalog.BusinessProcessEvaluation, bool) {
	for _, ev := range e.r.BusinessProcessEvaluations() {
		if ev.ID == id {
			return ev, true
		}
	}
	return catalog.BusinessProcessEvaluation{}, false
}

// ProductEvaluation returns the first evaluation of the product for the
// capability in collection order.
func (e *Engine) ProductEvaluation(productID, capabilityID string) (catalog.ProductEvaluation, bool) {
	for _, ev := range e.r.ProductEvaluations() {
		if ev.ProductID == productID && ev.CapabilityID == capabilityID {
			return ev, true
		}
	}
	return catalog.ProductEvaluation{}, false
}
