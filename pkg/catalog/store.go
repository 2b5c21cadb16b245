package catalog

import (
	"maps"
	"slices"
	"sync"
)

// Selection holds the transient UI-level scalars. An empty string means
// nothing is selected.
type Selection struct {
	ActiveDomain       Domain `json:"activeDomain" yaml:"activeDomain"`
	SelectedVendorID   string `json:"selectedVendorId,omitempty" yaml:"selectedVendorId,omitempty"`
	ActiveCapabilityID string `json:"activeCapabilityId,omitempty" yaml:"activeCapabilityId,omitempty"`
	ActiveProductID    string `json:"activeProductId,omitempty" yaml:"activeProductId,omitempty"`
}

// Store is the authoritative in-memory holder of the six collections,
// the capability to product assignment map and the current selection.
//
// Collections are replaced wholesale through Replace; the assignment map
// is the only state mutated incrementally. All reads return copies so
// callers can never alias store internals.
type Store struct {
	mu          sync.RWMutex
	collections Collections
	assignments map[string]string // capabilityID -> productID
	selection   Selection

	// lookup indexes, rebuilt on Replace
	processIdx    map[string]int
	capabilityIdx map[string]int
	vendorIdx     map[string]int
	productIdx    map[string]int
}

// NewStore creates an empty store with the wildcard domain active.
func NewStore() *Store {
	s := &Store{
		assignments: make(map[string]string),
		selection:   Selection{ActiveDomain: DomainAll},
	}
	s.reindex()
	return s
}

// Replace swaps in a new set of collections. The input is copied.
func (s *Store) Replace(c Collections) {
	cp := c.Copy()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections = cp
	s.reindex()
}

// reindex must be called with the write lock held. On duplicate IDs the
// first record wins, matching first-match lookups elsewhere.
func (s *Store) reindex() {
	s.processIdx = make(map[string]int, len(s.collections.BusinessProcesses))
	for i, bp := range s.collections.BusinessProcesses {
		if _, ok := s.processIdx[bp.ID]; !ok {
			s.processIdx[bp.ID] = i
		}
	}
	s.capabilityIdx = make(map[string]int, len(s.collections.Capabilities))
	for i, c := range s.collections.Capabilities {
		if _, ok := s.capabilityIdx[c.ID]; !ok {
			s.capabilityIdx[c.ID] = i
		}
	}
	s.vendorIdx = make(map[string]int, len(s.collections.Vendors))
	for i, v := range s.collections.Vendors {
		if _, ok := s.vendorIdx[v.ID]; !ok {
			s.vendorIdx[v.ID] = i
		}
	}
	s.productIdx = make(map[string]int, len(s.collections.Products))
	for i, p := range s.collections.Products {
		if _, ok := s.productIdx[p.ID]; !ok {
			s.productIdx[p.ID] = i
		}
	}
}

// Collections returns a deep copy of all six collections.
func (s *Store) Collections() Collections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections.Copy()
}

// BusinessProcesses returns a copy of the business process collection.
func (s *Store) BusinessProcesses() []BusinessProcess {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.collections.BusinessProcesses)
}

// Capabilities returns a copy of the capability collection.
func (s *Store) Capabilities() []Capability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.collections.Capabilities)
}

// Vendors returns a copy of the vendor collection.
func (s *Store) Vendors() []Vendor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.collections.Vendors)
}

// Products returns a copy of the product collection.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProducts(s.collections.Products)
}

// ProductEvaluations returns a copy of the product evaluation collection.
func (s *Store) ProductEvaluations() []ProductEvaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProductEvaluations(s.collections.ProductEvaluations)
}

// BusinessProcessEvaluations returns a copy of the business process
// evaluation collection.
func (s *Store) BusinessProcessEvaluations() []BusinessProcessEvaluation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyProcessEvaluations(s.collections.BusinessProcessEvaluations)
}

// BusinessProcess looks up a business process by ID.
func (s *Store) BusinessProcess(id string) (BusinessProcess, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.processIdx[id]
	if !ok {
		return BusinessProcess{}, false
	}
	return s.collections.BusinessProcesses[i], true
}

// Capability looks up a capability by ID.
func (s *Store) Capability(id string) (Capability, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.capabilityIdx[id]
	if !ok {
		return Capability{}, false
	}
	return s.collections.Capabilities[i], true
}

// Vendor looks up a vendor by ID.
func (s *Store) Vendor(id string) (Vendor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.vendorIdx[id]
	if !ok {
		return Vendor{}, false
	}
	return s.collections.Vendors[i], true
}

// Product looks up a product by ID.
func (s *Store) Product(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.productIdx[id]
	if !ok {
		return Product{}, false
	}
	p := s.collections.Products[i]
	p.CapabilityIDs = slices.Clone(p.CapabilityIDs)
	return p, true
}

// SetAssignment maps a capability to a product, replacing any previous
// mapping. Neither ID is required to resolve.
func (s *Store) SetAssignment(capabilityID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[capabilityID] = productID
}

// ClearAssignment removes the mapping for a capability. Clearing an
// absent mapping is a no-op.
func (s *Store) ClearAssignment(capabilityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, capabilityID)
}

// Assignment returns the product explicitly assigned to a capability.
func (s *Store) Assignment(capabilityID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.assignments[capabilityID]
	return id, ok
}

// Assignments returns a copy of the assignment map.
func (s *Store) Assignments() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.assignments)
}

// ReplaceAssignments swaps in a complete assignment map. A nil map
// clears all assignments.
func (s *Store) ReplaceAssignments(m map[string]string) {
	cp := make(map[string]string, len(m))
	maps.Copy(cp, m)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments = cp
}

// Selection returns the current selection.
func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SetActiveDomain sets the active domain. The empty domain resets it to
// DomainAll.
func (s *Store) SetActiveDomain(d Domain) {
	if d == "" {
		d = DomainAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ActiveDomain = d
}

// SelectVendor sets the selected vendor; "" clears it.
func (s *Store) SelectVendor(vendorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectedVendorID = vendorID
}

// SetActiveCapability sets the capability being edited; "" clears it.
func (s *Store) SetActiveCapability(capabilityID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ActiveCapabilityID = capabilityID
}

// SetActiveProduct sets the product being inspected; "" clears it.
func (s *Store) SetActiveProduct(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.ActiveProductID = productID
}
