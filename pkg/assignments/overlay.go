// Package assignments manages the user-editable capability to product
// overlay and its durable persistence.
//
// Every mutation updates the entity store first and then writes the full
// map under a single key. A failed write is logged and returned, but the
// in-memory change stands; it simply will not survive a reload.
package assignments

import (
	"context"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
	"github.com/agentstation/capmap/pkg/logging"
)

// Store is the subset of *catalog.Store the overlay needs.
type Store interface {
	SetAssignment(capabilityID, productID string)
	ClearAssignment(capabilityID string)
	Assignment(capabilityID string) (string, bool)
	Assignments() map[string]string
	ReplaceAssignments(map[string]string)
	Selection() catalog.Selection
	Product(id string) (catalog.Product, bool)
	Products() []catalog.Product
}

// Overlay couples the store's assignment map with a kv.Store.
type Overlay struct {
	store Store
	kv    kv.Store
	key   string
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(o *Overlay) {
		o.key = key
	}
}

// New creates an overlay over store persisting to backend. A nil backend keeps
// assignments in memory only.
func New(store Store, backend kv.Store, opts ...Option) *Overlay {
	o := &Overlay{store: store, kv: backend, key: constants.AssignmentsKey}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Restore loads the persisted map into the store. A missing key leaves
// the map empty; an unreadable or malformed value is logged, returned and
// also leaves the map empty.
func (o *Overlay) Restore(ctx context.Context) error {
	if o.kv == nil {
		return nil
	}
	logger := logging.FromContext(ctx)

	m := map[string]string{}
	found, err := kv.GetJSON(ctx, o.kv, o.key, &m)
	if err != nil {
		logger.Warn().Err(err).Str("key", o.key).Msg("Failed to restore assignments, starting empty")
		o.store.ReplaceAssignments(nil)
		return errors.WrapResource("load", "assignments", o.key, err)
	}
	if !found {
		o.store.ReplaceAssignments(nil)
		return nil
	}
	o.store.ReplaceAssignments(m)
	logger.Debug().Int("count", len(m)).Msg("Restored assignments")
	return nil
}

// Assign maps a capability to a product and persists the whole map.
func (o *Overlay) Assign(ctx context.Context, capabilityID, productID string) error {
	if capabilityID == "" {
		return errors.NewValidationError("capabilityId", capabilityID, "capability ID is required")
	}
	if productID == "" {
		return errors.NewValidationError("productId", productID, "product ID is required")
	}
	o.store.SetAssignment(capabilityID, productID)
	return o.persist(ctx, "assign", capabilityID)
}

// Clear removes a capability's mapping and persists the whole map.
func (o *Overlay) Clear(ctx context.Context, capabilityID string) error {
	o.store.ClearAssignment(capabilityID)
	return o.persist(ctx, "clear", capabilityID)
}

// Reset removes every mapping and deletes the persisted value.
func (o *Overlay) Reset(ctx context.Context) error {
	o.store.ReplaceAssignments(nil)
	if o.kv == nil {
		return nil
	}
	if err := o.kv.Delete(ctx, o.key); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Failed to delete persisted assignments")
		return errors.WrapResource("clear", "assignments", o.key, err)
	}
	return nil
}

func (o *Overlay) persist(ctx context.Context, op, capabilityID string) error {
	if o.kv == nil {
		return nil
	}
	if err := kv.PutJSON(ctx, o.kv, o.key, o.store.Assignments()); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("capability_id", capabilityID).
			Str("operation", op).
			Msg("Failed to persist assignments; change will not survive reload")
		return errors.WrapResource(op, "assignments", capabilityID, err)
	}
	return nil
}

// Resolve returns the effective product for a capability.
//
// An explicit mapping always decides: it yields its product, or nothing
// when that product is not in the catalog. Without a mapping, the
// selected vendor's first product covering the capability is used.
func (o *Overlay) Resolve(capabilityID string) (catalog.Product, bool) {
	if productID, ok := o.store.Assignment(capabilityID); ok {
		return o.store.Product(productID)
	}
	vendorID := o.store.Selection().SelectedVendorID
	if vendorID == "" {
		return catalog.Product{}, false
	}
	for _, p := range o.store.Products() {
		if p.VendorID == vendorID && p.HasCapability(capabilityID) {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Explicit reports whether the capability has a manual mapping.
func (o *Overlay) Explicit(capabilityID string) bool {
	_, ok := o.store.Assignment(capabilityID)
	return ok
}
