// Package capmap is the entry point for the capability map catalog.
//
// A Client owns the entity store and wires the source merger, the query
// engine and the assignment overlay around it. Catalog data comes from
// the embedded bootstrap set, an optional external row source and any
// collection overlays saved in the configured key-value store.
//
// Example usage:
//
//	c, err := capmap.New(
//	    capmap.WithRowSource(csvfiles.New(os.DirFS("./data"))),
//	    capmap.WithExternal(true),
//	    capmap.WithDomain(catalog.DomainCRM),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	if _, err := c.Load(ctx); err != nil {
//	    log.Printf("assignments not restored: %v", err)
//	}
//
//	for _, vp := range c.Query().BestProductPerVendorForProcess("lead-to-opportunity") {
//	    fmt.Printf("%s: %s (%d)\n", vp.Vendor.Name, vp.Product.Name, vp.CapabilityCount)
//	}
package capmap

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agentstation/capmap/internal/report"
	"github.com/agentstation/capmap/pkg/assignments"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/kv"
	"github.com/agentstation/capmap/pkg/query"
	"github.com/agentstation/capmap/pkg/sources"
)

// Client manages a loaded catalog and its assignment overlay.
type Client interface {
	// Load merges all collections into the store and restores persisted
	// assignments. The catalog is always loaded; the error only reports
	// assignments that could not be restored.
	Load(ctx context.Context) (*sources.Report, error)

	// Reload merges the collections again, keeping in-memory assignments.
	Reload(ctx context.Context) *sources.Report

	// LastReport returns the report of the most recent load, or nil.
	LastReport() *sources.Report

	// Store returns the entity store.
	Store() *catalog.Store

	// Query returns the query engine over the store.
	Query() *query.Engine

	// Assignments returns the assignment overlay.
	Assignments() *assignments.Overlay

	// Assign sets an explicit product for a capability and persists it.
	Assign(ctx context.Context, capabilityID, productID string) error

	// Unassign removes an explicit assignment and persists the change.
	Unassign(ctx context.Context, capabilityID string) error

	// Report renders a Markdown summary of the active domain.
	Report(w io.Writer) error

	// OnReload registers a callback run after every load.
	OnReload(fn ReloadHook)

	// Close stops background reloads and closes the key-value store.
	Close() error
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	store   *catalog.Store
	engine  *query.Engine
	overlay *assignments.Overlay
	merger  *sources.Merger
	kv      kv.Store

	mu   sync.Mutex // serializes loads
	last *sources.Report

	hooks *hooks

	reloadTicker *time.Ticker
	reloadCancel context.CancelFunc
	closeOnce    sync.Once
}

// New creates a Client. It does not load any data; call Load.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	store := catalog.NewStore()
	store.SetActiveDomain(o.domain)
	store.SelectVendor(o.vendorID)

	mergerOpts := []sources.Option{}
	if o.source != nil {
		mergerOpts = append(mergerOpts, sources.WithRowSource(o.source))
	}
	if o.kv != nil {
		mergerOpts = append(mergerOpts, sources.WithOverlays(o.kv))
	}

	c := &client{
		options: o,
		store:   store,
		engine:  query.New(store),
		overlay: assignments.New(store, o.kv),
		merger:  sources.NewMerger(mergerOpts...),
		kv:      o.kv,
		hooks:   newHooks(),
	}

	if o.reloadInterval > 0 {
		c.startAutoReload(o.reloadInterval)
	}
	return c, nil
}

// Store returns the entity store.
func (c *client) Store() *catalog.Store { return c.store }

// Query returns the query engine.
func (c *client) Query() *query.Engine { return c.engine }

// Assignments returns the assignment overlay.
func (c *client) Assignments() *assignments.Overlay { return c.overlay }

// Report renders the catalog report for the store's active domain,
// resolving capabilities through the assignment overlay.
func (c *client) Report(w io.Writer) error {
	return report.Write(w, c.store, c.engine, report.Options{
		Domain:  c.store.Selection().ActiveDomain,
		Resolve: c.overlay.Resolve,
	})
}
