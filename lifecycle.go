package capmap

import (
	"context"
	"time"

	"github.com/agentstation/capmap/internal/metrics"
	"github.com/agentstation/capmap/pkg/constants"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/logging"
	"github.com/agentstation/capmap/pkg/sources"
)

// Load restores persisted assignments and merges the catalog. A restore
// failure is returned after the merge; the catalog is loaded either way.
func (c *client) Load(ctx context.Context) (*sources.Report, error) {
	c.mu.Lock()
	err := c.overlay.Restore(ctx)
	r := c.merge(ctx)
	c.mu.Unlock()

	c.hooks.triggerReload(r)
	return r, err
}

// Reload merges the catalog again. Assignments are left as they are.
func (c *client) Reload(ctx context.Context) *sources.Report {
	c.mu.Lock()
	r := c.merge(ctx)
	c.mu.Unlock()

	c.hooks.triggerReload(r)
	return r
}

// merge must be called with c.mu held.
func (c *client) merge(ctx context.Context) *sources.Report {
	r := c.merger.Load(ctx, c.store, sources.LoadOptions{External: c.options.external})
	c.last = r
	return r
}

// LastReport returns the report of the most recent load.
func (c *client) LastReport() *sources.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Assign sets an explicit assignment and records the outcome.
func (c *client) Assign(ctx context.Context, capabilityID, productID string) error {
	err := c.overlay.Assign(ctx, capabilityID, productID)
	metrics.AssignmentOp("assign", err)
	return err
}

// Unassign clears an explicit assignment and records the outcome.
func (c *client) Unassign(ctx context.Context, capabilityID string) error {
	err := c.overlay.Clear(ctx, capabilityID)
	metrics.AssignmentOp("clear", err)
	return err
}

func (c *client) startAutoReload(interval time.Duration) {
	c.reloadTicker = time.NewTicker(interval)
	ctx, cancel := context.WithCancel(context.Background())
	c.reloadCancel = cancel

	go func(ticker *time.Ticker) {
		for {
			select {
			case <-ticker.C:
				reloadCtx, reloadCancel := context.WithTimeout(ctx, constants.ReloadTimeout)
				r := c.Reload(reloadCtx)
				reloadCancel()
				if r.ExternalErr != nil && !errors.Is(r.ExternalErr, context.Canceled) {
					logging.Warn().Err(r.ExternalErr).Msg("Auto-reload fell back to bootstrap data")
				}
			case <-ctx.Done():
				return
			}
		}
	}(c.reloadTicker)
}

// Close stops background reloads and closes the key-value store.
// It is safe to call more than once.
func (c *client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if c.reloadTicker != nil {
			c.reloadTicker.Stop()
		}
		if c.reloadCancel != nil {
			c.reloadCancel()
		}
		if c.kv != nil {
			err = errors.WrapResource("close", "store", "", c.kv.Close())
		}
	})
	return err
}
