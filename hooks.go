package capmap

import (
	"sync"

	"github.com/agentstation/capmap/pkg/sources"
)

// ReloadHook is called after every catalog load with its report.
type ReloadHook func(r *sources.Report)

// hooks manages reload callbacks.
type hooks struct {
	mu       sync.RWMutex
	onReload []ReloadHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnReload registers a callback for completed loads.
func (c *client) OnReload(fn ReloadHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onReload = append(c.hooks.onReload, fn)
}

func (h *hooks) triggerReload(r *sources.Report) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onReload {
		hook(r)
	}
}
