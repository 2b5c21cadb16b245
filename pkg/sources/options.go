package sources

import (
	"github.com/agentstation/capmap/internal/bootstrap"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/kv"
)

// Option configures a Merger.
type Option func(*Merger)

// WithRowSource sets the external row source.
func WithRowSource(src RowSource) Option {
	return func(m *Merger) {
		m.source = src
	}
}

// WithOverlays sets the durable store holding saved collection overlays.
func WithOverlays(store kv.Store) Option {
	return func(m *Merger) {
		m.overlays = store
	}
}

// WithBootstrap replaces the embedded bootstrap data set.
func WithBootstrap(fn func() (catalog.Collections, error)) Option {
	return func(m *Merger) {
		m.bootstrap = fn
	}
}

func defaultOptions() []Option {
	return []Option{
		WithBootstrap(bootstrap.Load),
	}
}
