// Package sources merges the catalog's collections from their three
// possible origins and loads them into the entity store.
//
// Precedence is decided per collection: a saved user overlay wins, then
// rows from an external RowSource (only when requested), then the
// embedded bootstrap data set. The external attempt is all-or-nothing:
// if any of the six retrievals fails, every collection without an
// overlay uses bootstrap data. An external collection that loads but
// normalizes to zero records falls back to bootstrap on its own.
//
// Example usage:
//
//	merger := sources.NewMerger(
//	    sources.WithRowSource(csvfiles.New(os.DirFS("data"))),
//	    sources.WithOverlays(kvStore),
//	)
//	report := merger.Load(ctx, store, sources.LoadOptions{External: true})
//	for _, k := range catalog.Kinds() {
//	    fmt.Println(k, report.Origin(k))
//	}
package sources

import (
	"context"

	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/normalize"
)

// RowSource yields raw rows for one collection kind.
type RowSource interface {
	// Name identifies the source in logs and metrics.
	Name() string
	// Rows retrieves every raw row of the given kind.
	Rows(ctx context.Context, kind catalog.Kind) ([]normalize.Row, error)
}

// Origin records where a loaded collection came from.
type Origin string

// Collection origins, highest precedence first.
const (
	OriginOverlay   Origin = "overlay"
	OriginExternal  Origin = "external"
	OriginBootstrap Origin = "bootstrap"
)

// String returns the string representation of an origin.
func (o Origin) String() string {
	return string(o)
}

// LoadOptions controls one Load call.
type LoadOptions struct {
	// External enables the external RowSource. Without it only overlays
	// and bootstrap data are considered.
	External bool
}
