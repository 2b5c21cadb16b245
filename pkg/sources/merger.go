package sources

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/agentstation/capmap/internal/metrics"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/kv"
	"github.com/agentstation/capmap/pkg/logging"
	"github.com/agentstation/capmap/pkg/normalize"
)

// Target receives the merged collections. *catalog.Store satisfies it.
type Target interface {
	Replace(catalog.Collections)
}

// Merger decides, per collection, which origin supplies the data.
type Merger struct {
	source    RowSource
	overlays  kv.Store
	bootstrap func() (catalog.Collections, error)
}

// NewMerger creates a Merger. Without options it only uses the embedded
// bootstrap data set.
func NewMerger(opts ...Option) *Merger {
	m := &Merger{}
	for _, opt := range append(defaultOptions(), opts...) {
		opt(m)
	}
	return m
}

// Load merges all six collections and replaces the target's contents
// in one step. It never fails: every problem is logged, counted and
// recorded in the returned Report.
func (m *Merger) Load(ctx context.Context, target Target, opts LoadOptions) *Report {
	start := time.Now()
	logger := logging.FromContext(ctx)
	report := newReport()

	boot := m.loadBootstrap(ctx)

	var external *catalog.Collections
	if opts.External {
		if m.source == nil {
			logger.Warn().Msg("External source requested but none configured, using bootstrap data")
		} else {
			report.ExternalAttempted = true
			external, report.ExternalErr = m.fetch(ctx)
			if report.ExternalErr != nil {
				metrics.ExternalFallback()
				logger.Warn().
					Err(report.ExternalErr).
					Str("source", m.source.Name()).
					Msg("External load failed, using bootstrap data")
			}
		}
	}

	var merged catalog.Collections
	for _, k := range catalog.Kinds() {
		kctx := logging.WithCollection(ctx, k.String())
		klog := logging.FromContext(kctx)

		origin := OriginBootstrap
		switch overlay, ok := m.readOverlay(kctx, k); {
		case ok:
			merged.Take(k, overlay)
			origin = OriginOverlay
		case external != nil && external.Len(k) > 0:
			merged.Take(k, external)
			origin = OriginExternal
		default:
			if external != nil {
				klog.Debug().Msg("External collection is empty, using bootstrap data")
			}
			merged.Take(k, &boot)
		}

		n := merged.Len(k)
		report.Collections[k] = CollectionReport{Origin: origin, Records: n}
		metrics.CollectionLoaded(k.String(), origin.String(), n)
		klog.Debug().Str("origin", origin.String()).Int("records", n).Msg("Collection loaded")
	}

	target.Replace(merged)

	report.Duration = time.Since(start)
	metrics.LoadObserved(report.Duration)
	logger.Info().Str("summary", report.String()).Dur("duration", report.Duration).Msg("Catalog loaded")
	return report
}

func (m *Merger) loadBootstrap(ctx context.Context) catalog.Collections {
	if m.bootstrap == nil {
		return catalog.Collections{}
	}
	c, err := m.bootstrap()
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Bootstrap data unavailable")
		return catalog.Collections{}
	}
	return c
}

// fetch retrieves all six kinds concurrently and waits for every one of
// them. Any failure discards the whole external data set.
func (m *Merger) fetch(ctx context.Context) (*catalog.Collections, error) {
	logger := logging.FromContext(ctx)
	kinds := catalog.Kinds()
	name := m.source.Name()

	results := make([]*catalog.Collections, len(kinds))
	var wg sync.WaitGroup
	var errs []error
	var errMutex sync.Mutex

	for i, k := range kinds {
		wg.Add(1)
		go func(i int, k catalog.Kind) {
			defer wg.Done()

			rows, err := m.source.Rows(ctx, k)
			if err != nil {
				logger.Warn().Err(err).Str("source", name).Str("collection", k.String()).Msg("Row retrieval failed")
				metrics.SourceFailed(name, k.String())
				errMutex.Lock()
				errs = append(errs, errors.WrapSource(name, k.String(), err))
				errMutex.Unlock()
				return
			}
			results[i] = normalize.Collection(k, rows)
			logger.Debug().
				Str("source", name).
				Str("collection", k.String()).
				Int("rows", len(rows)).
				Int("records", results[i].Len(k)).
				Msg("Rows normalized")
		}(i, k)
	}

	wg.Wait()

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	merged := &catalog.Collections{}
	for i, k := range kinds {
		merged.Take(k, results[i])
	}
	return merged, nil
}

// readOverlay returns the saved overlay for a kind when it is present and
// well formed: the key exists, decodes as a JSON array and holds at least
// one record with an ID. Records without an ID are discarded.
func (m *Merger) readOverlay(ctx context.Context, k catalog.Kind) (*catalog.Collections, bool) {
	if m.overlays == nil {
		return nil, false
	}
	logger := logging.FromContext(ctx)

	data, err := m.overlays.Get(ctx, k.String())
	if errors.IsNotFound(err) {
		return nil, false
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Overlay unreadable, ignoring")
		return nil, false
	}
	c, err := decodeOverlay(k, data)
	if err != nil {
		logger.Warn().Err(err).Msg("Overlay malformed, ignoring")
		return nil, false
	}
	if c.Len(k) == 0 {
		logger.Debug().Msg("Overlay holds no records, ignoring")
		return nil, false
	}
	return c, true
}

func decodeOverlay(k catalog.Kind, data []byte) (*catalog.Collections, error) {
	c := &catalog.Collections{}
	var err error
	switch k {
	case catalog.KindBusinessProcesses:
		err = json.Unmarshal(data, &c.BusinessProcesses)
		c.BusinessProcesses = slices.DeleteFunc(c.BusinessProcesses, func(v catalog.BusinessProcess) bool { return v.ID == "" })
	case catalog.KindCapabilities:
		err = json.Unmarshal(data, &c.Capabilities)
		c.Capabilities = slices.DeleteFunc(c.Capabilities, func(v catalog.Capability) bool { return v.ID == "" })
	case catalog.KindVendors:
		err = json.Unmarshal(data, &c.Vendors)
		c.Vendors = slices.DeleteFunc(c.Vendors, func(v catalog.Vendor) bool { return v.ID == "" })
	case catalog.KindProducts:
		err = json.Unmarshal(data, &c.Products)
		c.Products = slices.DeleteFunc(c.Products, func(v catalog.Product) bool { return v.ID == "" })
	case catalog.KindProductEvaluations:
		err = json.Unmarshal(data, &c.ProductEvaluations)
		c.ProductEvaluations = slices.DeleteFunc(c.ProductEvaluations, func(v catalog.ProductEvaluation) bool { return v.ID == "" })
	case catalog.KindBusinessProcessEvaluations:
		err = json.Unmarshal(data, &c.BusinessProcessEvaluations)
		c.BusinessProcessEvaluations = slices.DeleteFunc(c.BusinessProcessEvaluations, func(v catalog.BusinessProcessEvaluation) bool { return v.ID == "" })
	default:
		return nil, errors.NewValidationError("kind", k, "unknown collection kind")
	}
	if err != nil {
		return nil, errors.WrapParse("json", k.String(), err)
	}
	return c, nil
}

// SaveCollection writes one collection of c as a user overlay. The next
// Load prefers it over external and bootstrap data.
func SaveCollection(ctx context.Context, store kv.Store, k catalog.Kind, c *catalog.Collections) error {
	var v any
	switch k {
	case catalog.KindBusinessProcesses:
		v = c.BusinessProcesses
	case catalog.KindCapabilities:
		v = c.Capabilities
	case catalog.KindVendors:
		v = c.Vendors
	case catalog.KindProducts:
		v = c.Products
	case catalog.KindProductEvaluations:
		v = c.ProductEvaluations
	case catalog.KindBusinessProcessEvaluations:
		v = c.BusinessProcessEvaluations
	default:
		return errors.NewValidationError("kind", k, "unknown collection kind")
	}
	if err := kv.PutJSON(ctx, store, k.String(), v); err != nil {
		return errors.WrapResource("save", "collection", k.String(), err)
	}
	logging.FromContext(ctx).Info().Str("collection", k.String()).Int("records", c.Len(k)).Msg("Saved collection overlay")
	return nil
}

// ClearOverlays deletes every saved collection overlay.
func ClearOverlays(ctx context.Context, store kv.Store) error {
	var errs []error
	for _, k := range catalog.Kinds() {
		if err := store.Delete(ctx, k.String()); err != nil {
			errs = append(errs, errors.WrapResource("clear", "collection", k.String(), err))
		}
	}
	return errors.Join(errs...)
}
