package sources

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/internal/storage/memory"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/logging"
	"github.com/agentstation/capmap/pkg/normalize"
)

type fakeSource struct {
	rows  map[catalog.Kind][]normalize.Row
	fail  map[catalog.Kind]bool
	calls atomic.Int32
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Rows(_ context.Context, k catalog.Kind) ([]normalize.Row, error) {
	f.calls.Add(1)
	if f.fail[k] {
		return nil, errors.New("unreachable")
	}
	return f.rows[k], nil
}

// fullSource returns one external record for every kind.
func fullSource() *fakeSource {
	rows := map[catalog.Kind][]normalize.Row{}
	for _, k := range catalog.Kinds() {
		rows[k] = []normalize.Row{{"id": "ext-" + k.String(), "name": "External"}}
	}
	return &fakeSource{rows: rows, fail: map[catalog.Kind]bool{}}
}

func testBootstrap() (catalog.Collections, error) {
	return catalog.Collections{
		BusinessProcesses:          []catalog.BusinessProcess{{ID: "boot-bp"}},
		Capabilities:               []catalog.Capability{{ID: "boot-c"}},
		Vendors:                    []catalog.Vendor{{ID: "boot-v"}},
		Products:                   []catalog.Product{{ID: "boot-p"}},
		ProductEvaluations:         []catalog.ProductEvaluation{{ID: "boot-pe"}},
		BusinessProcessEvaluations: []catalog.BusinessProcessEvaluation{{ID: "boot-bpe"}},
	}, nil
}

func TestLoadBootstrapOnly(t *testing.T) {
	src := fullSource()
	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(src))
	store := catalog.NewStore()

	report := m.Load(context.Background(), store, LoadOptions{})
	assert.False(t, report.ExternalAttempted)
	assert.Zero(t, src.calls.Load(), "external source not consulted without the flag")
	for _, k := range catalog.Kinds() {
		assert.Equal(t, OriginBootstrap, report.Origin(k), k)
		assert.Equal(t, 1, report.Collections[k].Records)
	}
	_, ok := store.Vendor("boot-v")
	assert.True(t, ok)
}

func TestLoadExternal(t *testing.T) {
	src := fullSource()
	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(src))
	store := catalog.NewStore()

	report := m.Load(context.Background(), store, LoadOptions{External: true})
	require.NoError(t, report.ExternalErr)
	assert.False(t, report.FellBack())
	assert.Equal(t, int32(6), src.calls.Load())
	for _, k := range catalog.Kinds() {
		assert.Equal(t, OriginExternal, report.Origin(k), k)
	}
	v, ok := store.Vendor("ext-vendors")
	require.True(t, ok)
	assert.Equal(t, "#000000", v.BrandColor, "normalizer defaults applied")
}

func TestLoadExternalFailureFallsBackForEverything(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	src := fullSource()
	src.fail[catalog.KindProductEvaluations] = true
	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(src))
	store := catalog.NewStore()

	report := m.Load(ctx, store, LoadOptions{External: true})
	require.Error(t, report.ExternalErr)
	assert.True(t, errors.IsUnavailable(report.ExternalErr))
	assert.True(t, report.FellBack())
	assert.Equal(t, int32(6), src.calls.Load(), "every retrieval is awaited")

	want, _ := testBootstrap()
	assert.Equal(t, want, store.Collections())
	tl.AssertContains(t, "External load failed")
}

func TestLoadTotalExternalFailure(t *testing.T) {
	src := fullSource()
	for _, k := range catalog.Kinds() {
		src.fail[k] = true
	}
	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(src))
	store := catalog.NewStore()

	report := m.Load(context.Background(), store, LoadOptions{External: true})
	require.Error(t, report.ExternalErr)
	want, _ := testBootstrap()
	assert.Equal(t, want, store.Collections())
}

func TestLoadEmptyExternalKindFallsBackAlone(t *testing.T) {
	src := fullSource()
	src.rows[catalog.KindVendors] = []normalize.Row{{"id": ""}, {"name": "no id"}}
	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(src))
	store := catalog.NewStore()

	report := m.Load(context.Background(), store, LoadOptions{External: true})
	require.NoError(t, report.ExternalErr)
	assert.Equal(t, OriginBootstrap, report.Origin(catalog.KindVendors))
	assert.Equal(t, OriginExternal, report.Origin(catalog.KindProducts))
}

func TestLoadWithoutSourceConfigured(t *testing.T) {
	m := NewMerger(WithBootstrap(testBootstrap))
	report := m.Load(context.Background(), catalog.NewStore(), LoadOptions{External: true})
	assert.False(t, report.ExternalAttempted)
	assert.Equal(t, OriginBootstrap, report.Origin(catalog.KindProducts))
}

func TestOverlayPrecedenceAcrossReload(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	src := fullSource()
	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(src), WithOverlays(kv))

	saved := catalog.Collections{Products: []catalog.Product{{ID: "mine", Name: "Edited"}}}
	require.NoError(t, SaveCollection(ctx, kv, catalog.KindProducts, &saved))

	for _, external := range []bool{false, true} {
		store := catalog.NewStore()
		report := m.Load(ctx, store, LoadOptions{External: external})
		assert.Equal(t, OriginOverlay, report.Origin(catalog.KindProducts))
		p, ok := store.Product("mine")
		require.True(t, ok)
		assert.Equal(t, "Edited", p.Name)
		assert.Len(t, store.Products(), 1)
	}

	src.fail[catalog.KindVendors] = true
	store := catalog.NewStore()
	report := m.Load(ctx, store, LoadOptions{External: true})
	assert.True(t, report.FellBack())
	assert.Equal(t, OriginOverlay, report.Origin(catalog.KindProducts), "overlay survives external failure")
	assert.Equal(t, OriginBootstrap, report.Origin(catalog.KindVendors))
}

func TestMalformedOverlaysIgnored(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Put(ctx, "vendors", []byte(`{"not":"an array"}`)))
	require.NoError(t, kv.Put(ctx, "products", []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, "capabilities", []byte(`[{"name":"no id"}]`)))
	require.NoError(t, kv.Put(ctx, "businessProcesses", []byte(`[{"id":""},{"id":"kept"}]`)))

	m := NewMerger(WithBootstrap(testBootstrap), WithOverlays(kv))
	store := catalog.NewStore()
	report := m.Load(ctx, store, LoadOptions{})

	assert.Equal(t, OriginBootstrap, report.Origin(catalog.KindVendors))
	assert.Equal(t, OriginBootstrap, report.Origin(catalog.KindProducts))
	assert.Equal(t, OriginBootstrap, report.Origin(catalog.KindCapabilities))
	assert.Equal(t, OriginOverlay, report.Origin(catalog.KindBusinessProcesses))
	assert.Equal(t, []catalog.BusinessProcess{{ID: "kept"}}, store.BusinessProcesses())
}

func TestLoadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	saved := catalog.Collections{Vendors: []catalog.Vendor{{ID: "v-overlay"}}}
	require.NoError(t, SaveCollection(ctx, kv, catalog.KindVendors, &saved))

	m := NewMerger(WithBootstrap(testBootstrap), WithRowSource(fullSource()), WithOverlays(kv))
	store := catalog.NewStore()

	m.Load(ctx, store, LoadOptions{External: true})
	first := store.Collections()
	m.Load(ctx, store, LoadOptions{External: true})
	assert.Equal(t, first, store.Collections())
}

func TestClearOverlays(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	c, _ := testBootstrap()
	for _, k := range catalog.Kinds() {
		require.NoError(t, SaveCollection(ctx, kv, k, &c))
	}
	require.NoError(t, ClearOverlays(ctx, kv))
	for _, k := range catalog.Kinds() {
		_, err := kv.Get(ctx, k.String())
		assert.True(t, errors.IsNotFound(err), k)
	}

	assert.Error(t, SaveCollection(ctx, kv, catalog.Kind("widgets"), &c))
}

func TestReportString(t *testing.T) {
	m := NewMerger(WithBootstrap(testBootstrap))
	report := m.Load(context.Background(), catalog.NewStore(), LoadOptions{})
	assert.Contains(t, report.String(), "products=bootstrap(1)")
}
