package assignments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/internal/storage/memory"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/logging"
)

func newStore() *catalog.Store {
	s := catalog.NewStore()
	s.Replace(catalog.Collections{
		Capabilities: []catalog.Capability{{ID: "c1"}, {ID: "c2"}},
		Vendors:      []catalog.Vendor{{ID: "v1"}, {ID: "v2"}},
		Products: []catalog.Product{
			{ID: "p1", VendorID: "v1", CapabilityIDs: []string{"c2"}},
			{ID: "p2", VendorID: "v1", CapabilityIDs: []string{"c1"}},
			{ID: "p3", VendorID: "v1", CapabilityIDs: []string{"c1"}},
			{ID: "p9", VendorID: "v2", CapabilityIDs: []string{"c1"}},
		},
	})
	return s
}

func TestResolve(t *testing.T) {
	s := newStore()
	o := New(s, nil)

	_, ok := o.Resolve("c1")
	assert.False(t, ok, "no mapping and no vendor selected")

	s.SelectVendor("v1")
	p, ok := o.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "p2", p.ID, "first vendor product covering the capability")

	s.SetAssignment("c1", "p9")
	p, ok = o.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "p9", p.ID, "explicit mapping wins over the vendor")

	s.SetAssignment("c1", "gone")
	_, ok = o.Resolve("c1")
	assert.False(t, ok, "explicit mapping to a missing product does not fall through")
}

func TestAssignThenClear(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	s.SelectVendor("v1")
	kv := memory.New()
	o := New(s, kv)

	require.NoError(t, o.Assign(ctx, "c1", "p9"))
	p, ok := o.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "p9", p.ID)
	assert.True(t, o.Explicit("c1"))

	raw, err := kv.Get(ctx, "assignments")
	require.NoError(t, err)
	assert.JSONEq(t, `{"c1":"p9"}`, string(raw))

	require.NoError(t, o.Clear(ctx, "c1"))
	p, ok = o.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "p2", p.ID, "falls back to the selected vendor")
	assert.False(t, o.Explicit("c1"))

	raw, err = kv.Get(ctx, "assignments")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestAssignValidation(t *testing.T) {
	o := New(newStore(), nil)
	err := o.Assign(context.Background(), "", "p1")
	assert.True(t, errors.IsValidationError(err))
	err = o.Assign(context.Background(), "c1", "")
	assert.True(t, errors.IsValidationError(err))
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Put(ctx, "assignments", []byte(`{"c1":"p3","c2":"p1"}`)))

	s := newStore()
	s.SetAssignment("stale", "x")
	require.NoError(t, New(s, kv).Restore(ctx))
	assert.Equal(t, map[string]string{"c1": "p3", "c2": "p1"}, s.Assignments())

	empty := newStore()
	require.NoError(t, New(empty, memory.New()).Restore(ctx))
	assert.Empty(t, empty.Assignments())
}

func TestRestoreMalformed(t *testing.T) {
	ctx := context.Background()
	tl := logging.NewTestLogger(t)
	ctx = logging.WithLogger(ctx, tl.Logger)

	kv := memory.New()
	require.NoError(t, kv.Put(ctx, "assignments", []byte(`not json`)))
	s := newStore()
	err := New(s, kv).Restore(ctx)
	require.Error(t, err)
	assert.Empty(t, s.Assignments())
	tl.AssertContains(t, "Failed to restore assignments")
}

func TestPersistenceFailureKeepsInMemoryChange(t *testing.T) {
	ctx := context.Background()
	tl := logging.NewTestLogger(t)
	ctx = logging.WithLogger(ctx, tl.Logger)

	kv := memory.New()
	require.NoError(t, kv.Close())
	s := newStore()
	o := New(s, kv)

	err := o.Assign(ctx, "c1", "p3")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrClosed)

	p, ok := o.Resolve("c1")
	require.True(t, ok)
	assert.Equal(t, "p3", p.ID)
	tl.AssertContains(t, "change will not survive reload")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newStore()
	o := New(s, kv, WithKey("custom"))
	require.NoError(t, o.Assign(ctx, "c1", "p1"))

	_, err := kv.Get(ctx, "custom")
	require.NoError(t, err)

	require.NoError(t, o.Reset(ctx))
	assert.Empty(t, s.Assignments())
	_, err = kv.Get(ctx, "custom")
	assert.True(t, errors.IsNotFound(err))
}
