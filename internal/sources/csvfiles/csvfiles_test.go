package csvfiles

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/pkg/catalog"
)

func TestRows(t *testing.T) {
	fsys := fstest.MapFS{
		"vendors.csv":           {Data: []byte("id,name,brandColor\nv1,Acme,\n")},
		"platform_products.csv": {Data: []byte("id,name,vendorId,capabilityIds\np1,Suite,v1,\"c1, c2\"\n")},
	}
	src := New(fsys)
	assert.Equal(t, "csv", src.Name())

	rows, err := src.Rows(context.Background(), catalog.KindVendors)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["name"])

	rows, err = src.Rows(context.Background(), catalog.KindProducts)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c1, c2", rows[0]["capabilityIds"])

	_, err = src.Rows(context.Background(), catalog.KindCapabilities)
	assert.Error(t, err, "missing file")
}

func TestRowsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(fstest.MapFS{}).Rows(ctx, catalog.KindVendors)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "business_process_evaluations.csv", FileName(catalog.KindBusinessProcessEvaluations))
}
