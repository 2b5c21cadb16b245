package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/pkg/catalog"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		sep  string
		want []string
	}{
		{"blank", "   ", ",", []string{}},
		{"single", "c1", ",", []string{"c1"}},
		{"trimmed", " c1 , c2 ,c3", ",", []string{"c1", "c2", "c3"}},
		{"empty items dropped", "a||b| ", "|", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitList(tt.in, tt.sep))
		})
	}
}

func TestBusinessProcesses(t *testing.T) {
	rows := []Row{
		{"id": " bp1 ", "name": " Lead Management ", "order": " 3 ", "domain": "CRM"},
		{"id": "bp2", "order": "abc"},
		{"id": "bp3", "order": "7x"},
		{"id": "   ", "name": "no id"},
	}
	got := BusinessProcesses(rows)
	require.Len(t, got, 3)
	assert.Equal(t, catalog.BusinessProcess{ID: "bp1", Name: "Lead Management", Order: 3, Domain: catalog.DomainCRM}, got[0])
	assert.Equal(t, 0, got[1].Order)
	assert.Equal(t, 7, got[2].Order)
	assert.Empty(t, got[1].Description)
}

func TestDefaults(t *testing.T) {
	caps := Capabilities([]Row{{"id": "c1", "color": "  "}, {"id": "c2", "color": "red"}})
	require.Len(t, caps, 2)
	assert.Equal(t, "blue", caps[0].Color)
	assert.Equal(t, "red", caps[1].Color)

	orders := map[string]int{"3.5": 3, "12px": 12, " 7 ": 7, "-2": -2, "abc": 0, "": 0, "-": 0, ".5": 0}
	for in, want := range orders {
		bps := BusinessProcesses([]Row{{"id": "bp", "order": in}})
		require.Len(t, bps, 1)
		assert.Equal(t, want, bps[0].Order, in)
	}

	vendors := Vendors([]Row{{"id": "v1"}})
	require.Len(t, vendors, 1)
	assert.Equal(t, "#000000", vendors[0].BrandColor)

	products := Products([]Row{{"id": "p1", "vendorId": "v1"}})
	require.Len(t, products, 1)
	assert.Equal(t, "module", products[0].ProductType)
	assert.NotNil(t, products[0].CapabilityIDs)
	assert.Empty(t, products[0].CapabilityIDs)
}

func TestProductsCapabilityIDs(t *testing.T) {
	got := Products([]Row{{"id": "p1", "capabilityIds": "c1, c2,,c3 "}})
	require.Len(t, got, 1)
	assert.Equal(t, []string{"c1", "c2", "c3"}, got[0].CapabilityIDs)
}

func TestEvaluations(t *testing.T) {
	pe := ProductEvaluations([]Row{{
		"id":           "e1",
		"productId":    "p1",
		"capabilityId": "c1",
		"goodFor":      "SMB | Startups",
		"notIdealFor":  "",
		"confidence":   " high ",
	}})
	require.Len(t, pe, 1)
	assert.Equal(t, []string{"SMB", "Startups"}, pe[0].GoodFor)
	assert.Empty(t, pe[0].NotIdealFor)
	assert.Equal(t, "high", pe[0].Confidence)

	bpe := BusinessProcessEvaluations([]Row{{
		"id":                "b1",
		"vendorId":          "v1",
		"businessProcessId": "bp1",
		"keyProducts":       "p1|p2",
		"strengths":         "fast|cheap",
	}})
	require.Len(t, bpe, 1)
	assert.Equal(t, []string{"p1", "p2"}, bpe[0].KeyProducts)
	assert.Equal(t, []string{"fast", "cheap"}, bpe[0].Strengths)
}

// Output length equals input length minus rows with a blank id, for
// every kind.
func TestDropCount(t *testing.T) {
	rows := []Row{
		{"id": "a"},
		{"id": ""},
		{"name": "missing id column"},
		{"id": "\t"},
		{"id": "b"},
	}
	for _, k := range catalog.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			c := Collection(k, rows)
			assert.Equal(t, 2, c.Len(k))
		})
	}
}

func TestCollectionUnknownKind(t *testing.T) {
	c := Collection(catalog.Kind("widgets"), []Row{{"id": "a"}})
	for _, k := range catalog.Kinds() {
		assert.Zero(t, c.Len(k))
	}
}
