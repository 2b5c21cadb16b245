package csvrows

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/normalize"
)

func TestDecode(t *testing.T) {
	doc := "\ufeffid,name, capabilityIds\n" +
		"p1,Sales Cloud,\"c1,c2\"\n" +
		"\n" +
		",,\n" +
		"p2,Short\n" +
		"p3,Long,c3,extra\n"

	rows, err := Decode(strings.NewReader(doc), "platform_products.csv")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, normalize.Row{"id": "p1", "name": "Sales Cloud", "capabilityIds": "c1,c2"}, rows[0])
	assert.Equal(t, normalize.Row{"id": "p2", "name": "Short"}, rows[1])
	assert.Equal(t, "c3", rows[2]["capabilityIds"])
}

func TestDecodeEmpty(t *testing.T) {
	rows, err := Decode(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = Decode(strings.NewReader("id,name\n"), "header-only.csv")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeError(t *testing.T) {
	_, err := Decode(strings.NewReader("id,name\np1,bare\"quote\n"), "bad.csv")
	require.Error(t, err)
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "csv", pe.Format)
	assert.Equal(t, "bad.csv", pe.File)
	assert.Equal(t, 2, pe.Line)
}
