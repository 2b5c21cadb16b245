package explore

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/cmd/application"
	"github.com/agentstation/capmap/pkg/catalog"
)

func mockApp(t *testing.T, format string, opts ...capmap.Option) *application.Mock {
	t.Helper()
	client, err := capmap.New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	_, err = client.Load(context.Background())
	require.NoError(t, err)

	return &application.Mock{
		ClientFunc:       func(context.Context) (capmap.Client, error) { return client, nil },
		OutputFormatFunc: func() string { return format },
	}
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		args = []string{}
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBest(t *testing.T) {
	out, err := execute(t, NewBestCommand(mockApp(t, "table")), "lead-to-opportunity")
	require.NoError(t, err)
	assert.Contains(t, out, "Sales Cloud")
	assert.Contains(t, out, "Sales Hub")

	_, err = execute(t, NewBestCommand(mockApp(t, "table")), "missing")
	assert.Error(t, err)
}

func TestDetail(t *testing.T) {
	out, err := execute(t, NewDetailCommand(mockApp(t, "table")), "sales-cloud", "opportunity-to-quote")
	require.NoError(t, err)
	assert.Contains(t, out, "Pipeline Management")
	assert.Contains(t, out, "Revenue Cloud")

	_, err = execute(t, NewDetailCommand(mockApp(t, "table")), "sales-cloud", "missing")
	assert.Error(t, err)
}

func TestEvaluateProductStructured(t *testing.T) {
	out, err := execute(t, NewEvaluateCommand(mockApp(t, "yaml")), "product", "sales-cloud", "lead-scoring")
	require.NoError(t, err)
	assert.Contains(t, out, "id: pe-sales-cloud-lead-scoring")

	_, err = execute(t, NewEvaluateCommand(mockApp(t, "yaml")), "product", "sales-cloud", "cpq")
	assert.Error(t, err)
}

func TestBoardFollowsDomain(t *testing.T) {
	app := mockApp(t, "json", capmap.WithDomain(catalog.DomainERP), capmap.WithVendor("sap"))
	out, err := execute(t, NewBoardCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out, "invoice-matching")
	assert.NotContains(t, out, "lead-capture")
}
