package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/internal/storage"
	"github.com/agentstation/capmap/pkg/constants"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Format:    "json",
		Source:    SourceBootstrap,
		Domain:    "ALL",
		Store:     storage.Config{Driver: storage.DriverFile, Path: filepath.Join(t.TempDir(), "store.json")},
		LogFormat: "json",
		LogOutput: "discard",
	}
}

func newTestApp(t *testing.T, config *Config) *App {
	t.Helper()
	a, err := New("1.0.0", "abc123", "2026-01-01", "test", WithConfig(config))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown(context.Background()) })
	return a
}

// run executes args against a fresh root command and returns stdout.
func run(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := a.createRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNew(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	assert.Equal(t, "json", a.OutputFormat())
}

func TestClientSingleton(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	const goroutines = 20
	var wg sync.WaitGroup
	clients := make([]capmap.Client, goroutines)
	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := a.Client(context.Background())
			assert.NoError(t, err)
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range clients {
		assert.Same(t, clients[0], c)
	}
	require.NotNil(t, clients[0].LastReport())
}

func TestClientInvalidDomain(t *testing.T) {
	config := testConfig(t)
	config.Domain = "HR"
	a := newTestApp(t, config)

	_, err := a.Client(context.Background())
	assert.Error(t, err)
}

func TestListProcessesByDomain(t *testing.T) {
	config := testConfig(t)
	config.Domain = "ERP"
	a := newTestApp(t, config)

	out, err := run(t, a, "list", "processes")
	require.NoError(t, err)
	assert.Contains(t, out, "procure-to-pay")
	assert.NotContains(t, out, "lead-to-opportunity")
}

func TestListCapabilitiesByDomain(t *testing.T) {
	config := testConfig(t)
	config.Domain = "ERP"
	a := newTestApp(t, config)

	out, err := run(t, a, "list", "capabilities")
	require.NoError(t, err)
	assert.Contains(t, out, "invoice-matching")
	assert.NotContains(t, out, "lead-capture")
}

func TestListProductsTable(t *testing.T) {
	config := testConfig(t)
	config.Format = "table"
	a := newTestApp(t, config)

	out, err := run(t, a, "list", "products", "--capability", "lead-capture", "--vendor-id", "hubspot")
	require.NoError(t, err)
	assert.Contains(t, out, "Sales Hub")
	assert.NotContains(t, out, "Sales Cloud")
}

func TestBestUnknownProcess(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := run(t, a, "best", "missing")
	assert.Error(t, err)
}

func TestAssignmentsPersistAcrossRuns(t *testing.T) {
	config := testConfig(t)

	first := newTestApp(t, config)
	out, err := run(t, first, "assign", "lead-capture", "hubspot-sales-hub")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned hubspot-sales-hub to lead-capture")
	require.NoError(t, first.Shutdown(context.Background()))

	second := newTestApp(t, config)
	out, err = run(t, second, "resolve", "lead-capture")
	require.NoError(t, err)
	assert.Contains(t, out, `"explicit": true`)
	assert.Contains(t, out, "hubspot-sales-hub")

	_, err = run(t, second, "unassign", "lead-capture")
	require.NoError(t, err)
	out, err = run(t, second, "assignments")
	require.NoError(t, err)
	assert.NotContains(t, out, "lead-capture")
}

func TestDefaultStorePersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	config, err := LoadConfig()
	require.NoError(t, err)
	config.Format = "json"
	config.LogOutput = "discard"

	first := newTestApp(t, config)
	_, err = run(t, first, "assign", "lead-capture", "hubspot-sales-hub")
	require.NoError(t, err)
	require.NoError(t, first.Shutdown(context.Background()))
	assert.FileExists(t, filepath.Join(dir, constants.DefaultStorePath))

	second := newTestApp(t, config)
	out, err := run(t, second, "assignments")
	require.NoError(t, err)
	assert.Contains(t, out, "hubspot-sales-hub")
}

func TestAssignUnknownProduct(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := run(t, a, "assign", "lead-capture", "missing")
	assert.Error(t, err)
}

func TestBoardUsesSelectedVendor(t *testing.T) {
	config := testConfig(t)
	config.Domain = "CRM"
	config.Vendor = "salesforce"
	a := newTestApp(t, config)

	out, err := run(t, a, "board")
	require.NoError(t, err)
	assert.Contains(t, out, "sales-cloud")
	assert.NotContains(t, out, "s4hana")
}

func TestDataSaveOverridesCollection(t *testing.T) {
	config := testConfig(t)
	a := newTestApp(t, config)

	file := filepath.Join(t.TempDir(), "vendors.csv")
	require.NoError(t, os.WriteFile(file, []byte("id,name\nacme,Acme Corp\n"), 0o600))

	out, err := run(t, a, "data", "save", "vendors", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 1 vendors")

	out, err = run(t, a, "data", "reload")
	require.NoError(t, err)
	assert.Contains(t, out, `"origin": "overlay"`)

	out, err = run(t, a, "list", "vendors")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Corp")
	assert.NotContains(t, out, "Salesforce")

	_, err = run(t, a, "data", "clear")
	require.NoError(t, err)
	out, err = run(t, a, "data", "reload")
	require.NoError(t, err)
	assert.NotContains(t, out, `"origin": "overlay"`)
}

func TestDataSaveUnknownCollection(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	_, err := run(t, a, "data", "save", "widgets", "widgets.csv")
	assert.Error(t, err)
}

func TestEvaluateProcessMarkdown(t *testing.T) {
	config := testConfig(t)
	config.Format = "table"
	a := newTestApp(t, config)

	out, err := run(t, a, "evaluate", "process", "salesforce", "lead-to-opportunity")
	require.NoError(t, err)
	assert.Contains(t, out, "# Salesforce: Lead to Opportunity")
}

func TestReportToFile(t *testing.T) {
	config := testConfig(t)
	config.Domain = "ERP"
	a := newTestApp(t, config)

	file := filepath.Join(t.TempDir(), "map.md")
	_, err := run(t, a, "report", "--out", file)
	require.NoError(t, err)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "## Procure to Pay")
}

func TestVersion(t *testing.T) {
	a := newTestApp(t, testConfig(t))

	out, err := run(t, a, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "capmap 1.0.0")
}
