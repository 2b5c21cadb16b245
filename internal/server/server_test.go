package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/capmap"
	"github.com/agentstation/capmap/internal/storage/memory"
	"github.com/agentstation/capmap/pkg/logging"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, cfg Config) (*httptest.Server, capmap.Client) {
	t.Helper()
	client, err := capmap.New(capmap.WithStore(memory.New()))
	require.NoError(t, err)
	_, err = client.Load(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	srv := New(client, cfg, logging.NewNopLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, client
}

func do(t *testing.T, method, url, body string, header map[string]string) (int, envelope) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealthAndReady(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	code, env := do(t, http.MethodGet, ts.URL+"/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "healthy")

	code, env = do(t, http.MethodGet, ts.URL+"/api/v1/ready", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "ready")
}

func TestListProcessesByDomain(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	code, env := do(t, http.MethodGet, ts.URL+"/api/v1/processes?domain=erp", "", nil)
	require.Equal(t, http.StatusOK, code)
	var bps []struct {
		ID     string `json:"id"`
		Domain string `json:"domain"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &bps))
	require.NotEmpty(t, bps)
	for _, bp := range bps {
		assert.Equal(t, "ERP", bp.Domain)
	}

	code, env = do(t, http.MethodGet, ts.URL+"/api/v1/processes?domain=HR", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
}

func TestBestProducts(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	code, env := do(t, http.MethodGet, ts.URL+"/api/v1/processes/lead-to-opportunity/best", "", nil)
	require.Equal(t, http.StatusOK, code)
	var best []struct {
		Vendor struct {
			ID string `json:"id"`
		} `json:"vendor"`
		CapabilityCount int `json:"capabilityCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &best))
	seen := map[string]bool{}
	for _, b := range best {
		assert.False(t, seen[b.Vendor.ID], "vendor %s listed twice", b.Vendor.ID)
		seen[b.Vendor.ID] = true
		assert.Positive(t, b.CapabilityCount)
	}
}

func TestNotFound(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	code, env := do(t, http.MethodGet, ts.URL+"/api/v1/processes/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = do(t, http.MethodGet, ts.URL+"/api/v1/processes/lead-to-opportunity/evaluations/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, http.MethodGet, ts.URL+"/api/v1/processes/procure-to-pay/products/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAssignmentLifecycle(t *testing.T) {
	ts, client := newTestServer(t, DefaultConfig())
	url := ts.URL + "/api/v1/assignments/lead-capture"

	// warm the board cache so the assignment has to invalidate it
	code, _ := do(t, http.MethodGet, ts.URL+"/api/v1/board", "", nil)
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, http.MethodPut, url, `{"productId":"hubspot-sales-hub"}`, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"explicit":true`)

	id, ok := client.Store().Assignment("lead-capture")
	require.True(t, ok)
	assert.Equal(t, "hubspot-sales-hub", id)

	_, env = do(t, http.MethodGet, ts.URL+"/api/v1/board", "", nil)
	assert.Contains(t, string(env.Data), "HubSpot")

	code, env = do(t, http.MethodGet, url, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "hubspot-sales-hub")

	code, env = do(t, http.MethodDelete, url, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"explicit":false`)
	assert.Empty(t, client.Store().Assignments())
}

func TestAssignValidation(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())
	url := ts.URL + "/api/v1/assignments/lead-capture"

	code, _ := do(t, http.MethodPut, url, `{"productId":""}`, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, http.MethodPut, url, `not json`, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSelectionDrivesImplicitResolve(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	code, env := do(t, http.MethodPut, ts.URL+"/api/v1/selection", `{"domain":"crm","vendorId":"salesforce"}`, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"activeDomain":"CRM"`)

	_, env = do(t, http.MethodGet, ts.URL+"/api/v1/assignments/lead-capture", "", nil)
	assert.Contains(t, string(env.Data), "sales-cloud")
	assert.Contains(t, string(env.Data), `"explicit":false`)
}

func TestReload(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	code, env := do(t, http.MethodPost, ts.URL+"/api/v1/reload", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"origin":"bootstrap"`)
}

func TestAuthProtectsMutations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.APIKey = "secret"
	cfg.ReadOnlyPublic = true
	ts, _ := newTestServer(t, cfg)

	code, _ := do(t, http.MethodGet, ts.URL+"/api/v1/vendors", "", nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, http.MethodPost, ts.URL+"/api/v1/reload", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, http.MethodPost, ts.URL+"/api/v1/reload", "", map[string]string{"X-API-Key": "secret"})
	assert.Equal(t, http.StatusOK, code)
}

func TestReportAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t, DefaultConfig())

	resp, err := http.Get(ts.URL + "/api/v1/report")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")
	assert.Contains(t, string(body), "# Capability Map")

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "capmap_http_requests_total")
}
