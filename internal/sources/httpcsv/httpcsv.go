// Package httpcsv fetches catalog CSV files over HTTP from a base URL,
// e.g. https://example.com/data/vendors.csv.
package httpcsv

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/agentstation/capmap/internal/sources/csvfiles"
	"github.com/agentstation/capmap/internal/sources/csvrows"
	"github.com/agentstation/capmap/internal/transport"
	"github.com/agentstation/capmap/pkg/catalog"
	"github.com/agentstation/capmap/pkg/errors"
	"github.com/agentstation/capmap/pkg/normalize"
)

// Source downloads one CSV file per kind below a base URL.
type Source struct {
	base   *url.URL
	client *transport.Client
}

// New creates a Source rooted at baseURL. A nil client uses defaults.
func New(baseURL string, client *transport.Client) (*Source, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewValidationError("data_url", baseURL, "must be an absolute http(s) URL")
	}
	if client == nil {
		client = transport.New()
	}
	return &Source{base: u, client: client}, nil
}

// Name implements sources.RowSource.
func (s *Source) Name() string {
	return "http"
}

// URL returns the location of the file for kind k.
func (s *Source) URL(k catalog.Kind) string {
	return s.base.JoinPath(csvfiles.FileName(k)).String()
}

// Rows implements sources.RowSource.
func (s *Source) Rows(ctx context.Context, k catalog.Kind) ([]normalize.Row, error) {
	u := s.URL(k)
	resp, err := s.client.Get(ctx, u)
	if err != nil {
		return nil, errors.WrapIO("fetch", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.WrapIO("fetch", u, fmt.Errorf("unexpected status %s", resp.Status))
	}
	if resp.StatusCode == http.StatusNoContent {
		return []normalize.Row{}, nil
	}
	return csvrows.Decode(resp.Body, u)
}
