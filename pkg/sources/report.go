package sources

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/capmap/pkg/catalog"
)

// CollectionReport describes how one collection was loaded.
type CollectionReport struct {
	Origin  Origin `json:"origin" yaml:"origin"`
	Records int    `json:"records" yaml:"records"`
}

// Report summarizes a Load. It is informational only; Load never fails.
type Report struct {
	Collections map[catalog.Kind]CollectionReport `json:"collections" yaml:"collections"`
	// ExternalAttempted is true when LoadOptions.External was set and a
	// row source was configured.
	ExternalAttempted bool `json:"externalAttempted" yaml:"externalAttempted"`
	// ExternalErr joins every retrieval failure of the external attempt.
	ExternalErr error         `json:"-" yaml:"-"`
	Duration    time.Duration `json:"duration" yaml:"duration"`
}

func newReport() *Report {
	return &Report{Collections: make(map[catalog.Kind]CollectionReport, len(catalog.Kinds()))}
}

// Origin returns the origin of a collection.
func (r *Report) Origin(k catalog.Kind) Origin {
	return r.Collections[k].Origin
}

// FellBack reports whether the external attempt was discarded.
func (r *Report) FellBack() bool {
	return r.ExternalAttempted && r.ExternalErr != nil
}

// String renders a single-line summary, e.g.
// "businessProcesses=overlay(3) capabilities=bootstrap(10) ...".
func (r *Report) String() string {
	parts := make([]string, 0, len(catalog.Kinds()))
	for _, k := range catalog.Kinds() {
		c := r.Collections[k]
		parts = append(parts, fmt.Sprintf("%s=%s(%d)", k, c.Origin, c.Records))
	}
	return strings.Join(parts, " ")
}
