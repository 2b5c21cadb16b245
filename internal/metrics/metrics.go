// Package metrics holds the Prometheus collectors for capmap and the
// registry they are served from.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the capmap collector registry. It is separate from the
// global default so tests and embedders get a clean set.
var Registry = prometheus.NewRegistry()

var (
	collectionLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capmap_collection_loads_total",
			Help: "Number of collection loads by kind and winning origin.",
		},
		[]string{"kind", "origin"},
	)
	collectionRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "capmap_collection_records",
			Help: "Number of records held per collection after the last load.",
		},
		[]string{"kind"},
	)
	sourceFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capmap_source_failures_total",
			Help: "Number of external row retrieval failures by source and kind.",
		},
		[]string{"source", "kind"},
	)
	fallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "capmap_external_fallbacks_total",
			Help: "Number of loads where the external data set was discarded for bootstrap data.",
		},
	)
	loadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "capmap_load_duration_seconds",
			Help:    "Time taken to merge and load all collections.",
			Buckets: prometheus.DefBuckets,
		},
	)
	assignmentOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capmap_assignment_operations_total",
			Help: "Number of assignment overlay operations by operation and result.",
		},
		[]string{"operation", "result"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "capmap_http_requests_total",
			Help: "Number of API requests by route and status code.",
		},
		[]string{"route", "code"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectionLoadsTotal,
		collectionRecords,
		sourceFailuresTotal,
		fallbacksTotal,
		loadDuration,
		assignmentOpsTotal,
		httpRequestsTotal,
	)
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}

// CollectionLoaded records which origin won for a collection.
func CollectionLoaded(kind, origin string, records int) {
	collectionLoadsTotal.WithLabelValues(kind, origin).Inc()
	collectionRecords.WithLabelValues(kind).Set(float64(records))
}

// SourceFailed counts one failed external retrieval.
func SourceFailed(source, kind string) {
	sourceFailuresTotal.WithLabelValues(source, kind).Inc()
}

// ExternalFallback counts one discarded external attempt.
func ExternalFallback() {
	fallbacksTotal.Inc()
}

// LoadObserved records the duration of a full load.
func LoadObserved(d time.Duration) {
	loadDuration.Observe(d.Seconds())
}

// AssignmentOp counts an overlay mutation; err decides the result label.
func AssignmentOp(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	assignmentOpsTotal.WithLabelValues(operation, result).Inc()
}

// HTTPRequest counts one API request.
func HTTPRequest(route string, code int) {
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
