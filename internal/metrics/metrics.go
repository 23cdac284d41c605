// Package metrics defines the Prometheus collectors exported by the API
// server and the ingest tool. Collectors are registered on the Registerer
// passed in, so tests can use a private prometheus.NewRegistry().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nyctaxi"

// HTTP holds the per-request collectors used by the request middleware.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP registers the HTTP collectors on reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	f := promauto.With(reg)
	return &HTTP{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Record outcomes for Ingest.Records.
const (
	OutcomeKept      = "kept"
	OutcomeMissing   = "missing"
	OutcomeDuplicate = "duplicate"
	OutcomeInvalid   = "invalid"
)

// Ingest holds the collectors updated by the clean and load stages.
type Ingest struct {
	Records     *prometheus.CounterVec
	Loaded      prometheus.Counter
	LastLoadRun prometheus.Gauge
}

// NewIngest registers the ingest collectors on reg.
func NewIngest(reg prometheus.Registerer) *Ingest {
	f := promauto.With(reg)
	return &Ingest{
		Records: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_records_total",
			Help:      "Raw trip records seen by the cleaning pipeline, by outcome.",
		}, []string{"outcome"}),
		Loaded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_trips_loaded_total",
			Help:      "Cleaned trips written to storage.",
		}),
		LastLoadRun: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ingest_last_load_timestamp_seconds",
			Help:      "Unix time of the last successful load.",
		}),
	}
}
