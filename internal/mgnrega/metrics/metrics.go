package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the ingestion and query
// paths. Services treat a nil *Metrics as "metrics disabled", which
// keeps unit tests free of registry bookkeeping.
type Metrics struct {
	RecordsFetched  prometheus.Counter
	RecordsUpserted prometheus.Counter
	UpsertFailures  prometheus.Counter
	SyncDuration    prometheus.Histogram
	QueryRequests   *prometheus.CounterVec
}

// New creates and registers all collectors on the default registry.
// Call once per process.
func New() *Metrics {
	return &Metrics{
		RecordsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "our_voice_records_fetched_total",
			Help: "Raw records fetched from the upstream open-data API",
		}),
		RecordsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "our_voice_records_upserted_total",
			Help: "Monthly district records written to the store",
		}),
		UpsertFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "our_voice_upsert_failures_total",
			Help: "Per-record upsert failures during ingestion",
		}),
		SyncDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "our_voice_sync_duration_seconds",
			Help:    "Wall-clock duration of one ingestion run",
			Buckets: prometheus.DefBuckets,
		}),
		QueryRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "our_voice_query_requests_total",
			Help: "Query operations by name and outcome",
		}, []string{"operation", "outcome"}),
	}
}

// ObserveSync records one completed ingestion run.
func (m *Metrics) ObserveSync(d time.Duration) {
	if m == nil {
		return
	}
	m.SyncDuration.Observe(d.Seconds())
}

// AddFetched counts raw records received from upstream.
func (m *Metrics) AddFetched(n int) {
	if m == nil {
		return
	}
	m.RecordsFetched.Add(float64(n))
}

// IncUpserted counts one successful record write.
func (m *Metrics) IncUpserted() {
	if m == nil {
		return
	}
	m.RecordsUpserted.Inc()
}

// IncUpsertFailure counts one failed record write.
func (m *Metrics) IncUpsertFailure() {
	if m == nil {
		return
	}
	m.UpsertFailures.Inc()
}

// CountQuery records one query operation outcome ("ok", "not_found",
// "error", "bad_request").
func (m *Metrics) CountQuery(operation, outcome string) {
	if m == nil {
		return
	}
	m.QueryRequests.WithLabelValues(operation, outcome).Inc()
}
