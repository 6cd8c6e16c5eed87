package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Store mutation metrics
	StoreMutations *prometheus.CounterVec
	StoreRejects   *prometheus.CounterVec

	// Persistence metrics
	PersistFailures prometheus.Counter
	PersistLatency  prometheus.Histogram

	// Filter engine metrics
	ViewRecomputes *prometheus.CounterVec
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		StoreMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_mutations_total",
			Help:      "Total number of store mutations by collection and operation",
		}, []string{"collection", "operation"}),
		StoreRejects: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_rejections_total",
			Help:      "Total number of business-rule rejections by collection",
		}, []string{"collection", "reason"}),
		PersistFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Total number of best-effort persistence failures",
		}),
		PersistLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "persist_duration_seconds",
			Help:      "Time spent writing collections to storage",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		ViewRecomputes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_recomputes_total",
			Help:      "Total number of filtered/sorted view recomputations",
		}, []string{"collection"}),
	}
}

// Mutation records a successful store mutation. Nil-safe so stores built
// without metrics (tests) need no guards.
func (m *Metrics) Mutation(collection, operation string) {
	if m == nil {
		return
	}
	m.StoreMutations.WithLabelValues(collection, operation).Inc()
}

// Reject records a business-rule rejection.
func (m *Metrics) Reject(collection, reason string) {
	if m == nil {
		return
	}
	m.StoreRejects.WithLabelValues(collection, reason).Inc()
}

// ViewRecompute records one filtered/sorted view recomputation.
func (m *Metrics) ViewRecompute(collection string) {
	if m == nil {
		return
	}
	m.ViewRecomputes.WithLabelValues(collection).Inc()
}

// RegisterCollectionSize exposes a live record count as a gauge. The
// callback is invoked at scrape time.
func RegisterCollectionSize(namespace, collection string, count func() float64) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace:   namespace,
		Name:        "collection_records",
		Help:        "Current number of records in a collection",
		ConstLabels: prometheus.Labels{"collection": collection},
	}, count)
}
