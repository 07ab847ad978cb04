package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records document store round-trips. It satisfies
// docstore.OperationObserver.
type StoreMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "docstore_operations_total",
		Help:      "Document store operations by collection, operation and outcome.",
	}, []string{"collection", "op", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "docstore_operation_duration_seconds",
		Help:      "Document store operation latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collection", "op"})
	reg.MustRegister(operations, duration)
	return &StoreMetrics{operations: operations, duration: duration}
}

func (m *StoreMetrics) ObserveOperation(collection, op string, duration time.Duration, err error) {
	if m == nil || m.operations == nil {
		return
	}
	collection = normalizeLabel(collection)
	m.operations.WithLabelValues(collection, op, outcome(err)).Inc()
	m.duration.WithLabelValues(collection, op).Observe(duration.Seconds())
}
