package metrics

import "github.com/prometheus/client_golang/prometheus"

// ContentMetrics counts list/create/delete calls per content endpoint.
type ContentMetrics struct {
	operations *prometheus.CounterVec
}

func NewContentMetrics(reg prometheus.Registerer) *ContentMetrics {
	if reg == nil {
		return &ContentMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_operations_total",
		Help:      "Content operations by endpoint, operation and outcome.",
	}, []string{"endpoint", "op", "outcome"})
	reg.MustRegister(operations)
	return &ContentMetrics{operations: operations}
}

// IncOperation records one content operation.
func (m *ContentMetrics) IncOperation(endpoint, op string, err error) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(endpoint), op, outcome(err)).Inc()
}
