package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics tracks order lifecycle operations.
type OrderMetrics struct {
	operations      *prometheus.CounterVec
	stockRejections prometheus.Counter
	batchFailures   *prometheus.CounterVec
}

func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	m := &OrderMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_operations_total",
			Help:      "Order lifecycle operations by outcome.",
		}, []string{"operation", "status"}),
		stockRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_stock_rejections_total",
			Help:      "Order creations rejected for insufficient stock.",
		}),
		batchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_batch_item_failures_total",
			Help:      "Per-order failures inside batch transitions.",
		}, []string{"operation"}),
	}
	reg.MustRegister(m.operations, m.stockRejections, m.batchFailures)
	return m
}

// RecordOperation counts one lifecycle operation.
func (m *OrderMetrics) RecordOperation(operation string, success bool) {
	if m == nil || m.operations == nil {
		return
	}
	status := "success"
	if !success {
		status = "error"
	}
	m.operations.WithLabelValues(normalizeLabel(operation), status).Inc()
}

func (m *OrderMetrics) IncStockRejection() {
	if m == nil || m.stockRejections == nil {
		return
	}
	m.stockRejections.Inc()
}

func (m *OrderMetrics) AddBatchFailures(operation string, n int) {
	if m == nil || m.batchFailures == nil || n <= 0 {
		return
	}
	m.batchFailures.WithLabelValues(normalizeLabel(operation)).Add(float64(n))
}
