package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewJobMetrics(reg)
	m.Observe("outbox_publish", 250*time.Millisecond, nil)
	m.Observe("outbox_publish", 10*time.Millisecond, errors.New("boom"))
	m.AddItems("outbox_publish", "published", 3)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "campusmart_job_success_total", map[string]string{"job": "outbox_publish"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "campusmart_job_failure_total", map[string]string{"job": "outbox_publish"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "campusmart_job_items_total", map[string]string{"job": "outbox_publish", "result": "published"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	mf := findMetricFamily(mfs, "campusmart_job_duration_seconds")
	require.NotNil(t, mf)
	assert.Equal(t, uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("POST", "/api/v1/orders", 201, 20*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "campusmart_http_requests_total", map[string]string{"method": "POST", "route": "/api/v1/orders", "status": "201"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "campusmart_http_requests_total", map[string]string{"route": "unmatched"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)
	m.RecordOperation("create", true)
	m.RecordOperation("create", false)
	m.IncStockRejection()
	m.AddBatchFailures("dispatch", 2)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	got, err := counterValue(mfs, "campusmart_order_operations_total", map[string]string{"operation": "create", "status": "error"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "campusmart_order_stock_rejections_total", nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = counterValue(mfs, "campusmart_order_batch_item_failures_total", map[string]string{"operation": "dispatch"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)
}

func TestNilRecordersAreNoops(t *testing.T) {
	var orders *OrderMetrics
	orders.RecordOperation("create", true)
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Millisecond)
	NewJobMetrics(nil).Observe("job", time.Second, nil)
}

func counterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, pair := range pairs {
			if pair.GetName() == name && pair.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
