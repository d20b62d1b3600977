package metrics_test

import (
	"errors"
	"testing"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewOrderMetrics(reg)

	m.ObserveTransition(order.Received, order.Confirmed)
	m.ObserveTransition(order.Received, order.Confirmed)
	m.ObserveTransition(order.Confirmed, order.Canceled)
	m.SetOrdersByStatus(map[order.Status]int64{order.Received: 3, order.Delivered: 1})

	count, err := testutil.GatherAndCount(reg, "orders_status_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "orders_by_status")
	require.NoError(t, err)
	assert.Equal(t, len(order.AllStatuses()), count)
}

func TestOrderMetrics_NilRegistererIsNoop(t *testing.T) {
	m := metrics.NewOrderMetrics(nil)

	assert.NotPanics(t, func() {
		m.ObserveTransition(order.Received, order.Confirmed)
		m.SetOrdersByStatus(nil)
	})
}

func TestJobMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewJobMetrics(reg)

	m.Observe("status-report", 10*time.Millisecond, nil)
	m.Observe("status-report", 10*time.Millisecond, errors.New("db down"))
	m.Observe("", time.Millisecond, nil)

	count, err := testutil.GatherAndCount(reg, "job_success_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(reg, "job_failure_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
