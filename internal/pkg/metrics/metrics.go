// Package metrics holds the Prometheus collectors of the order service.
package metrics

import (
	"time"

	"orders/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics implements ports.StatusMetrics.
type OrderMetrics struct {
	transitions *prometheus.CounterVec
	byStatus    *prometheus.GaugeVec
}

// NewOrderMetrics registers the order collectors on reg. A nil reg yields a no-op recorder.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_status_transitions_total",
		Help: "Committed order status transitions.",
	}, []string{"from", "to"})
	byStatus := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "orders_by_status",
		Help: "Number of stored orders per last status.",
	}, []string{"status"})
	reg.MustRegister(transitions, byStatus)
	return &OrderMetrics{
		transitions: transitions,
		byStatus:    byStatus,
	}
}

func (m *OrderMetrics) ObserveTransition(from, to order.Status) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

// SetOrdersByStatus sets the gauge for every known status; statuses missing from counts are set to 0.
func (m *OrderMetrics) SetOrdersByStatus(counts map[order.Status]int64) {
	if m == nil || m.byStatus == nil {
		return
	}
	for _, s := range order.AllStatuses() {
		m.byStatus.WithLabelValues(s.String()).Set(float64(counts[s]))
	}
}

// JobMetrics records cron job executions.
type JobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

func NewJobMetrics(reg prometheus.Registerer) *JobMetrics {
	if reg == nil {
		return &JobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "job_duration_seconds",
		Help:    "Duration of cron jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_success_total",
		Help: "Successful cron job executions.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "job_failure_total",
		Help: "Failed cron job executions.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &JobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records one run of job.
func (m *JobMetrics) Observe(job string, took time.Duration, err error) {
	if m == nil || m.duration == nil {
		return
	}
	if job == "" {
		job = "unknown"
	}
	m.duration.WithLabelValues(job).Observe(took.Seconds())
	if err != nil {
		m.failure.WithLabelValues(job).Inc()
		return
	}
	m.success.WithLabelValues(job).Inc()
}
