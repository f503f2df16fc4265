// Package metrics defines the Prometheus collectors the service exports on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups every collector. Build it once with New and pass it to the
// components that record into it.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	OrdersCreatedTotal     *prometheus.CounterVec
	OrderTransitionsTotal  *prometheus.CounterVec
	NotificationDispatches *prometheus.CounterVec
	FanoutDroppedTotal     prometheus.Counter
	SweepRunsTotal         *prometheus.CounterVec
	SweepExpiredTotal      prometheus.Counter
	SweepFailedTotal       prometheus.Counter
}

// New creates the collectors and registers them on reg. Tests pass a fresh
// prometheus.NewRegistry() to stay isolated from the default registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		OrdersCreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total number of orders placed, by delivery type",
			},
			[]string{"delivery_type"},
		),
		OrderTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_transitions_total",
				Help: "Total number of committed order status transitions, by target status and actor",
			},
			[]string{"status", "actor"},
		),
		NotificationDispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notification_dispatches_total",
				Help: "Total number of notification dispatch attempts, by outcome",
			},
			[]string{"outcome"},
		),
		FanoutDroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notification_fanout_dropped_total",
			Help: "Total number of notifications not queued because the dispatch queue was full",
		}),
		SweepRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_expiry_runs_total",
				Help: "Total number of expiry sweep ticks, by result",
			},
			[]string{"result"},
		),
		SweepExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "order_expiry_expired_total",
			Help: "Total number of orders cancelled by the expiry sweep",
		}),
		SweepFailedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "order_expiry_failed_total",
			Help: "Total number of stale orders the expiry sweep could not cancel",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.OrdersCreatedTotal,
		m.OrderTransitionsTotal,
		m.NotificationDispatches,
		m.FanoutDroppedTotal,
		m.SweepRunsTotal,
		m.SweepExpiredTotal,
		m.SweepFailedTotal,
	)

	return m
}

// Sweep results for SweepRunsTotal.
const (
	SweepCompleted = "completed"
	SweepLocked    = "locked"
	SweepError     = "error"
)
