package metrics_test

import (
	"testing"

	"orderflow/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersAllCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.HTTPRequestsTotal.WithLabelValues("GET", "/health", "200").Inc()
	m.HTTPRequestDuration.WithLabelValues("GET", "/health", "200").Observe(0.01)
	m.OrdersCreatedTotal.WithLabelValues("delivery").Inc()
	m.OrderTransitionsTotal.WithLabelValues("accepted", "chef").Inc()
	m.NotificationDispatches.WithLabelValues("sent").Inc()
	m.FanoutDroppedTotal.Inc()
	m.SweepRunsTotal.WithLabelValues(metrics.SweepCompleted).Inc()
	m.SweepExpiredTotal.Add(2)
	m.SweepFailedTotal.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 9)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.SweepExpiredTotal), 0)
}

func TestNew_TwiceOnSameRegistry_Panics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	assert.Panics(t, func() { metrics.New(reg) })
}
