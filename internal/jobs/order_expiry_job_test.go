package jobs

import (
	"errors"
	"testing"
	"time"

	"orderflow/internal/adapters/out/redislock"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type expiryFixture struct {
	expirer *MockExpirer
	runner  *MockRunner
	queue   *MockQueue
	metrics *metrics.Metrics
	job     *OrderExpiryJob
	now     time.Time
}

func newExpiryFixture(withLock bool) *expiryFixture {
	f := &expiryFixture{
		expirer: new(MockExpirer),
		runner:  new(MockRunner),
		queue:   new(MockQueue),
		metrics: metrics.New(prometheus.NewRegistry()),
		now:     time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var lock ExclusiveRunner
	if withLock {
		lock = f.runner
	}

	f.job = NewOrderExpiryJob(f.expirer, lock, f.queue,
		OrderExpiryConfig{Interval: time.Minute, MaxAge: 10 * time.Minute}, f.metrics, discardLogger())
	f.job.now = func() time.Time { return f.now }
	return f
}

func (f *expiryFixture) runs(result string) float64 {
	return testutil.ToFloat64(f.metrics.SweepRunsTotal.WithLabelValues(result))
}

func TestOrderExpiryJob_RunOnce_ExpiresAndEnqueuesNotifications(t *testing.T) {
	f := newExpiryFixture(true)
	notificationIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	f.runner.On("Do", mock.Anything, expiryLockKey, time.Minute, mock.Anything).Return(true, nil).Once()
	f.expirer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExpireStaleOrdersCommand) bool {
		return cmd.Cutoff().Equal(f.now.Add(-10 * time.Minute))
	})).Return(commands.ExpireStaleOrdersResult{Expired: 2, Failed: 1, NotificationIDs: notificationIDs}, nil).Once()
	f.queue.On("Enqueue", mock.Anything, notificationIDs).Return(2).Once()

	err := f.job.RunOnce(t.Context())

	require.NoError(t, err)
	mock.AssertExpectationsForObjects(t, f.runner, f.expirer, f.queue)
	assert.InDelta(t, 1.0, f.runs(metrics.SweepCompleted), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(f.metrics.SweepExpiredTotal), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.SweepFailedTotal), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(f.metrics.OrderTransitionsTotal.WithLabelValues("cancelled", "system")), 0)
}

func TestOrderExpiryJob_RunOnce_LockHeldElsewhere(t *testing.T) {
	f := newExpiryFixture(true)

	f.runner.On("Do", mock.Anything, expiryLockKey, time.Minute, mock.Anything).
		Return(false, redislock.ErrNotAcquired).Once()

	err := f.job.RunOnce(t.Context())

	require.ErrorIs(t, err, redislock.ErrNotAcquired)
	f.expirer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	assert.InDelta(t, 1.0, f.runs(metrics.SweepLocked), 0)
}

func TestOrderExpiryJob_RunOnce_HandlerError(t *testing.T) {
	f := newExpiryFixture(false)
	listErr := errors.New("list stale orders: connection refused")

	f.expirer.On("Handle", mock.Anything, mock.Anything).
		Return(commands.ExpireStaleOrdersResult{}, listErr).Once()

	err := f.job.RunOnce(t.Context())

	require.ErrorIs(t, err, listErr)
	f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	assert.InDelta(t, 1.0, f.runs(metrics.SweepError), 0)
}

func TestOrderExpiryJob_RunOnce_WithoutLockRunsDirectly(t *testing.T) {
	f := newExpiryFixture(false)

	f.expirer.On("Handle", mock.Anything, mock.Anything).Return(commands.ExpireStaleOrdersResult{}, nil).Once()
	f.queue.On("Enqueue", mock.Anything, []kernel.UUID(nil)).Return(0).Once()

	require.NoError(t, f.job.RunOnce(t.Context()))
	f.runner.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mock.AssertExpectationsForObjects(t, f.expirer, f.queue)
}

func TestOrderExpiryJob_Start_RejectsNonPositiveInterval(t *testing.T) {
	job := NewOrderExpiryJob(new(MockExpirer), nil, new(MockQueue),
		OrderExpiryConfig{MaxAge: time.Minute}, metrics.New(prometheus.NewRegistry()), discardLogger())

	require.Error(t, job.Start())
}

func TestJobManager_StartAndStop(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	fanout := NewNotificationFanout(new(MockDispatcher), 2, 4, m, discardLogger())
	expiry := NewOrderExpiryJob(new(MockExpirer), nil, fanout,
		OrderExpiryConfig{Interval: time.Hour, MaxAge: 10 * time.Minute}, m, discardLogger())

	manager := NewJobManager(expiry, fanout)

	require.NoError(t, manager.StartAll(t.Context()))
	manager.StopAll()
}

func TestJobManager_StartAll_FailedJobStopsWorkers(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	fanout := NewNotificationFanout(new(MockDispatcher), 1, 1, m, discardLogger())
	expiry := NewOrderExpiryJob(new(MockExpirer), nil, fanout, OrderExpiryConfig{}, m, discardLogger())

	manager := NewJobManager(expiry, fanout)

	require.Error(t, manager.StartAll(t.Context()))
	assert.Nil(t, manager.cancel)
}
