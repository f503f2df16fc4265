package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/adapters/out/redislock"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/metrics"

	"github.com/robfig/cron/v3"
)

const expiryLockKey = "orderflow:lock:order-expiry"

type staleOrderExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleOrdersCommand) (commands.ExpireStaleOrdersResult, error)
}

// ExclusiveRunner runs fn only if no other replica holds key.
type ExclusiveRunner interface {
	Do(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) error) error
}

type notificationQueue interface {
	Enqueue(ctx context.Context, ids ...kernel.UUID) int
}

// OrderExpiryConfig controls how often the sweep runs and what counts as stale.
type OrderExpiryConfig struct {
	Interval time.Duration
	MaxAge   time.Duration
}

// OrderExpiryJob cancels placed orders older than MaxAge every Interval. With a lock
// configured only one replica sweeps per tick.
type OrderExpiryJob struct {
	handler staleOrderExpirer
	lock    ExclusiveRunner
	queue   notificationQueue
	cfg     OrderExpiryConfig
	cron    *cron.Cron
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewOrderExpiryJob creates the job. lock may be nil for single-replica deployments.
func NewOrderExpiryJob(
	handler staleOrderExpirer,
	lock ExclusiveRunner,
	queue notificationQueue,
	cfg OrderExpiryConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler: handler,
		lock:    lock,
		queue:   queue,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
		metrics: m,
		logger:  logger.With("component", "order_expiry_job"),
		now:     time.Now,
	}
}

func (j *OrderExpiryJob) Start() error {
	if j.cfg.Interval <= 0 {
		return fmt.Errorf("order expiry interval must be positive, got %s", j.cfg.Interval)
	}

	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.cfg.Interval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.cfg.Interval)
		defer cancel()
		_ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started",
		"interval", j.cfg.Interval.String(), "max_age", j.cfg.MaxAge.String())
	return nil
}

// Stop waits for a running sweep to finish.
func (j *OrderExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}

// RunOnce performs a single sweep, taking the lock if one is configured. A tick that
// finds the lock held returns redislock.ErrNotAcquired.
func (j *OrderExpiryJob) RunOnce(ctx context.Context) error {
	var err error
	if j.lock == nil {
		err = j.sweep(ctx)
	} else {
		err = j.lock.Do(ctx, expiryLockKey, j.cfg.Interval, j.sweep)
	}

	switch {
	case errors.Is(err, redislock.ErrNotAcquired):
		j.metrics.SweepRunsTotal.WithLabelValues(metrics.SweepLocked).Inc()
		j.logger.DebugContext(ctx, "Order expiry sweep skipped, another replica holds the lock")
	case err != nil:
		j.metrics.SweepRunsTotal.WithLabelValues(metrics.SweepError).Inc()
		j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", err)
	default:
		j.metrics.SweepRunsTotal.WithLabelValues(metrics.SweepCompleted).Inc()
	}

	return err
}

func (j *OrderExpiryJob) sweep(ctx context.Context) error {
	cmd, err := commands.NewExpireStaleOrdersCommand(j.cfg.MaxAge, j.now())
	if err != nil {
		return err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	j.metrics.SweepExpiredTotal.Add(float64(result.Expired))
	j.metrics.SweepFailedTotal.Add(float64(result.Failed))
	j.metrics.OrderTransitionsTotal.
		WithLabelValues(order.Cancelled.String(), order.ActorSystem.String()).
		Add(float64(result.Expired))

	j.queue.Enqueue(ctx, result.NotificationIDs...)

	if result.Expired > 0 || result.Failed > 0 {
		j.logger.InfoContext(ctx, "Order expiry sweep finished",
			"expired", result.Expired, "failed", result.Failed)
	}
	return nil
}
