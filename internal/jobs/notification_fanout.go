package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/metrics"

	"golang.org/x/sync/errgroup"
)

const defaultDispatchTimeout = 10 * time.Second

type notificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationCommand) (commands.DeliveryOutcome, error)
}

// NotificationFanout dispatches stored notifications in the background. Producers
// enqueue ids after their transaction committed; a fixed pool of workers drains the
// queue through the dispatch command.
type NotificationFanout struct {
	queue      chan kernel.UUID
	dispatcher notificationDispatcher
	workers    int
	timeout    time.Duration
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewNotificationFanout(
	dispatcher notificationDispatcher,
	workers, queueSize int,
	m *metrics.Metrics,
	logger *slog.Logger,
) *NotificationFanout {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	return &NotificationFanout{
		queue:      make(chan kernel.UUID, queueSize),
		dispatcher: dispatcher,
		workers:    workers,
		timeout:    defaultDispatchTimeout,
		metrics:    m,
		logger:     logger.With("component", "notification_fanout"),
	}
}

// Enqueue never blocks. Ids that do not fit are dropped with a warning; they stay
// unsent and can be dispatched again through the API. It returns how many were queued.
func (f *NotificationFanout) Enqueue(ctx context.Context, ids ...kernel.UUID) int {
	queued := 0
	for _, id := range ids {
		select {
		case f.queue <- id:
			queued++
		default:
			f.metrics.FanoutDroppedTotal.Inc()
			f.logger.WarnContext(ctx, "Dispatch queue full, notification left unsent",
				"notification_id", id.String())
		}
	}
	return queued
}

// Run starts the workers and blocks until ctx is cancelled. Ids still queued at that
// point are not dispatched.
func (f *NotificationFanout) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < f.workers; i++ {
		g.Go(func() error {
			f.work(ctx)
			return nil
		})
	}

	f.logger.InfoContext(ctx, "Notification fan-out started", "workers", f.workers, "queue_size", cap(f.queue))
	err := g.Wait()
	f.logger.InfoContext(context.WithoutCancel(ctx), "Notification fan-out stopped")
	return err
}

func (f *NotificationFanout) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case id := <-f.queue:
			f.dispatch(ctx, id)
		}
	}
}

func (f *NotificationFanout) dispatch(ctx context.Context, id kernel.UUID) {
	cmd, err := commands.NewDispatchNotificationCommand(id)
	if err != nil {
		f.logger.ErrorContext(ctx, "Invalid notification id in dispatch queue", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	outcome, err := f.dispatcher.Handle(ctx, cmd)
	if err != nil {
		f.logger.ErrorContext(ctx, "Notification dispatch failed",
			"notification_id", id.String(), "error", err)
		return
	}

	f.metrics.NotificationDispatches.WithLabelValues(string(outcome)).Inc()
}
