package jobs

import (
	"context"
	"fmt"
)

// JobManager starts and stops the background workers together.
type JobManager struct {
	orderExpiryJob *OrderExpiryJob
	fanout         *NotificationFanout

	cancel context.CancelFunc
	done   chan struct{}
}

func NewJobManager(orderExpiryJob *OrderExpiryJob, fanout *NotificationFanout) *JobManager {
	return &JobManager{
		orderExpiryJob: orderExpiryJob,
		fanout:         fanout,
	}
}

// StartAll starts the fan-out workers first so the first sweep can already enqueue.
func (jm *JobManager) StartAll(ctx context.Context) error {
	fanoutCtx, cancel := context.WithCancel(ctx)
	jm.cancel = cancel
	jm.done = make(chan struct{})

	go func() {
		defer close(jm.done)
		_ = jm.fanout.Run(fanoutCtx)
	}()

	if err := jm.orderExpiryJob.Start(); err != nil {
		// Stop already started workers if this one fails
		jm.stopFanout()
		return fmt.Errorf("failed to start order expiry job: %w", err)
	}

	return nil
}

// StopAll stops the sweep before the workers it feeds.
func (jm *JobManager) StopAll() {
	jm.orderExpiryJob.Stop()
	jm.stopFanout()
}

func (jm *JobManager) stopFanout() {
	if jm.cancel == nil {
		return
	}
	jm.cancel()
	<-jm.done
	jm.cancel = nil
}
