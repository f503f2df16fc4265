// Package jobs provides the background work of the order service.
//
// # Available Jobs
//
// 1. OrderExpiryJob - cancels placed orders nobody accepted within the configured age.
// It runs on a github.com/robfig/cron/v3 schedule ("@every <interval>") and, when a
// Redis lock is configured, only on the replica that wins the lock for that tick.
// 2. NotificationFanout - a bounded queue drained by an errgroup of workers that push
// stored notifications through the dispatch command.
//
// # Usage
//
//	fanout := jobs.NewNotificationFanout(dispatchHandler, 4, 256, m, logger)
//	expiry := jobs.NewOrderExpiryJob(expireHandler, locker, fanout, cfg, m, logger)
//
//	jobManager := jobs.NewJobManager(expiry, fanout)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A sweep that finds the lock held is counted and logged at debug level
// - Per-order expiry failures are counted, never fatal to the sweep
// - Dispatch errors are logged; push failures only show up in the outcome metric
// - Failed job starts will stop any already running workers
package jobs
