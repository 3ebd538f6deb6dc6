// Package jobs provides the background machinery of the order lifecycle:
// the notification dispatch worker and the scheduled pickup expiry sweep.
//
// # Available Jobs
//
// 1. NotificationWorker - polls the durable dispatch queue, delivers rendered
// messages through the configured channel and records every attempt in the
// notification log. Claimed jobs are retried with exponential backoff until
// their attempt budget runs out.
//
// 2. PickupExpiryJob - runs on a cron schedule (hourly by default) and
// cancels pickup orders whose collection window elapsed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(worker, expiryJob)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - The worker never fails a poll cycle on a single bad job: attempt
//     failures are recorded on the job and retried, poison jobs end up in the
//     failed state for operator review.
//   - The expiry sweep skips orders that were collected or locked between the
//     scan and the expiry attempt; skips are logged, not escalated.
package jobs
