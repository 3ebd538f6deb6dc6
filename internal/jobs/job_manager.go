package jobs

import (
	"fmt"
)

// JobManager coordinates all background jobs in the application.
// Provides a unified interface to start and stop them together.
type JobManager struct {
	worker    *NotificationWorker
	expiryJob *PickupExpiryJob
}

// NewJobManager creates a job manager over the dispatch worker and the
// pickup expiry sweep.
func NewJobManager(worker *NotificationWorker, expiryJob *PickupExpiryJob) *JobManager {
	return &JobManager{
		worker:    worker,
		expiryJob: expiryJob,
	}
}

// StartAll starts all background jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.worker.Start(); err != nil {
		return fmt.Errorf("failed to start notification worker: %w", err)
	}

	if err := jm.expiryJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.worker.Stop()
		return fmt.Errorf("failed to start pickup expiry job: %w", err)
	}

	return nil
}

// StopAll stops all background jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expiryJob.Stop()
	jm.worker.Stop()
}
