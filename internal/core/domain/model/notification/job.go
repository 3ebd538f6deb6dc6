package notification

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
)

// JobStatus is the dispatch queue lifecycle of one snapshot.
type JobStatus int

const (
	// JobStatusUnknown represents an invalid or undefined status.
	JobStatusUnknown JobStatus = iota

	// JobStatusPending means the job waits for a worker (first attempt or
	// retry after backoff).
	JobStatusPending

	// JobStatusCompleted means the message was delivered or deliberately
	// blocked; the job will never run again.
	JobStatusCompleted

	// JobStatusFailed means the attempt budget ran out; the job is kept for
	// operator inspection and manual resend.
	JobStatusFailed
)

func getJobStatusStrings() map[JobStatus]string {
	return map[JobStatus]string{
		JobStatusUnknown:   "Unknown",
		JobStatusPending:   "Pending",
		JobStatusCompleted: "Completed",
		JobStatusFailed:    "Failed",
	}
}

// String implements fmt.Stringer. Safe to call on any value.
func (s JobStatus) String() string {
	if str, ok := getJobStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Job is one durable dispatch queue entry: a frozen snapshot plus retry
// bookkeeping. The worker claims due jobs in batches, attempts delivery and
// moves them through the JobStatus lifecycle.
type Job struct {
	id            kernel.UUID
	snapshot      Snapshot
	status        JobStatus
	attempts      int
	nextAttemptAt time.Time
	lastError     string

	isConstructed bool
}

// NewJob creates a pending Job due immediately.
func NewJob(id kernel.UUID, snapshot Snapshot, now time.Time) (*Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	return &Job{
		id:            id,
		snapshot:      snapshot,
		status:        JobStatusPending,
		nextAttemptAt: now,
		isConstructed: true,
	}, nil
}

// RestoreJob rebuilds a Job from persistence.
func RestoreJob(
	id kernel.UUID,
	snapshot Snapshot,
	status JobStatus,
	attempts int,
	nextAttemptAt time.Time,
	lastError string,
) *Job {
	return &Job{
		id:            id,
		snapshot:      snapshot,
		status:        status,
		attempts:      attempts,
		nextAttemptAt: nextAttemptAt,
		lastError:     lastError,
		isConstructed: true,
	}
}

// Validate ensures the Job was created through a constructor.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return errs.NewValueIsRequiredError("Job must be created via NewJob or RestoreJob")
	}
	return nil
}

// Complete finishes the job after a successful send or a tenant block.
func (j *Job) Complete() {
	j.status = JobStatusCompleted
	j.lastError = ""
}

// RecordFailure counts one failed attempt. The job stays pending with the
// given retry time until the attempt budget is exhausted, then moves to
// failed for good.
func (j *Job) RecordFailure(cause string, retryAt time.Time, maxAttempts int) {
	j.attempts++
	j.lastError = cause
	if j.attempts >= maxAttempts {
		j.status = JobStatusFailed
		return
	}
	j.status = JobStatusPending
	j.nextAttemptAt = retryAt
}

// Reset re-queues a permanently failed job for another attempt round.
// Used by the manual resend operation.
func (j *Job) Reset(now time.Time) {
	j.status = JobStatusPending
	j.attempts = 0
	j.lastError = ""
	j.nextAttemptAt = now
}

// ID returns the job identifier.
func (j *Job) ID() kernel.UUID { return j.id }

// Snapshot returns the frozen notification payload.
func (j *Job) Snapshot() Snapshot { return j.snapshot }

// Status returns the queue lifecycle status.
func (j *Job) Status() JobStatus { return j.status }

// Attempts returns how many delivery attempts have been made.
func (j *Job) Attempts() int { return j.attempts }

// NextAttemptAt returns when the job becomes due again.
func (j *Job) NextAttemptAt() time.Time { return j.nextAttemptAt }

// LastError returns the most recent failure detail, empty when none.
func (j *Job) LastError() string { return j.lastError }
