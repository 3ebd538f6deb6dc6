package ports

import (
	"context"

	"flowlog/internal/core/domain/model/notification"
)

// EnqueueOutcome says what happened to a snapshot handed to the queue.
type EnqueueOutcome int

const (
	// EnqueueOutcomeUnknown represents an invalid or undefined outcome.
	EnqueueOutcomeUnknown EnqueueOutcome = iota

	// EnqueueOutcomeEnqueued means the snapshot was durably stored and will
	// be picked up by the dispatch worker.
	EnqueueOutcomeEnqueued

	// EnqueueOutcomeDegraded means the snapshot was dropped: dispatch is
	// disabled or the queue storage failed. The state change that produced
	// the snapshot already committed and stands.
	EnqueueOutcomeDegraded
)

// EnqueueResult reports the queue's decision. Enqueueing never fails the
// calling command: a broken queue degrades to a logged no-op, so Reason is
// informational rather than an error to propagate.
type EnqueueResult struct {
	Outcome EnqueueOutcome
	// Reason explains a degraded outcome ("dispatch disabled", storage
	// error text); empty when enqueued.
	Reason string
}

// Enqueued reports whether the snapshot made it into the queue.
func (r EnqueueResult) Enqueued() bool {
	return r.Outcome == EnqueueOutcomeEnqueued
}

// DispatchQueue accepts immutable notification snapshots for asynchronous
// delivery. Implementations must be safe for concurrent use.
type DispatchQueue interface {
	// Enqueue hands a snapshot to the queue. Called after the transaction
	// that produced the snapshot committed; the result never unwinds the
	// state change.
	Enqueue(ctx context.Context, snapshot notification.Snapshot) EnqueueResult
}
