package ports

import (
	"context"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
)

// NotificationLogRepository defines the persistence contract for the
// append-only notification audit trail. The dispatch worker writes one row
// per attempt; rows are never modified.
type NotificationLogRepository interface {
	// Add appends one log row.
	Add(ctx context.Context, log *notification.Log) error

	// ListByOrder returns the order's notification history, oldest first.
	ListByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*notification.Log, error)
}

// DispatchJobRepository defines the persistence contract for the durable
// dispatch queue the worker drains.
type DispatchJobRepository interface {
	// ClaimDueBatch atomically claims up to limit pending jobs that are due,
	// skipping jobs locked by concurrent workers, and returns them. Claimed
	// jobs stay invisible to other workers until saved back.
	ClaimDueBatch(ctx context.Context, limit int) ([]*notification.Job, error)

	// Save persists the job's post-attempt state (completed, retry, failed).
	Save(ctx context.Context, job *notification.Job) error

	// Get retrieves one job by id.
	Get(ctx context.Context, id kernel.UUID) (*notification.Job, error)

	// ListFailed returns the tenant's permanently failed jobs, newest first.
	ListFailed(ctx context.Context, tenantID kernel.UUID, limit int) ([]*notification.Job, error)
}
