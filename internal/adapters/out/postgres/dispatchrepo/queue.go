package dispatchrepo

import (
	"context"
	"log/slog"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/ports"

	"gorm.io/gorm"
)

// GormDispatchQueue implements DispatchQueue by inserting jobs into the
// dispatch_jobs table. Enqueue runs after the transaction that produced the
// snapshot committed, so a storage failure here degrades to a logged no-op
// instead of unwinding the state change.
type GormDispatchQueue struct {
	db       *gorm.DB
	disabled bool
	logger   *slog.Logger
	now      func() time.Time
}

// NewGormDispatchQueue creates a new dispatch queue. With disabled set the
// queue accepts nothing and reports every snapshot as degraded; the flag
// exists for environments without an outbound messaging channel.
func NewGormDispatchQueue(db *gorm.DB, disabled bool, logger *slog.Logger) *GormDispatchQueue {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormDispatchQueue{
		db:       db,
		disabled: disabled,
		logger:   logger.With("component", "dispatch_queue"),
		now:      time.Now,
	}
}

// Enqueue durably stores the snapshot as a pending job due immediately.
func (q *GormDispatchQueue) Enqueue(ctx context.Context, snapshot notification.Snapshot) ports.EnqueueResult {
	if q.disabled {
		return ports.EnqueueResult{Outcome: ports.EnqueueOutcomeDegraded, Reason: "dispatch disabled"}
	}

	job, err := notification.NewJob(kernel.NewUUID(), snapshot, q.now().UTC())
	if err != nil {
		q.logger.Error("rejected snapshot",
			"order_code", snapshot.OrderCode(), "kind", string(snapshot.Kind()), "error", err)
		return ports.EnqueueResult{Outcome: ports.EnqueueOutcomeDegraded, Reason: err.Error()}
	}

	dto := fromDomain(job)
	if err := q.db.WithContext(ctx).Create(&dto).Error; err != nil {
		q.logger.Error("dispatch job insert failed",
			"order_code", snapshot.OrderCode(), "kind", string(snapshot.Kind()), "error", err)
		return ports.EnqueueResult{Outcome: ports.EnqueueOutcomeDegraded, Reason: err.Error()}
	}

	return ports.EnqueueResult{Outcome: ports.EnqueueOutcomeEnqueued}
}
