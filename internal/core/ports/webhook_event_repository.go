package ports

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/kernel"
)

// WebhookEvent is one processed gateway event, stored for deduplication.
// The (tenant id, external event id) pair is unique; inserting a duplicate
// is how a replayed webhook is detected.
type WebhookEvent struct {
	ID          kernel.UUID
	TenantID    kernel.UUID
	EventID     string
	EventType   string
	ProcessedAt time.Time
}

// WebhookEventRepository defines the persistence contract for the webhook
// deduplication store. Add runs inside the same transaction as the order
// mutation the event caused, so an event is marked processed if and only if
// its effects committed.
type WebhookEventRepository interface {
	// Add records a processed event. Returns an error satisfying
	// errors.Is(err, gorm.ErrDuplicatedKey) when the event was already
	// recorded.
	Add(ctx context.Context, event WebhookEvent) error

	// Exists reports whether the tenant already processed the event.
	Exists(ctx context.Context, tenantID kernel.UUID, eventID string) (bool, error)
}
