// Package webhookrepo stores processed gateway events for deduplication.
// The unique (tenant_id, event_id) index is the dedup mechanism: a replay
// either trips the Exists pre-check or fails the insert with a duplicate
// key error inside the same transaction as the order mutation.
package webhookrepo

import (
	"context"
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WebhookEventDTO is the database row for one processed gateway event.
type WebhookEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_webhook_events_tenant_event"`
	EventID     string    `gorm:"size:120;uniqueIndex:idx_webhook_events_tenant_event"`
	EventType   string    `gorm:"size:80"`
	ProcessedAt time.Time
}

// TableName overrides GORM's default naming to use "webhook_events".
func (WebhookEventDTO) TableName() string {
	return "webhook_events"
}

// GormWebhookEventRepository implements WebhookEventRepository using GORM.
type GormWebhookEventRepository struct {
	db *gorm.DB
}

// NewGormWebhookEventRepository creates a new GORM webhook event repository.
func NewGormWebhookEventRepository(db *gorm.DB) *GormWebhookEventRepository {
	return &GormWebhookEventRepository{db: db}
}

// Add records a processed event. A duplicate surfaces as
// gorm.ErrDuplicatedKey via the connection's error translation.
func (r *GormWebhookEventRepository) Add(ctx context.Context, event ports.WebhookEvent) error {
	if err := errors.Join(event.ID.Validate(), event.TenantID.Validate()); err != nil {
		return err
	}
	if event.EventID == "" {
		return errs.NewValueIsRequiredError("eventID")
	}

	dto := WebhookEventDTO{
		ID:          event.ID.Bytes(),
		TenantID:    event.TenantID.Bytes(),
		EventID:     event.EventID,
		EventType:   event.EventType,
		ProcessedAt: event.ProcessedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Exists reports whether the tenant already processed the event.
func (r *GormWebhookEventRepository) Exists(ctx context.Context, tenantID kernel.UUID, eventID string) (bool, error) {
	if err := tenantID.Validate(); err != nil {
		return false, err
	}
	if eventID == "" {
		return false, errs.NewValueIsRequiredError("eventID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&WebhookEventDTO{}).
		Where("tenant_id = ? AND event_id = ?", tenantID.Bytes(), eventID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
