// Package notificationrepo persists the append-only notification audit
// trail, one row per delivery attempt. Phones land here already masked.
package notificationrepo

import (
	"context"
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogDTO is the database row for one delivery attempt record.
type LogDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID `gorm:"type:uuid;index"`
	OrderID  uuid.UUID `gorm:"type:uuid;index"`

	Kind            string `gorm:"size:40"`
	Status          int
	PayloadHash     string `gorm:"size:64"`
	RecipientMasked string `gorm:"size:32"`
	MessagePreview  string `gorm:"size:500"`

	Attempt           int
	ProviderMessageID string `gorm:"size:120"`
	LastError         string

	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "notification_logs".
func (LogDTO) TableName() string {
	return "notification_logs"
}

// GormNotificationLogRepository implements NotificationLogRepository using GORM.
type GormNotificationLogRepository struct {
	db *gorm.DB
}

// NewGormNotificationLogRepository creates a new GORM notification log repository.
func NewGormNotificationLogRepository(db *gorm.DB) *GormNotificationLogRepository {
	return &GormNotificationLogRepository{db: db}
}

// Add appends one log row.
func (r *GormNotificationLogRepository) Add(ctx context.Context, log *notification.Log) error {
	if err := log.Validate(); err != nil {
		return err
	}

	dto := LogDTO{
		ID:                log.ID().Bytes(),
		TenantID:          log.TenantID().Bytes(),
		OrderID:           log.OrderID().Bytes(),
		Kind:              string(log.Kind()),
		Status:            int(log.Status()),
		PayloadHash:       log.PayloadHash(),
		RecipientMasked:   log.RecipientMasked(),
		MessagePreview:    log.MessagePreview(),
		Attempt:           log.Attempt(),
		ProviderMessageID: log.ProviderMessageID(),
		LastError:         log.LastError(),
		CreatedAt:         log.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the order's notification history, oldest first.
func (r *GormNotificationLogRepository) ListByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*notification.Log, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []LogDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND tenant_id = ?", orderID.Bytes(), tenantID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	logs := make([]*notification.Log, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		logTenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
		if err != nil {
			return nil, err
		}
		logOrderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, err
		}
		logs = append(logs, notification.RestoreLog(
			id, logTenantID, logOrderID,
			notification.EventKind(dto.Kind),
			notification.LogStatus(dto.Status),
			dto.PayloadHash, dto.RecipientMasked, dto.MessagePreview,
			dto.Attempt, dto.ProviderMessageID, dto.LastError,
			dto.CreatedAt,
		))
	}

	return logs, nil
}
