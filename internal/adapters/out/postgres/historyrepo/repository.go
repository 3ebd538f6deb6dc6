package historyrepo

import (
	"context"
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM. History
// rows are append-only, so there is no aggregate tracking here.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Add appends one history row.
func (r *GormHistoryRepository) Add(ctx context.Context, history *order.History) error {
	if err := history.Validate(); err != nil {
		return err
	}

	dto := fromDomain(history)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByOrder returns the order's history, oldest first.
func (r *GormHistoryRepository) ListByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*order.History, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND tenant_id = ?", orderID.Bytes(), tenantID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*order.History, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
