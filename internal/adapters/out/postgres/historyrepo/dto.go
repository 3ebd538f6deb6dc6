// Package historyrepo persists the append-only order audit trail.
package historyrepo

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// HistoryDTO is one audit row: the event kind plus the full before/after
// of all three status dimensions.
type HistoryDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID uuid.UUID  `gorm:"type:uuid;index"`
	OrderID  uuid.UUID  `gorm:"type:uuid;index"`
	ActorID  *uuid.UUID `gorm:"type:uuid"`

	Kind string `gorm:"size:40"`
	Note string

	OrderStatusFrom    int
	OrderStatusTo      int
	PaymentStatusFrom  int
	PaymentStatusTo    int
	DeliveryStatusFrom int
	DeliveryStatusTo   int

	CreatedAt time.Time
}

// TableName overrides GORM's default naming to use "order_history".
func (HistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(history *order.History) HistoryDTO {
	var actorID *uuid.UUID
	if id := history.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	return HistoryDTO{
		ID:                 history.ID().Bytes(),
		TenantID:           history.TenantID().Bytes(),
		OrderID:            history.OrderID().Bytes(),
		ActorID:            actorID,
		Kind:               string(history.Kind()),
		Note:               history.Note(),
		OrderStatusFrom:    int(history.OrderStatusFrom()),
		OrderStatusTo:      int(history.OrderStatusTo()),
		PaymentStatusFrom:  int(history.PaymentStatusFrom()),
		PaymentStatusTo:    int(history.PaymentStatusTo()),
		DeliveryStatusFrom: int(history.DeliveryStatusFrom()),
		DeliveryStatusTo:   int(history.DeliveryStatusTo()),
		CreatedAt:          history.CreatedAt(),
	}
}

func toDomain(dto HistoryDTO) (*order.History, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var actorID *kernel.UUID
	if dto.ActorID != nil {
		aID, actorErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		actorID = &aID
	}

	return order.RestoreHistory(
		id, tenantID, orderID, actorID,
		notification.EventKind(dto.Kind), dto.Note,
		order.OrderStatus(dto.OrderStatusFrom), order.OrderStatus(dto.OrderStatusTo),
		order.PaymentStatus(dto.PaymentStatusFrom), order.PaymentStatus(dto.PaymentStatusTo),
		order.DeliveryStatus(dto.DeliveryStatusFrom), order.DeliveryStatus(dto.DeliveryStatusTo),
		dto.CreatedAt,
	), nil
}
