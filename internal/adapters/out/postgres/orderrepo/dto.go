// Package orderrepo persists order aggregates. Status dimensions are stored
// as integers matching the domain enums; the mapping functions convert
// between the aggregate and its row through RestoreOrder, so the stricter
// construction rules never reject rows written by earlier releases.
package orderrepo

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for one order aggregate. The (tenant_id,
// code) pair is unique so a webhook can address an order by code; the
// expiry sweep scans the (delivery_status, expires_at) index.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TenantID   uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_orders_tenant_code"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	SellerID   *uuid.UUID `gorm:"type:uuid"`

	Code       string `gorm:"size:16;uniqueIndex:idx_orders_tenant_code"`
	TotalValue int64
	Notes      string

	Status         int `gorm:"index"`
	PaymentStatus  int
	DeliveryType   int
	DeliveryStatus int `gorm:"index:idx_orders_pickup_expiry"`

	DeliveryAddress  string
	TrackingCode     string
	PickupCode       string `gorm:"size:8"`
	DeliveryAttempts int

	CancelReason string
	ReturnReason string

	CreatedAt   time.Time
	ExpiresAt   *time.Time `gorm:"index:idx_orders_pickup_expiry"`
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
	ReturnedAt  *time.Time

	Version int
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var sellerID *uuid.UUID
	if id := aggregate.SellerID(); id != nil {
		raw := id.Bytes()
		sellerID = &raw
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		TenantID:         aggregate.TenantID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		SellerID:         sellerID,
		Code:             aggregate.Code(),
		TotalValue:       aggregate.TotalValue().Centavos(),
		Notes:            aggregate.Notes(),
		Status:           int(aggregate.Status()),
		PaymentStatus:    int(aggregate.PaymentStatus()),
		DeliveryType:     int(aggregate.DeliveryType()),
		DeliveryStatus:   int(aggregate.DeliveryStatus()),
		DeliveryAddress:  aggregate.DeliveryAddress(),
		TrackingCode:     aggregate.TrackingCode(),
		PickupCode:       aggregate.PickupCode(),
		DeliveryAttempts: aggregate.DeliveryAttempts(),
		CancelReason:     aggregate.CancelReason(),
		ReturnReason:     aggregate.ReturnReason(),
		CreatedAt:        aggregate.CreatedAt(),
		ExpiresAt:        aggregate.ExpiresAt(),
		ShippedAt:        aggregate.ShippedAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		CancelledAt:      aggregate.CancelledAt(),
		ReturnedAt:       aggregate.ReturnedAt(),
		Version:          aggregate.Version(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.UUIDFromBytes(dto.TenantID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var sellerID *kernel.UUID
	if dto.SellerID != nil {
		sID, sellerErr := kernel.UUIDFromBytes((*dto.SellerID)[:])
		if sellerErr != nil {
			return nil, sellerErr
		}
		sellerID = &sID
	}

	totalValue, err := kernel.NewMoney(dto.TotalValue)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, tenantID, customerID, sellerID,
		dto.Code, totalValue, dto.Notes,
		order.OrderStatus(dto.Status),
		order.PaymentStatus(dto.PaymentStatus),
		order.DeliveryType(dto.DeliveryType),
		order.DeliveryStatus(dto.DeliveryStatus),
		dto.DeliveryAddress, dto.TrackingCode, dto.PickupCode, dto.DeliveryAttempts,
		dto.CancelReason, dto.ReturnReason,
		dto.CreatedAt, dto.ExpiresAt, dto.ShippedAt, dto.DeliveredAt, dto.CancelledAt, dto.ReturnedAt,
		dto.Version,
	)
}
