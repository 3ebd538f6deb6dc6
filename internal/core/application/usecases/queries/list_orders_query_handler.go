package queries

import (
	"context"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads a tenant's order listing from the database.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for order listings.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query, newest orders first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			o.id,
			o.code,
			o.status,
			o.payment_status,
			o.delivery_type,
			o.delivery_status,
			o.total_value,
			c.name,
			o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.tenant_id = ?`
	args := []any{query.TenantID().Bytes()}

	if query.Status() != nil {
		sqlText += " AND o.status = ?"
		args = append(args, int(*query.Status()))
	}
	sqlText += " ORDER BY o.created_at DESC LIMIT ?"
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersQueryResponse, 0)
	for rows.Next() {
		var resp ListOrdersQueryResponse
		var id uuid.UUID
		var status, paymentStatus, deliveryType, deliveryStatus int
		var totalValue int64

		if err = rows.Scan(
			&id, &resp.Code, &status, &paymentStatus, &deliveryType, &deliveryStatus,
			&totalValue, &resp.CustomerName, &resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.TotalValue, err = kernel.NewMoney(totalValue)
		if err != nil {
			return nil, err
		}
		resp.Status = order.OrderStatus(status)
		resp.PaymentStatus = order.PaymentStatus(paymentStatus)
		resp.DeliveryType = order.DeliveryType(deliveryType)
		resp.DeliveryStatus = order.DeliveryStatus(deliveryStatus)

		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
