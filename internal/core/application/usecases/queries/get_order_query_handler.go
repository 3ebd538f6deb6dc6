package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order and its audit trail from the database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. An order belonging to another tenant is
// indistinguishable from a missing one.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	where := "o.tenant_id = ? AND o.id = ?"
	arg := any(nil)
	if query.OrderID() != nil {
		arg = query.OrderID().Bytes()
	} else {
		where = "o.tenant_id = ? AND o.code = ?"
		arg = query.Code()
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.code,
			o.status,
			o.payment_status,
			o.delivery_type,
			o.delivery_status,
			o.total_value,
			c.name,
			c.phone,
			o.delivery_address,
			o.tracking_code,
			o.pickup_code,
			o.delivery_attempts,
			o.cancel_reason,
			o.return_reason,
			o.notes,
			o.created_at,
			o.expires_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE `+where, query.TenantID().Bytes(), arg).Row()

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var status, paymentStatus, deliveryType, deliveryStatus int
	var totalValue int64
	var expiresAt sql.NullTime

	err := row.Scan(
		&id, &resp.Code, &status, &paymentStatus, &deliveryType, &deliveryStatus,
		&totalValue, &resp.CustomerName, &resp.CustomerPhone,
		&resp.DeliveryAddress, &resp.TrackingCode, &resp.PickupCode,
		&resp.Attempts, &resp.CancelReason, &resp.ReturnReason, &resp.Notes,
		&resp.CreatedAt, &expiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundErrorWithCause("order", arg, err)
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.TotalValue, err = kernel.NewMoney(totalValue)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Status = order.OrderStatus(status)
	resp.PaymentStatus = order.PaymentStatus(paymentStatus)
	resp.DeliveryType = order.DeliveryType(deliveryType)
	resp.DeliveryStatus = order.DeliveryStatus(deliveryStatus)
	if expiresAt.Valid {
		t := expiresAt.Time
		resp.ExpiresAt = &t
	}

	resp.History, err = h.loadHistory(ctx, query.TenantID(), resp.ID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) loadHistory(
	ctx context.Context,
	tenantID, orderID kernel.UUID,
) ([]OrderHistoryEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			kind,
			note,
			order_status_from,
			order_status_to,
			payment_status_from,
			payment_status_to,
			delivery_status_from,
			delivery_status_to,
			created_at
		FROM order_history
		WHERE tenant_id = ? AND order_id = ?
		ORDER BY created_at, id
	`, tenantID.Bytes(), orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]OrderHistoryEntry, 0)
	for rows.Next() {
		var entry OrderHistoryEntry
		var kind string
		var osf, ost, psf, pst, dsf, dst int
		var createdAt time.Time
		if err = rows.Scan(&kind, &entry.Note, &osf, &ost, &psf, &pst, &dsf, &dst, &createdAt); err != nil {
			return nil, err
		}
		entry.Kind = notification.EventKind(kind)
		entry.OrderStatusFrom = order.OrderStatus(osf)
		entry.OrderStatusTo = order.OrderStatus(ost)
		entry.PaymentStatusFrom = order.PaymentStatus(psf)
		entry.PaymentStatusTo = order.PaymentStatus(pst)
		entry.DeliveryStatusFrom = order.DeliveryStatus(dsf)
		entry.DeliveryStatusTo = order.DeliveryStatus(dst)
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
