package queries

import (
	"context"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFailedNotificationsQueryHandler reads failed dispatch jobs from the
// database. Recipient phones are masked before leaving the handler; the read
// model never exposes the full number.
type ListFailedNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewListFailedNotificationsQueryHandler creates a handler for failed
// dispatch job listings.
func NewListFailedNotificationsQueryHandler(db *gorm.DB) ListFailedNotificationsQueryHandler {
	return ListFailedNotificationsQueryHandler{db: db}
}

// Handle executes the query, most recent failures first.
func (h ListFailedNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListFailedNotificationsQuery,
) ([]ListFailedNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			order_code,
			kind,
			recipient_phone,
			attempts,
			last_error,
			created_at
		FROM dispatch_jobs
		WHERE tenant_id = ? AND status = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, query.TenantID().Bytes(), int(notification.JobStatusFailed), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]ListFailedNotificationsQueryResponse, 0)
	for rows.Next() {
		var resp ListFailedNotificationsQueryResponse
		var id, orderID uuid.UUID
		var kind, phone string

		if err = rows.Scan(
			&id, &orderID, &resp.OrderCode, &kind, &phone,
			&resp.Attempts, &resp.LastError, &resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		resp.JobID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}
		resp.Kind = notification.EventKind(kind)

		if p, phoneErr := kernel.NewPhone(phone); phoneErr == nil {
			resp.RecipientMasked = p.Masked()
		}

		jobs = append(jobs, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}
