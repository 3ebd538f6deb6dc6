package ports

import (
	"context"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
)

// HistoryRepository defines the persistence contract for the append-only
// order audit trail. Rows are written inside the same transaction as the
// order update and never modified afterwards.
type HistoryRepository interface {
	// Add appends one history row.
	Add(ctx context.Context, history *order.History) error

	// ListByOrder returns the order's history, oldest first.
	ListByOrder(ctx context.Context, tenantID, orderID kernel.UUID) ([]*order.History, error)
}
