package ports

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
)

// ExpiredPickupRef identifies one pickup order found by the expiry sweep.
// The sweep spans tenants, so each ref carries its own tenant id.
type ExpiredPickupRef struct {
	TenantID kernel.UUID
	OrderID  kernel.UUID
}

// OrderRepository defines the persistence contract for order aggregates.
// All reads are tenant-scoped: an id belonging to another tenant behaves
// exactly like a missing row.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id within the tenant without locking it.
	Get(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetByCode retrieves an order by its human-facing code within the tenant.
	GetByCode(ctx context.Context, tenantID kernel.UUID, code string) (*order.Order, error)

	// GetForUpdate retrieves an order by id within the tenant holding a row
	// lock until the transaction ends. Lock acquisition is bounded by the
	// connection's lock timeout; exceeding it surfaces a Busy error.
	GetForUpdate(ctx context.Context, tenantID, id kernel.UUID) (*order.Order, error)

	// GetExpiredPickupRefs lists pickup orders still waiting at the counter
	// whose window elapsed before the cutoff, across all tenants. Ids only:
	// the expiry sweep re-locks and re-validates each order through
	// GetForUpdate, so a customer collecting between the scan and the lock
	// wins the race.
	GetExpiredPickupRefs(ctx context.Context, cutoff time.Time, limit int) ([]ExpiredPickupRef, error)
}
