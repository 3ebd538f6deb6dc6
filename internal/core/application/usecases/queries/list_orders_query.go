package queries

import (
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const defaultListOrdersLimit = 50

// ListOrdersQuery retrieves a tenant's orders, newest first, optionally
// filtered by order status.
type ListOrdersQuery struct {
	tenantID kernel.UUID
	status   *order.OrderStatus
	limit    int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a listing query. A nil status means all
// statuses; a non-positive limit falls back to the default page size.
func NewListOrdersQuery(tenantID kernel.UUID, status *order.OrderStatus, limit int) (ListOrdersQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	if limit <= 0 {
		limit = defaultListOrdersLimit
	}
	return ListOrdersQuery{
		tenantID: tenantID,
		status:   status,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the query.
func (q ListOrdersQuery) TenantID() kernel.UUID { return q.tenantID }

// Status returns the status filter, nil for all statuses.
func (q ListOrdersQuery) Status() *order.OrderStatus { return q.status }

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int { return q.limit }

// ListOrdersQueryResponse is one order row of the listing.
type ListOrdersQueryResponse struct {
	ID             kernel.UUID
	Code           string
	Status         order.OrderStatus
	PaymentStatus  order.PaymentStatus
	DeliveryType   order.DeliveryType
	DeliveryStatus order.DeliveryStatus
	TotalValue     kernel.Money
	CustomerName   string
	CreatedAt      time.Time
}
