package queries

import (
	"errors"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/pkg/guard"
)

var ErrListFailedNotificationsQueryIsNotConstructed = errors.New(
	"ListFailedNotificationsQuery must be created via NewListFailedNotificationsQuery constructor",
)

const defaultFailedNotificationsLimit = 50

// ListFailedNotificationsQuery retrieves a tenant's dispatch jobs that
// exhausted their retry budget, for operator review and manual resends.
type ListFailedNotificationsQuery struct {
	tenantID kernel.UUID
	limit    int

	guard guard.ConstructorGuard
}

// NewListFailedNotificationsQuery creates a query over failed dispatch jobs.
func NewListFailedNotificationsQuery(tenantID kernel.UUID, limit int) (ListFailedNotificationsQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return ListFailedNotificationsQuery{}, err
	}
	if limit <= 0 {
		limit = defaultFailedNotificationsLimit
	}
	return ListFailedNotificationsQuery{
		tenantID: tenantID,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListFailedNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListFailedNotificationsQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the query.
func (q ListFailedNotificationsQuery) TenantID() kernel.UUID { return q.tenantID }

// Limit returns the page size.
func (q ListFailedNotificationsQuery) Limit() int { return q.limit }

// ListFailedNotificationsQueryResponse is one failed dispatch job.
type ListFailedNotificationsQueryResponse struct {
	JobID           kernel.UUID
	OrderID         kernel.UUID
	OrderCode       string
	Kind            notification.EventKind
	RecipientMasked string
	Attempts        int
	LastError       string
	CreatedAt       time.Time
}
