// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return flat response
// structures; they never load or mutate aggregates.
package queries

import (
	"errors"
	"strings"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves one order with its audit trail, addressed either
// by id or by the human-facing code. Exactly one of the two must be set.
type GetOrderQuery struct {
	tenantID kernel.UUID
	orderID  *kernel.UUID
	code     string

	guard guard.ConstructorGuard
}

// NewGetOrderQueryByID creates a query addressing the order by id.
func NewGetOrderQueryByID(tenantID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{
		tenantID: tenantID,
		orderID:  &orderID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewGetOrderQueryByCode creates a query addressing the order by code.
func NewGetOrderQueryByCode(tenantID kernel.UUID, code string) (GetOrderQuery, error) {
	if err := tenantID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	code = strings.TrimSpace(strings.ToUpper(code))
	if code == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("code")
	}
	return GetOrderQuery{
		tenantID: tenantID,
		code:     code,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// TenantID returns the tenant scope of the query.
func (q GetOrderQuery) TenantID() kernel.UUID { return q.tenantID }

// OrderID returns the order id, nil when the query addresses by code.
func (q GetOrderQuery) OrderID() *kernel.UUID { return q.orderID }

// Code returns the order code, empty when the query addresses by id.
func (q GetOrderQuery) Code() string { return q.code }

// GetOrderQueryResponse is the flat read model of one order.
type GetOrderQueryResponse struct {
	ID              kernel.UUID
	Code            string
	Status          order.OrderStatus
	PaymentStatus   order.PaymentStatus
	DeliveryType    order.DeliveryType
	DeliveryStatus  order.DeliveryStatus
	TotalValue      kernel.Money
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	TrackingCode    string
	PickupCode      string
	Attempts        int
	CancelReason    string
	ReturnReason    string
	Notes           string
	CreatedAt       time.Time
	ExpiresAt       *time.Time
	History         []OrderHistoryEntry
}

// OrderHistoryEntry is one row of the order's audit trail.
type OrderHistoryEntry struct {
	Kind               notification.EventKind
	Note               string
	OrderStatusFrom    order.OrderStatus
	OrderStatusTo      order.OrderStatus
	PaymentStatusFrom  order.PaymentStatus
	PaymentStatusTo    order.PaymentStatus
	DeliveryStatusFrom order.DeliveryStatus
	DeliveryStatusTo   order.DeliveryStatus
	CreatedAt          time.Time
}
