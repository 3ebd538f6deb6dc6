package order

import (
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/pkg/errs"
)

// History is one append-only audit row describing a single applied
// transition. Rows are written in the same transaction as the order update,
// so the audit trail and the aggregate can never disagree.
type History struct {
	id       kernel.UUID
	tenantID kernel.UUID
	orderID  kernel.UUID
	// actorID is the staff member or integration that triggered the
	// transition, nil for system jobs such as the pickup expiry sweep.
	actorID *kernel.UUID

	kind notification.EventKind
	note string

	orderStatusFrom    OrderStatus
	orderStatusTo      OrderStatus
	paymentStatusFrom  PaymentStatus
	paymentStatusTo    PaymentStatus
	deliveryStatusFrom DeliveryStatus
	deliveryStatusTo   DeliveryStatus

	createdAt time.Time

	isConstructed bool
}

// NewHistory records a transition returned by one of the Order mutators.
func NewHistory(
	id kernel.UUID,
	order *Order,
	actorID *kernel.UUID,
	transition *Transition,
	createdAt time.Time,
) (*History, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if transition == nil {
		return nil, errs.NewValueIsRequiredError("transition")
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return nil, err
		}
	}

	return &History{
		id:                 id,
		tenantID:           order.TenantID(),
		orderID:            order.ID(),
		actorID:            actorID,
		kind:               transition.Kind,
		note:               transition.Note,
		orderStatusFrom:    transition.OrderStatusFrom,
		orderStatusTo:      transition.OrderStatusTo,
		paymentStatusFrom:  transition.PaymentStatusFrom,
		paymentStatusTo:    transition.PaymentStatusTo,
		deliveryStatusFrom: transition.DeliveryStatusFrom,
		deliveryStatusTo:   transition.DeliveryStatusTo,
		createdAt:          createdAt,
		isConstructed:      true,
	}, nil
}

// RestoreHistory rebuilds a History row from persistence.
func RestoreHistory(
	id kernel.UUID,
	tenantID kernel.UUID,
	orderID kernel.UUID,
	actorID *kernel.UUID,
	kind notification.EventKind,
	note string,
	orderStatusFrom, orderStatusTo OrderStatus,
	paymentStatusFrom, paymentStatusTo PaymentStatus,
	deliveryStatusFrom, deliveryStatusTo DeliveryStatus,
	createdAt time.Time,
) *History {
	return &History{
		id:                 id,
		tenantID:           tenantID,
		orderID:            orderID,
		actorID:            actorID,
		kind:               kind,
		note:               note,
		orderStatusFrom:    orderStatusFrom,
		orderStatusTo:      orderStatusTo,
		paymentStatusFrom:  paymentStatusFrom,
		paymentStatusTo:    paymentStatusTo,
		deliveryStatusFrom: deliveryStatusFrom,
		deliveryStatusTo:   deliveryStatusTo,
		createdAt:          createdAt,
		isConstructed:      true,
	}
}

// Validate ensures the History was created through a constructor.
func (h *History) Validate() error {
	if h == nil || !h.isConstructed {
		return errs.NewValueIsRequiredError("History must be created via NewHistory or RestoreHistory")
	}
	return nil
}

// ID returns the history row identifier.
func (h *History) ID() kernel.UUID { return h.id }

// TenantID returns the owning tenant.
func (h *History) TenantID() kernel.UUID { return h.tenantID }

// OrderID returns the order the row belongs to.
func (h *History) OrderID() kernel.UUID { return h.orderID }

// ActorID returns who triggered the transition, nil for system jobs.
func (h *History) ActorID() *kernel.UUID { return h.actorID }

// Kind returns the event kind of the transition, empty for administrative
// changes that notify nobody.
func (h *History) Kind() notification.EventKind { return h.kind }

// Note returns the free-form detail (cancel reason, carrier failure, ...).
func (h *History) Note() string { return h.note }

// OrderStatusFrom returns the order status before the transition.
func (h *History) OrderStatusFrom() OrderStatus { return h.orderStatusFrom }

// OrderStatusTo returns the order status after the transition.
func (h *History) OrderStatusTo() OrderStatus { return h.orderStatusTo }

// PaymentStatusFrom returns the payment status before the transition.
func (h *History) PaymentStatusFrom() PaymentStatus { return h.paymentStatusFrom }

// PaymentStatusTo returns the payment status after the transition.
func (h *History) PaymentStatusTo() PaymentStatus { return h.paymentStatusTo }

// DeliveryStatusFrom returns the delivery status before the transition.
func (h *History) DeliveryStatusFrom() DeliveryStatus { return h.deliveryStatusFrom }

// DeliveryStatusTo returns the delivery status after the transition.
func (h *History) DeliveryStatusTo() DeliveryStatus { return h.deliveryStatusTo }

// CreatedAt returns when the transition was recorded.
func (h *History) CreatedAt() time.Time { return h.createdAt }
