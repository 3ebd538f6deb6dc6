package commands

import (
	"context"
	"fmt"
	"time"

	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/services"
	"flowlog/internal/core/ports"
	"flowlog/internal/pkg/errs"
)

// ResendNotificationCommandHandler rebuilds the message for an event kind
// from the order's current state and puts it back on the dispatch queue. It
// writes nothing: the new snapshot gets its own job and its own log rows.
type ResendNotificationCommandHandler struct {
	uowFactory LifecycleUoWFactory
	queue      ports.DispatchQueue
	builder    services.SnapshotBuilder
	now        func() time.Time
}

// NewResendNotificationCommandHandler creates a handler for manual resends.
func NewResendNotificationCommandHandler(
	uowFactory LifecycleUoWFactory,
	queue ports.DispatchQueue,
) ResendNotificationCommandHandler {
	return ResendNotificationCommandHandler{
		uowFactory: uowFactory,
		queue:      queue,
		builder:    services.NewSnapshotBuilder(),
		now:        time.Now,
	}
}

// Handle freezes a fresh snapshot for the requested kind and enqueues it.
func (h *ResendNotificationCommandHandler) Handle(ctx context.Context, cmd ResendNotificationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tn, err := uow.TenantRepository().Get(ctx, cmd.TenantID())
	if err != nil {
		return err
	}
	if err = tn.EnsureActive(); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.TenantID(), cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.EnsureTenant(cmd.TenantID()); err != nil {
		return err
	}
	if err = ensureResendAllowed(o, cmd.Kind()); err != nil {
		return err
	}

	c, err := uow.CustomerRepository().Get(ctx, cmd.TenantID(), o.CustomerID())
	if err != nil {
		return err
	}

	snapshot, err := h.builder.Build(cmd.Kind(), o, c, tn, now)
	if err != nil {
		return err
	}

	result := h.queue.Enqueue(ctx, snapshot)
	if !result.Enqueued() {
		// the resend exists only to enqueue, so a degraded queue is a
		// failure here even though lifecycle commands shrug it off
		return fmt.Errorf("resend not enqueued: %s", result.Reason)
	}
	return nil
}

// ensureResendAllowed rejects re-sending lifecycle messages for an order
// whose commercial life already ended: a cancelled order may only re-notify
// its cancellation (or the expiry notice when the pickup sweep cancelled
// it), a returned order only its return or the refund.
func ensureResendAllowed(o *order.Order, kind notification.EventKind) error {
	switch o.Status() {
	case order.OrderStatusCancelled:
		if kind == notification.KindOrderCancelled || kind == notification.KindOrderExpired {
			return nil
		}
	case order.OrderStatusReturned:
		if kind == notification.KindOrderReturned || kind == notification.KindPaymentRefunded {
			return nil
		}
	default:
		return nil
	}
	return errs.NewInvalidTransitionError("resend "+string(kind), o.Status().String())
}
