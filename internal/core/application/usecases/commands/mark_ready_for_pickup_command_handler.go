package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// MarkReadyForPickupCommandHandler announces pickup orders waiting at the store.
type MarkReadyForPickupCommandHandler struct {
	executor transitionExecutor
}

// NewMarkReadyForPickupCommandHandler creates a handler for the ready-for-pickup step.
func NewMarkReadyForPickupCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) MarkReadyForPickupCommandHandler {
	return MarkReadyForPickupCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle marks the order ready for pickup with the tenant's configured
// expiry window. The generated 4-digit code travels in the notification.
func (h *MarkReadyForPickupCommandHandler) Handle(ctx context.Context, cmd MarkReadyForPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, tn *tenant.Tenant, now time.Time) (*order.Transition, error) {
			return o.MarkReadyForPickup(now, tn.Settings().PickupWindow())
		})
}
