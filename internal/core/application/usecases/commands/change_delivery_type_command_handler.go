package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// ChangeDeliveryTypeCommandHandler switches the delivery type of pending
// orders. The change is audited but produces no customer notification.
type ChangeDeliveryTypeCommandHandler struct {
	executor transitionExecutor
}

// NewChangeDeliveryTypeCommandHandler creates a handler for delivery type changes.
func NewChangeDeliveryTypeCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) ChangeDeliveryTypeCommandHandler {
	return ChangeDeliveryTypeCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the delivery type change.
func (h *ChangeDeliveryTypeCommandHandler) Handle(ctx context.Context, cmd ChangeDeliveryTypeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, _ time.Time) (*order.Transition, error) {
			return o.ChangeDeliveryType(cmd.NewType(), cmd.DeliveryAddress())
		})
}
