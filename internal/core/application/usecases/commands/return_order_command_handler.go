package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// ReturnOrderCommandHandler registers returns of completed orders. When the
// refund flag flips the payment to refunded, the customer gets both the
// return and the refund notifications.
type ReturnOrderCommandHandler struct {
	executor transitionExecutor
}

// NewReturnOrderCommandHandler creates a handler for order returns.
func NewReturnOrderCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) ReturnOrderCommandHandler {
	return ReturnOrderCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the return command.
func (h *ReturnOrderCommandHandler) Handle(ctx context.Context, cmd ReturnOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, now time.Time) (*order.Transition, error) {
			return o.ReturnOrder(cmd.Reason(), cmd.Refund(), now)
		})
}
