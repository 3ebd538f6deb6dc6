package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// CancelOrderCommandHandler handles order cancellation.
type CancelOrderCommandHandler struct {
	executor transitionExecutor
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle cancels the order. Completed and returned orders are rejected;
// cancelling an already-cancelled order succeeds silently.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, now time.Time) (*order.Transition, error) {
			return o.Cancel(cmd.Reason(), cmd.Refunded(), now)
		})
}
