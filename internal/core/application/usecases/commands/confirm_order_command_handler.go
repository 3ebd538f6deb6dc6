package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// ConfirmOrderCommandHandler handles the business logic for order confirmation.
type ConfirmOrderCommandHandler struct {
	executor transitionExecutor
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle confirms the order under its row lock and announces the
// confirmation. Re-entry on an already-confirmed order is a silent no-op.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, _ time.Time) (*order.Transition, error) {
			return o.Confirm()
		})
}
