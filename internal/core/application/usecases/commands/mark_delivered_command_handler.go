package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// MarkDeliveredCommandHandler records successful handovers. Whether the
// order also completes depends on the tenant's completion policy.
type MarkDeliveredCommandHandler struct {
	executor transitionExecutor
}

// NewMarkDeliveredCommandHandler creates a handler for delivery confirmation.
func NewMarkDeliveredCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the delivered command.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, tn *tenant.Tenant, now time.Time) (*order.Transition, error) {
			return o.MarkDelivered(completionPolicy(tn), now)
		})
}
