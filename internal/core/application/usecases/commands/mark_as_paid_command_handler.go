package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// MarkAsPaidCommandHandler settles payments manually.
type MarkAsPaidCommandHandler struct {
	executor transitionExecutor
}

// NewMarkAsPaidCommandHandler creates a handler for manual payment settlement.
func NewMarkAsPaidCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) MarkAsPaidCommandHandler {
	return MarkAsPaidCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the mark-as-paid command.
func (h *MarkAsPaidCommandHandler) Handle(ctx context.Context, cmd MarkAsPaidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, tn *tenant.Tenant, _ time.Time) (*order.Transition, error) {
			return o.MarkPaid(completionPolicy(tn))
		})
}
