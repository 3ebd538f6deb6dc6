package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// MarkPickedUpCommandHandler records pickup collections. Racing against the
// expiry sweep is safe: both paths fight for the same row lock and whichever
// loses sees an invalid transition or a no-op.
type MarkPickedUpCommandHandler struct {
	executor transitionExecutor
}

// NewMarkPickedUpCommandHandler creates a handler for pickup collection.
func NewMarkPickedUpCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) MarkPickedUpCommandHandler {
	return MarkPickedUpCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the picked-up command.
func (h *MarkPickedUpCommandHandler) Handle(ctx context.Context, cmd MarkPickedUpCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, tn *tenant.Tenant, now time.Time) (*order.Transition, error) {
			return o.MarkPickedUp(completionPolicy(tn), now)
		})
}
