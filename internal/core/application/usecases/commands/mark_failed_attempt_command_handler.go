package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// MarkFailedAttemptCommandHandler records failed delivery attempts.
type MarkFailedAttemptCommandHandler struct {
	executor transitionExecutor
}

// NewMarkFailedAttemptCommandHandler creates a handler for failed attempts.
func NewMarkFailedAttemptCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) MarkFailedAttemptCommandHandler {
	return MarkFailedAttemptCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the failed-attempt command.
func (h *MarkFailedAttemptCommandHandler) Handle(ctx context.Context, cmd MarkFailedAttemptCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, _ time.Time) (*order.Transition, error) {
			return o.MarkFailedAttempt(cmd.Reason())
		})
}
