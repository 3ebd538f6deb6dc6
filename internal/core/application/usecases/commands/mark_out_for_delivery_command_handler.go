package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// MarkOutForDeliveryCommandHandler moves shipped orders to out-for-delivery.
type MarkOutForDeliveryCommandHandler struct {
	executor transitionExecutor
}

// NewMarkOutForDeliveryCommandHandler creates a handler for the out-for-delivery step.
func NewMarkOutForDeliveryCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) MarkOutForDeliveryCommandHandler {
	return MarkOutForDeliveryCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle processes the out-for-delivery command.
func (h *MarkOutForDeliveryCommandHandler) Handle(ctx context.Context, cmd MarkOutForDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, _ time.Time) (*order.Transition, error) {
			return o.MarkOutForDelivery()
		})
}
