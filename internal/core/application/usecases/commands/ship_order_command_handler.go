package commands

import (
	"context"
	"time"

	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/core/domain/model/tenant"
	"flowlog/internal/core/ports"
)

// ShipOrderCommandHandler handles the business logic for dispatching orders.
type ShipOrderCommandHandler struct {
	executor transitionExecutor
}

// NewShipOrderCommandHandler creates a handler for order shipping.
func NewShipOrderCommandHandler(uowFactory LifecycleUoWFactory, queue ports.DispatchQueue) ShipOrderCommandHandler {
	return ShipOrderCommandHandler{
		executor: newTransitionExecutor(uowFactory, queue, nil),
	}
}

// Handle ships the order: pickup orders are rejected with an
// invalid-delivery-type error, pending orders auto-confirm, and the shipped
// notification carries the tracking code.
func (h *ShipOrderCommandHandler) Handle(ctx context.Context, cmd ShipOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.executor.execute(ctx, cmd.TenantID(), cmd.OrderID(), cmd.ActorID(),
		func(o *order.Order, _ *tenant.Tenant, now time.Time) (*order.Transition, error) {
			return o.Ship(cmd.TrackingCode(), now)
		})
}
