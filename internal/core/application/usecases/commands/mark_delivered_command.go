package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand represents a successful handover of a shipment-based order.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderScope

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to record a delivery.
func NewMarkDeliveredCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}
