package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/guard"
)

var ErrMarkOutForDeliveryCommandIsNotConstructed = errors.New(
	"MarkOutForDeliveryCommand must be created via NewMarkOutForDeliveryCommand constructor",
)

// MarkOutForDeliveryCommand represents the carrier handing a shipped order
// to the last-mile courier.
type MarkOutForDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderScope

	guard guard.ConstructorGuard
}

// NewMarkOutForDeliveryCommand creates a command to mark an order out for delivery.
func NewMarkOutForDeliveryCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID) (MarkOutForDeliveryCommand, error) {
	cmd := MarkOutForDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return MarkOutForDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOutForDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrMarkOutForDeliveryCommandIsNotConstructed)
}
