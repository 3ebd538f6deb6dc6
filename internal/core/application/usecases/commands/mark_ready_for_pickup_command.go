package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/guard"
)

var ErrMarkReadyForPickupCommandIsNotConstructed = errors.New(
	"MarkReadyForPickupCommand must be created via NewMarkReadyForPickupCommand constructor",
)

// MarkReadyForPickupCommand represents a pickup order becoming available at
// the counter. The handler generates the pickup code and starts the expiry
// window; re-running the command while the order is still waiting changes
// nothing and notifies nobody.
type MarkReadyForPickupCommand struct { //nolint:recvcheck //using for validation
	orderScope

	guard guard.ConstructorGuard
}

// NewMarkReadyForPickupCommand creates a command to announce a pickup order.
func NewMarkReadyForPickupCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID) (MarkReadyForPickupCommand, error) {
	cmd := MarkReadyForPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return MarkReadyForPickupCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyForPickupCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyForPickupCommandIsNotConstructed)
}
