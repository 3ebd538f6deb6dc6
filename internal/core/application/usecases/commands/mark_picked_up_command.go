package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/guard"
)

var ErrMarkPickedUpCommandIsNotConstructed = errors.New(
	"MarkPickedUpCommand must be created via NewMarkPickedUpCommand constructor",
)

// MarkPickedUpCommand represents a customer collecting a pickup order.
type MarkPickedUpCommand struct { //nolint:recvcheck //using for validation
	orderScope

	guard guard.ConstructorGuard
}

// NewMarkPickedUpCommand creates a command to record a pickup.
func NewMarkPickedUpCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID) (MarkPickedUpCommand, error) {
	cmd := MarkPickedUpCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return MarkPickedUpCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkPickedUpCommand) Validate() error {
	return c.guard.Validate(ErrMarkPickedUpCommandIsNotConstructed)
}
