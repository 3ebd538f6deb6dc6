package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/guard"
)

var ErrMarkAsPaidCommandIsNotConstructed = errors.New(
	"MarkAsPaidCommand must be created via NewMarkAsPaidCommand constructor",
)

// MarkAsPaidCommand represents settling an order's payment. It is issued
// manually by operators; the payment webhook reconciler drives the same
// domain operation, so both paths converge on identical idempotency rules.
type MarkAsPaidCommand struct { //nolint:recvcheck //using for validation
	orderScope

	guard guard.ConstructorGuard
}

// NewMarkAsPaidCommand creates a command to mark an order paid.
func NewMarkAsPaidCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID) (MarkAsPaidCommand, error) {
	cmd := MarkAsPaidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return MarkAsPaidCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkAsPaidCommand) Validate() error {
	return c.guard.Validate(ErrMarkAsPaidCommandIsNotConstructed)
}
