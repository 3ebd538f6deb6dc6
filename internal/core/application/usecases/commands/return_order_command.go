package commands

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var (
	ErrReturnOrderCommandIsNotConstructed = errors.New(
		"ReturnOrderCommand must be created via NewReturnOrderCommand constructor",
	)
	// ErrReturnReasonIsRequired rejects registering a return without a reason.
	ErrReturnReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// ReturnOrderCommand represents a completed order coming back. The refund
// flag also moves a paid payment to refunded.
type ReturnOrderCommand struct { //nolint:recvcheck //using for validation
	orderScope
	reason string
	refund bool

	guard guard.ConstructorGuard
}

// NewReturnOrderCommand creates a command to register a return.
func NewReturnOrderCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID, reason string, refund bool) (ReturnOrderCommand, error) {
	cmd := ReturnOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return ReturnOrderCommand{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ReturnOrderCommand{}, ErrReturnReasonIsRequired
	}
	cmd.reason = reason
	cmd.refund = refund

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnOrderCommand) Validate() error {
	return c.guard.Validate(ErrReturnOrderCommandIsNotConstructed)
}

// Reason returns why the order is coming back.
func (c ReturnOrderCommand) Reason() string {
	return c.reason
}

// Refund reports whether the payment should move to refunded as well.
func (c ReturnOrderCommand) Refund() bool {
	return c.refund
}
