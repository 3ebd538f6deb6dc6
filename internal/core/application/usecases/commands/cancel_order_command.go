package commands

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
	// ErrCancelReasonIsRequired rejects cancelling without a reason; the
	// reason is rendered into the customer notification.
	ErrCancelReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// CancelOrderCommand represents a request to cancel a non-terminal order.
// The refunded flag records that the operator already returned the money
// through the payment gateway.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderScope
	reason   string
	refunded bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID, reason string, refunded bool) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return CancelOrderCommand{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return CancelOrderCommand{}, ErrCancelReasonIsRequired
	}
	cmd.reason = reason
	cmd.refunded = refunded

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// Reason returns why the order is being cancelled.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// Refunded reports whether a paid order's payment should move to refunded.
func (c CancelOrderCommand) Refunded() bool {
	return c.refunded
}
