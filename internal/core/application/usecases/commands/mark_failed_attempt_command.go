package commands

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var (
	ErrMarkFailedAttemptCommandIsNotConstructed = errors.New(
		"MarkFailedAttemptCommand must be created via NewMarkFailedAttemptCommand constructor",
	)
	// ErrFailureReasonIsRequired rejects recording a failed attempt without
	// saying what went wrong; the reason goes into the customer notification.
	ErrFailureReasonIsRequired = errs.NewValueIsRequiredError("reason")
)

// MarkFailedAttemptCommand represents one failed delivery attempt reported
// by the carrier or courier.
type MarkFailedAttemptCommand struct { //nolint:recvcheck //using for validation
	orderScope
	reason string

	guard guard.ConstructorGuard
}

// NewMarkFailedAttemptCommand creates a command to record a failed attempt.
func NewMarkFailedAttemptCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID, reason string) (MarkFailedAttemptCommand, error) {
	cmd := MarkFailedAttemptCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return MarkFailedAttemptCommand{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return MarkFailedAttemptCommand{}, ErrFailureReasonIsRequired
	}
	cmd.reason = reason

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkFailedAttemptCommand) Validate() error {
	return c.guard.Validate(ErrMarkFailedAttemptCommandIsNotConstructed)
}

// Reason returns the carrier's failure description.
func (c MarkFailedAttemptCommand) Reason() string {
	return c.reason
}
