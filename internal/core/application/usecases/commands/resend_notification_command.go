package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/pkg/guard"
)

var ErrResendNotificationCommandIsNotConstructed = errors.New(
	"ResendNotificationCommand must be created via NewResendNotificationCommand constructor",
)

// ResendNotificationCommand represents an operator's request to send a
// lifecycle message again. The message is frozen from the order's current
// state, not replayed from the original snapshot, so a corrected template or
// phone number takes effect.
type ResendNotificationCommand struct { //nolint:recvcheck //using for validation
	orderScope
	kind notification.EventKind

	guard guard.ConstructorGuard
}

// NewResendNotificationCommand creates a command to re-send the message for
// the given event kind.
func NewResendNotificationCommand(
	tenantID, orderID kernel.UUID,
	actorID *kernel.UUID,
	kind notification.EventKind,
) (ResendNotificationCommand, error) {
	cmd := ResendNotificationCommand{
		kind:  kind,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setScope(tenantID, orderID, actorID),
		kind.Validate(),
	); err != nil {
		return ResendNotificationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResendNotificationCommand) Validate() error {
	return c.guard.Validate(ErrResendNotificationCommandIsNotConstructed)
}

// Kind returns the event kind whose message should be sent again.
func (c ResendNotificationCommand) Kind() notification.EventKind {
	return c.kind
}
