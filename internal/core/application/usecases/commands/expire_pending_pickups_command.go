package commands

import (
	"errors"

	"flowlog/internal/pkg/guard"
)

var ErrExpirePendingPickupsCommandIsNotConstructed = errors.New(
	"ExpirePendingPickupsCommand must be created via NewExpirePendingPickupsCommand constructor",
)

// ExpirePendingPickupsCommand represents a sweep over all tenants for pickup
// orders whose collection window has elapsed. Issued by the scheduler, so it
// carries no tenant or actor.
type ExpirePendingPickupsCommand struct { //nolint:recvcheck //using for validation
	limit int

	guard guard.ConstructorGuard
}

// NewExpirePendingPickupsCommand creates a sweep command. A non-positive
// limit means no cap on the number of orders expired in one run.
func NewExpirePendingPickupsCommand(limit int) (ExpirePendingPickupsCommand, error) {
	cmd := ExpirePendingPickupsCommand{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ExpirePendingPickupsCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingPickupsCommandIsNotConstructed)
}

// Limit returns the maximum number of orders one sweep may expire.
func (c ExpirePendingPickupsCommand) Limit() int {
	return c.limit
}
