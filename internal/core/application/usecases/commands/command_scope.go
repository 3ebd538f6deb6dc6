package commands

import (
	"errors"

	"flowlog/internal/core/domain/model/kernel"
)

// orderScope carries the addressing every single-order command shares: the
// tenant the caller claims, the target order and the acting user. Commands
// embed it and validate it through setScope in their constructors.
type orderScope struct {
	tenantID kernel.UUID
	orderID  kernel.UUID
	actorID  *kernel.UUID
}

func (s *orderScope) setScope(tenantID, orderID kernel.UUID, actorID *kernel.UUID) error {
	if err := errors.Join(tenantID.Validate(), orderID.Validate()); err != nil {
		return err
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return err
		}
	}
	s.tenantID = tenantID
	s.orderID = orderID
	s.actorID = actorID
	return nil
}

// TenantID returns the tenant the command is scoped to.
func (s orderScope) TenantID() kernel.UUID { return s.tenantID }

// OrderID returns the target order.
func (s orderScope) OrderID() kernel.UUID { return s.orderID }

// ActorID returns the acting user, nil for system-triggered commands.
func (s orderScope) ActorID() *kernel.UUID { return s.actorID }
