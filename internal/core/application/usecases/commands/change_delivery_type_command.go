package commands

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/order"
	"flowlog/internal/pkg/guard"
)

var ErrChangeDeliveryTypeCommandIsNotConstructed = errors.New(
	"ChangeDeliveryTypeCommand must be created via NewChangeDeliveryTypeCommand constructor",
)

// ChangeDeliveryTypeCommand represents switching how a still-pending order
// will reach the customer. Address rules of the new type apply; the domain
// re-validates them on the locked aggregate.
type ChangeDeliveryTypeCommand struct { //nolint:recvcheck //using for validation
	orderScope
	newType         order.DeliveryType
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewChangeDeliveryTypeCommand creates a command to change an order's delivery type.
func NewChangeDeliveryTypeCommand(
	tenantID, orderID kernel.UUID,
	actorID *kernel.UUID,
	newType order.DeliveryType,
	deliveryAddress string,
) (ChangeDeliveryTypeCommand, error) {
	cmd := ChangeDeliveryTypeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return ChangeDeliveryTypeCommand{}, err
	}
	if err := newType.Validate(); err != nil {
		return ChangeDeliveryTypeCommand{}, err
	}
	cmd.newType = newType
	cmd.deliveryAddress = strings.TrimSpace(deliveryAddress)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeDeliveryTypeCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryTypeCommandIsNotConstructed)
}

// NewType returns the requested delivery type.
func (c ChangeDeliveryTypeCommand) NewType() order.DeliveryType {
	return c.newType
}

// DeliveryAddress returns the destination address for shipment types.
func (c ChangeDeliveryTypeCommand) DeliveryAddress() string {
	return c.deliveryAddress
}
