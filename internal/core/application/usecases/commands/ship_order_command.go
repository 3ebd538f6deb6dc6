package commands

import (
	"errors"
	"strings"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

var (
	ErrShipOrderCommandIsNotConstructed = errors.New(
		"ShipOrderCommand must be created via NewShipOrderCommand constructor",
	)
	// ErrTrackingCodeIsRequired rejects shipping without a carrier tracking
	// code; every shipment type requires one, including motoboy runs.
	ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("trackingCode")
)

// ShipOrderCommand represents a request to dispatch a shipment-based order
// with its carrier tracking code.
type ShipOrderCommand struct { //nolint:recvcheck //using for validation
	orderScope
	trackingCode string

	guard guard.ConstructorGuard
}

// NewShipOrderCommand creates a command to ship an order. The tracking code
// must be non-empty after trimming.
func NewShipOrderCommand(tenantID, orderID kernel.UUID, actorID *kernel.UUID, trackingCode string) (ShipOrderCommand, error) {
	cmd := ShipOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setScope(tenantID, orderID, actorID); err != nil {
		return ShipOrderCommand{}, err
	}

	trackingCode = strings.TrimSpace(trackingCode)
	if trackingCode == "" {
		return ShipOrderCommand{}, ErrTrackingCodeIsRequired
	}
	cmd.trackingCode = trackingCode

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ShipOrderCommand) Validate() error {
	return c.guard.Validate(ErrShipOrderCommandIsNotConstructed)
}

// TrackingCode returns the carrier tracking code.
func (c ShipOrderCommand) TrackingCode() string {
	return c.trackingCode
}
