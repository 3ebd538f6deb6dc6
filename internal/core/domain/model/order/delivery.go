package order

import (
	"fmt"

	"flowlog/internal/pkg/errs"
)

// DeliveryType classifies how an order reaches the customer. It splits the
// delivery state machine in two: pickup orders move through the pickup-only
// statuses, every other type moves through the shipment statuses.
type DeliveryType int

const (
	// DeliveryTypeUnknown represents an invalid or undefined type.
	DeliveryTypeUnknown DeliveryType = iota

	// DeliveryTypePickup is collection at the store. No address, no tracking;
	// a 4-digit pickup code is issued when the order becomes ready.
	DeliveryTypePickup

	// DeliveryTypeMotoboy is local courier delivery. Address required,
	// tracking code required before shipping.
	DeliveryTypeMotoboy

	// DeliveryTypeSedex is express carrier shipping. Address and tracking
	// code required.
	DeliveryTypeSedex

	// DeliveryTypePac is standard carrier shipping. Address and tracking
	// code required.
	DeliveryTypePac
)

func getDeliveryTypeStrings() map[DeliveryType]string {
	return map[DeliveryType]string{
		DeliveryTypeUnknown: "Unknown",
		DeliveryTypePickup:  "Pickup",
		DeliveryTypeMotoboy: "Motoboy",
		DeliveryTypeSedex:   "SEDEX",
		DeliveryTypePac:     "PAC",
	}
}

// Validate checks that the value is one of the defined types.
func (t DeliveryType) Validate() error {
	if t == DeliveryTypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%d is not a valid delivery type", t))
	}
	if _, ok := getDeliveryTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery type",
			fmt.Errorf("%d is not a valid delivery type", t))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (t DeliveryType) String() string {
	if str, ok := getDeliveryTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// IsPickup reports whether the order is collected at the store.
func (t DeliveryType) IsPickup() bool {
	return t == DeliveryTypePickup
}

// RequiresAddress reports whether a delivery address must be present.
// Only pickup orders go without one.
func (t DeliveryType) RequiresAddress() bool {
	return t != DeliveryTypePickup
}

// DeliveryStatus represents the fulfillment dimension of an order. The legal
// value set depends on the order's DeliveryType: pickup orders and shipment
// orders use mutually exclusive subsets (plus the shared Pending).
type DeliveryStatus int

const (
	// DeliveryStatusUnknown represents an invalid or undefined status.
	DeliveryStatusUnknown DeliveryStatus = iota

	// DeliveryStatusPending is the initial status for every delivery type.
	DeliveryStatusPending

	// DeliveryStatusReadyForPickup means a pickup order awaits collection.
	// Pickup only. Sets the pickup code and the expiry deadline.
	DeliveryStatusReadyForPickup

	// DeliveryStatusShipped means the order left with the carrier or courier.
	// Shipment only.
	DeliveryStatusShipped

	// DeliveryStatusOutForDelivery means the carrier reported the package on
	// its final leg. Shipment only.
	DeliveryStatusOutForDelivery

	// DeliveryStatusDelivered is the terminal success status for shipments.
	DeliveryStatusDelivered

	// DeliveryStatusPickedUp is the terminal success status for pickups.
	DeliveryStatusPickedUp

	// DeliveryStatusFailedAttempt means a delivery attempt failed; the order
	// can be re-shipped or still delivered. Shipment only, non-terminal.
	DeliveryStatusFailedAttempt

	// DeliveryStatusExpired means a pickup order was not collected before its
	// deadline. Pickup only, terminal.
	DeliveryStatusExpired
)

func getDeliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryStatusUnknown:        "Unknown",
		DeliveryStatusPending:        "Pending",
		DeliveryStatusReadyForPickup: "ReadyForPickup",
		DeliveryStatusShipped:        "Shipped",
		DeliveryStatusOutForDelivery: "OutForDelivery",
		DeliveryStatusDelivered:      "Delivered",
		DeliveryStatusPickedUp:       "PickedUp",
		DeliveryStatusFailedAttempt:  "FailedAttempt",
		DeliveryStatusExpired:        "Expired",
	}
}

// Validate checks that the value is one of the defined statuses.
func (s DeliveryStatus) Validate() error {
	if s == DeliveryStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	if _, ok := getDeliveryStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s DeliveryStatus) String() string {
	if str, ok := getDeliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// legalDeliveryStatuses maps each delivery type to the statuses an order of
// that type may occupy. Pickup-only and shipment-only values never mix.
var legalDeliveryStatuses = map[DeliveryType]map[DeliveryStatus]bool{
	DeliveryTypePickup: {
		DeliveryStatusPending:        true,
		DeliveryStatusReadyForPickup: true,
		DeliveryStatusPickedUp:       true,
		DeliveryStatusExpired:        true,
	},
	DeliveryTypeMotoboy: shipmentStatuses(),
	DeliveryTypeSedex:   shipmentStatuses(),
	DeliveryTypePac:     shipmentStatuses(),
}

func shipmentStatuses() map[DeliveryStatus]bool {
	return map[DeliveryStatus]bool{
		DeliveryStatusPending:        true,
		DeliveryStatusShipped:        true,
		DeliveryStatusOutForDelivery: true,
		DeliveryStatusDelivered:      true,
		DeliveryStatusFailedAttempt:  true,
	}
}

// IsLegalFor reports whether the status belongs to the legal subset for the
// given delivery type.
func (s DeliveryStatus) IsLegalFor(t DeliveryType) bool {
	statuses, ok := legalDeliveryStatuses[t]
	if !ok {
		return false
	}
	return statuses[s]
}

// deliveryOp names a fulfillment operation in the transition table. The
// table, not the callers, decides which source statuses each operation
// accepts; handlers never branch on raw status values.
type deliveryOp string

const (
	opShip           deliveryOp = "ship"
	opOutForDelivery deliveryOp = "mark out for delivery"
	opDeliver        deliveryOp = "mark delivered"
	opReadyForPickup deliveryOp = "mark ready for pickup"
	opPickUp         deliveryOp = "mark picked up"
	opFailAttempt    deliveryOp = "mark failed attempt"
	opExpire         deliveryOp = "expire"
)

// deliveryTransition declares one row of the transition table: which delivery
// types may perform the operation, which source statuses are accepted, and
// the resulting status.
type deliveryTransition struct {
	pickupOnly   bool
	shipmentOnly bool
	sources      map[DeliveryStatus]bool
	target       DeliveryStatus
}

var deliveryTransitions = map[deliveryOp]deliveryTransition{
	opShip: {
		shipmentOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusPending:       true,
			DeliveryStatusFailedAttempt: true,
		},
		target: DeliveryStatusShipped,
	},
	opOutForDelivery: {
		shipmentOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusShipped: true,
		},
		target: DeliveryStatusOutForDelivery,
	},
	opDeliver: {
		shipmentOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusShipped:        true,
			DeliveryStatusOutForDelivery: true,
			DeliveryStatusFailedAttempt:  true,
		},
		target: DeliveryStatusDelivered,
	},
	opReadyForPickup: {
		pickupOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusPending: true,
		},
		target: DeliveryStatusReadyForPickup,
	},
	opPickUp: {
		pickupOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusReadyForPickup: true,
		},
		target: DeliveryStatusPickedUp,
	},
	opFailAttempt: {
		shipmentOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusShipped:        true,
			DeliveryStatusOutForDelivery: true,
		},
		target: DeliveryStatusFailedAttempt,
	},
	opExpire: {
		pickupOnly: true,
		sources: map[DeliveryStatus]bool{
			DeliveryStatusReadyForPickup: true,
		},
		target: DeliveryStatusExpired,
	},
}

// nextDeliveryStatus resolves an operation against the transition table.
// Returns the target status, or InvalidDeliveryType when the operation is
// incompatible with the delivery type, or InvalidTransition when the current
// status is not an accepted source.
func nextDeliveryStatus(op deliveryOp, t DeliveryType, current DeliveryStatus) (DeliveryStatus, error) {
	tr, ok := deliveryTransitions[op]
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause("delivery operation",
			fmt.Errorf("%s is not a known operation", op))
	}

	if tr.pickupOnly && !t.IsPickup() {
		return 0, errs.NewInvalidDeliveryTypeError(string(op), t.String())
	}
	if tr.shipmentOnly && t.IsPickup() {
		return 0, errs.NewInvalidDeliveryTypeError(string(op), t.String())
	}

	if !tr.sources[current] {
		return 0, errs.NewInvalidTransitionError(string(op), current.String())
	}

	return tr.target, nil
}
