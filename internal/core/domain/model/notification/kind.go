// Package notification holds the immutable event payloads produced by order
// transitions: the event kind vocabulary, the frozen Snapshot handed to the
// dispatch queue, and the append-only delivery log.
package notification

import (
	"fmt"

	"flowlog/internal/pkg/errs"
)

// EventKind identifies one kind of lifecycle notification. Kinds are stable
// string values because they are persisted in history rows, dispatch jobs,
// and notification logs, and are matched against tenant toggles.
type EventKind string

const (
	KindOrderCreated    EventKind = "order_created"
	KindOrderConfirmed  EventKind = "order_confirmed"
	KindPaymentReceived EventKind = "payment_received"
	KindPaymentRefunded EventKind = "payment_refunded"
	KindPaymentFailed   EventKind = "payment_failed"
	KindOrderShipped    EventKind = "order_shipped"
	KindOutForDelivery  EventKind = "out_for_delivery"
	KindOrderDelivered  EventKind = "order_delivered"
	KindDeliveryFailed  EventKind = "delivery_failed"
	KindReadyForPickup  EventKind = "ready_for_pickup"
	KindPickedUp        EventKind = "picked_up"
	KindOrderExpired    EventKind = "order_expired"
	KindOrderCancelled  EventKind = "order_cancelled"
	KindOrderReturned   EventKind = "order_returned"
)

func getEventKinds() map[EventKind]bool {
	return map[EventKind]bool{
		KindOrderCreated:    true,
		KindOrderConfirmed:  true,
		KindPaymentReceived: true,
		KindPaymentRefunded: true,
		KindPaymentFailed:   true,
		KindOrderShipped:    true,
		KindOutForDelivery:  true,
		KindOrderDelivered:  true,
		KindDeliveryFailed:  true,
		KindReadyForPickup:  true,
		KindPickedUp:        true,
		KindOrderExpired:    true,
		KindOrderCancelled:  true,
		KindOrderReturned:   true,
	}
}

// Validate checks that the kind is part of the closed vocabulary.
func (k EventKind) Validate() error {
	if !getEventKinds()[k] {
		return errs.NewValueIsInvalidErrorWithCause("event kind",
			fmt.Errorf("%q is not a valid event kind", string(k)))
	}
	return nil
}

// String returns the persisted wire value.
func (k EventKind) String() string {
	return string(k)
}
