package order

import (
	"fmt"

	"flowlog/internal/pkg/errs"
)

// OrderStatus represents the commercial lifecycle of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Completed ──> Returned
//	   │            │
//	   └────────────┴──────> Cancelled
//
// Cancelled and Returned are terminal; Returned is the only state reachable
// from Completed.
type OrderStatus int

const (
	// OrderStatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized OrderStatus values.
	OrderStatusUnknown OrderStatus = iota

	// OrderStatusPending is the initial status when an order is created.
	OrderStatusPending

	// OrderStatusConfirmed indicates the order was confirmed, either
	// explicitly or as a side effect of payment, shipping, or pickup release.
	OrderStatusConfirmed

	// OrderStatusCompleted indicates the commercial lifecycle finished
	// successfully. Reached only when the tenant's completion policy allows.
	OrderStatusCompleted

	// OrderStatusCancelled indicates the order was cancelled before
	// completion. Terminal.
	OrderStatusCancelled

	// OrderStatusReturned indicates a completed order was returned by the
	// customer. Terminal.
	OrderStatusReturned
)

func getOrderStatusStrings() map[OrderStatus]string {
	return map[OrderStatus]string{
		OrderStatusUnknown:   "Unknown",
		OrderStatusPending:   "Pending",
		OrderStatusConfirmed: "Confirmed",
		OrderStatusCompleted: "Completed",
		OrderStatusCancelled: "Cancelled",
		OrderStatusReturned:  "Returned",
	}
}

// Validate checks that the value is one of the defined statuses.
func (s OrderStatus) Validate() error {
	if s == OrderStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	if _, ok := getOrderStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid order status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s OrderStatus) String() string {
	if str, ok := getOrderStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusReturned
}

// PaymentStatus represents the payment dimension of an order, moved only by
// the mark-as-paid path, refunds, and payment-failure webhooks.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined status.
	PaymentStatusUnknown PaymentStatus = iota

	// PaymentStatusPending means no successful payment has been recorded.
	PaymentStatusPending

	// PaymentStatusPaid means a payment confirmation was recorded, either
	// manually or through the payment webhook.
	PaymentStatusPaid

	// PaymentStatusRefunded means a previously paid amount was returned to
	// the customer during cancellation or return.
	PaymentStatusRefunded

	// PaymentStatusFailed means the most recent payment attempt failed.
	// A later successful payment may still move the order to Paid.
	PaymentStatusFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown:  "Unknown",
		PaymentStatusPending:  "Pending",
		PaymentStatusPaid:     "Paid",
		PaymentStatusRefunded: "Refunded",
		PaymentStatusFailed:   "Failed",
	}
}

// Validate checks that the value is one of the defined statuses.
func (s PaymentStatus) Validate() error {
	if s == PaymentStatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String implements fmt.Stringer. Safe to call on any value.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
