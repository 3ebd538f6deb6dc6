package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the order-lifecycle taxonomy. Handlers and adapters
// classify failures with errors.Is against these values.
var (
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrInvalidDeliveryType = errors.New("invalid delivery type")
	ErrTenantMismatch      = errors.New("tenant mismatch")
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrBusy                = errors.New("resource is busy")
	ErrDeliveryFailed      = errors.New("delivery failed")
)

// InvalidTransitionError indicates a state-machine violation: the requested
// operation is not legal from the order's current status. Never retried.
type InvalidTransitionError struct {
	Operation string
	From      string
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given
// operation attempted from the given state.
func NewInvalidTransitionError(operation, from string) *InvalidTransitionError {
	return &InvalidTransitionError{Operation: operation, From: from}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidTransition, e.Operation, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidDeliveryTypeError indicates an operation incompatible with the
// order's delivery type, e.g. shipping a pickup order.
type InvalidDeliveryTypeError struct {
	Operation    string
	DeliveryType string
}

// NewInvalidDeliveryTypeError creates an InvalidDeliveryTypeError for the
// given operation and delivery type.
func NewInvalidDeliveryTypeError(operation, deliveryType string) *InvalidDeliveryTypeError {
	return &InvalidDeliveryTypeError{Operation: operation, DeliveryType: deliveryType}
}

func (e *InvalidDeliveryTypeError) Error() string {
	return fmt.Sprintf("%s: %s does not allow %s", ErrInvalidDeliveryType, e.DeliveryType, e.Operation)
}

func (e *InvalidDeliveryTypeError) Unwrap() error {
	return ErrInvalidDeliveryType
}

// TenantMismatchError indicates a cross-tenant access attempt. These are
// treated as hard failures and never retried.
type TenantMismatchError struct {
	ParamName string
	TenantID  string
}

// NewTenantMismatchError creates a TenantMismatchError for the named resource
// and the tenant that attempted access.
func NewTenantMismatchError(paramName, tenantID string) *TenantMismatchError {
	return &TenantMismatchError{ParamName: paramName, TenantID: tenantID}
}

func (e *TenantMismatchError) Error() string {
	return fmt.Sprintf("%s: %s does not belong to tenant %s", ErrTenantMismatch, e.ParamName, e.TenantID)
}

func (e *TenantMismatchError) Unwrap() error {
	return ErrTenantMismatch
}

// InvalidSignatureError indicates a webhook whose HMAC signature failed
// verification. The payload is discarded without side effects.
type InvalidSignatureError struct {
	Reason string
}

// NewInvalidSignatureError creates an InvalidSignatureError with a short
// reason suitable for logging (never echoes the signature itself).
func NewInvalidSignatureError(reason string) *InvalidSignatureError {
	return &InvalidSignatureError{Reason: reason}
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidSignature, e.Reason)
}

func (e *InvalidSignatureError) Unwrap() error {
	return ErrInvalidSignature
}

// BusyError indicates that the per-order row lock could not be acquired
// within the configured wait. Safe for the caller to retry.
type BusyError struct {
	ParamName string
	Cause     error
}

// NewBusyErrorWithCause creates a BusyError wrapping the lock-timeout error
// reported by the database.
func NewBusyErrorWithCause(paramName string, cause error) *BusyError {
	return &BusyError{ParamName: paramName, Cause: cause}
}

func (e *BusyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrBusy, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrBusy, e.ParamName)
}

func (e *BusyError) Unwrap() error {
	return ErrBusy
}

// DeliveryFailedError indicates a notification that exhausted its retry
// budget. It never affects the order transition that produced the event.
type DeliveryFailedError struct {
	EventKind string
	Attempts  int
	Cause     error
}

// NewDeliveryFailedError creates a DeliveryFailedError after the final
// delivery attempt.
func NewDeliveryFailedError(eventKind string, attempts int, cause error) *DeliveryFailedError {
	return &DeliveryFailedError{EventKind: eventKind, Attempts: attempts, Cause: cause}
}

func (e *DeliveryFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s after %d attempts (cause: %s)", ErrDeliveryFailed, e.EventKind, e.Attempts, e.Cause)
	}
	return fmt.Sprintf("%s: %s after %d attempts", ErrDeliveryFailed, e.EventKind, e.Attempts)
}

func (e *DeliveryFailedError) Unwrap() error {
	return ErrDeliveryFailed
}
