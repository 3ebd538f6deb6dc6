// Package errs provides standardized error types for the flowlog application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Two families of errors live here:
//
//   - Generic validation errors (ValueIsRequiredError, ValueIsInvalidError,
//     ObjectNotFoundError, ValueIsOutOfRangeError, VersionIsInvalidError)
//     used by value objects and repositories.
//
//   - The order-lifecycle taxonomy (InvalidTransitionError,
//     InvalidDeliveryTypeError, TenantMismatchError, InvalidSignatureError,
//     BusyError, DeliveryFailedError) surfaced by the lifecycle command
//     handlers and the webhook reconciler. InvalidTransition,
//     InvalidDeliveryType, and TenantMismatch are terminal and never retried;
//     Busy is safe for the caller to retry; DeliveryFailed is recorded and
//     never rolls back the order transition that produced it.
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() for formatting and Unwrap() returning the sentinel
package errs
