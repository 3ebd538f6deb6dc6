// Package kernel contains shared value objects used across the domain model:
// UUID identifiers, normalized phone numbers, and monetary amounts.
//
// All kernel types are immutable value objects constructed through factory
// functions that enforce their invariants. Zero values are invalid and are
// detected by Validate().
package kernel
