// Package guard provides the constructor-guard pattern used by commands and
// domain objects to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is passed
// as the validation error, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects, entities, and commands are only
// created through their designated constructor functions. Embedding a guard in
// a struct makes zero-value instances detectable: the internal flag is only set
// when the object passes through its constructor.
//
// Example usage:
//
//	var ErrPhoneNotConstructed = errors.New("Phone must be created via NewPhone")
//
//	type Phone struct {
//	    digits string
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewPhone(raw string) (Phone, error) {
//	    digits := normalize(raw)
//	    if digits == "" {
//	        return Phone{}, errors.New("phone is required")
//	    }
//	    return Phone{digits: digits, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (p Phone) Validate() error {
//	    return p.guard.Validate(ErrPhoneNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects, validationError for
// zero values, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
