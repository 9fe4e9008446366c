// Package guard provides the constructor guard shared by value objects, entities
// and command/query types that must only be created through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects zero-value instances of types that embed it.
// Only NewConstructorGuard produces a guard that validates.
//
// Example usage:
//
//	type Decision struct {
//	    accepted bool
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewDecision(accepted bool) Decision {
//	    return Decision{accepted: accepted, guard: guard.NewConstructorGuard()}
//	}
//
//	func (d Decision) Validate() error {
//	    return d.guard.Validate(ErrDecisionNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
