// Package guard provides the constructor guard embedded by commands, queries and
// value objects that must only be obtained through their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. The zero value is
// "not constructed", so a struct literal that skips the constructor fails Validate.
//
// Example:
//
//	var ErrCancelCommandIsNotConstructed = errors.New("CancelCommand must be created via NewCancelCommand")
//
//	type CancelCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c CancelCommand) Validate() error {
//	    return c.guard.Validate(ErrCancelCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guarded object was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
