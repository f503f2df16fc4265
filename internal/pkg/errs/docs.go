// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside of its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConflictError: For when a write loses against a concurrent change
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works across layers
//
// The inbound HTTP adapter relies on the sentinels to build client messages,
// so new error kinds should follow the same shape.
package errs
