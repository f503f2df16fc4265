package kernel

import (
	"fmt"

	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, notifications and every party referenced by an order.
// It wraps github.com/google/uuid so the domain never handles the nil UUID by accident.
//
// Example:
//
//	orderID := kernel.NewUUID()
//
//	customerID, err := kernel.UUIDFromString(req.CustomerID)
//	if err != nil {
//	    return fmt.Errorf("customer_id: %w", err)
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn and hyphen-less forms.
// The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes creates a UUID from its 16-byte representation, as stored by the
// postgres adapters.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying google UUID, used by DTOs and SQL parameters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both identifiers hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
