package order

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// StatusHistoryEntry is the audit record of one transition, the initial placement included.
// Entries are never mutated or deleted.
type StatusHistoryEntry struct {
	orderID   kernel.UUID
	status    Status
	actor     Actor
	changedAt time.Time
}

func NewStatusHistoryEntry(orderID kernel.UUID, status Status, actor Actor, changedAt time.Time) (StatusHistoryEntry, error) {
	if err := errors.Join(orderID.Validate(), status.Validate(), actor.Validate()); err != nil {
		return StatusHistoryEntry{}, err
	}
	if changedAt.IsZero() {
		return StatusHistoryEntry{}, errs.NewValueIsRequiredError("changed_at")
	}
	return StatusHistoryEntry{orderID: orderID, status: status, actor: actor, changedAt: changedAt.UTC()}, nil
}

func (e StatusHistoryEntry) OrderID() kernel.UUID { return e.orderID }
func (e StatusHistoryEntry) Status() Status       { return e.status }
func (e StatusHistoryEntry) Actor() Actor         { return e.actor }
func (e StatusHistoryEntry) ChangedAt() time.Time { return e.changedAt }

// Validate rejects the zero entry.
func (e StatusHistoryEntry) Validate() error {
	if e.changedAt.IsZero() {
		return errs.NewValueIsRequiredError("status_history_entry")
	}
	return nil
}
