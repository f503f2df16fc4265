// Package ports defines the contracts between the order domain and the infrastructure
// it runs on: persistence through a unit of work, recipient lookup and push delivery.
package ports

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// ErrConcurrentModification is returned by OrderRepository.UpdateStatus when the stored
// status no longer matches the expected one, i.e. another transition committed first.
var ErrConcurrentModification = fmt.Errorf("%w: order status was changed concurrently", errs.ErrConflict)

// OrderRepository persists Order aggregates together with their line items.
type OrderRepository interface {
	// Add inserts the order row and all of its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get loads an order with its line items. Unknown ids yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus writes the order's current status and courier only if the stored
	// status still equals expected. Otherwise it returns ErrConcurrentModification
	// and writes nothing.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// ListStale returns orders in the given status created strictly before the cutoff,
	// oldest first.
	ListStale(ctx context.Context, status order.Status, createdBefore time.Time) ([]*order.Order, error)
}
