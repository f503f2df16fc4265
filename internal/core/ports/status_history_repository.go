package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// StatusHistoryRepository is the append-only audit log of order transitions.
type StatusHistoryRepository interface {
	Append(ctx context.Context, entry order.StatusHistoryEntry) error

	// ListByOrder returns entries in the order they were committed.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.StatusHistoryEntry, error)
}
