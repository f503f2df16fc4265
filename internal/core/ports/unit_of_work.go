package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command so concurrent requests never
// share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained from it use the
// transaction opened by Begin, or the plain connection when none is active.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	CatalogRepository() CatalogRepository
	OrderRepository() OrderRepository
	StatusHistoryRepository() StatusHistoryRepository
	NotificationRepository() NotificationRepository
	RecipientDirectory() RecipientDirectory
}
