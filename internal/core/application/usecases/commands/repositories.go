// Package commands contains the operations that change order state.
// Every command is validated at construction and executed by a handler that owns
// exactly one transaction.
package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	StatusHistoryRepoFactory interface {
		StatusHistoryRepository() ports.StatusHistoryRepository
	}

	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	RecipientDirectoryFactory interface {
		RecipientDirectory() ports.RecipientDirectory
	}

	// OrderUoW covers order creation and status transitions: the order, its history and
	// the notifications they produce are written in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   // ... OrderRepository, StatusHistoryRepository, NotificationRepository
	//
	//   return uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		CatalogRepoFactory
		OrderRepoFactory
		StatusHistoryRepoFactory
		NotificationRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// NotificationUoW covers notification storage and delivery.
	NotificationUoW interface {
		TxManager
		NotificationRepoFactory
		RecipientDirectoryFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}
)
