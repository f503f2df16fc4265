// Package postgres implements the unit of work and repositories on top of gorm and pgx.
//
// A GormUnitOfWork hands out repositories bound to its transaction once Begin was
// called, and to the plain connection otherwise:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.StatusHistoryRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork must be used by one goroutine; create one per operation.
package postgres

import (
	"context"

	"orderflow/internal/adapters/out/postgres/catalogrepo"
	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/postgres/notificationrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/recipientrepo"
	"orderflow/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm returns the concrete type, for callers that need more than the port.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across repositories.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts a transaction. Calling it again while one is active is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback returns gorm.ErrInvalidTransaction when no transaction is active, which
// makes the deferred rollback after a successful commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) CatalogRepository() ports.CatalogRepository {
	return catalogrepo.NewGormCatalogRepository(uow.conn())
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return historyrepo.NewGormStatusHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

func (uow *GormUnitOfWork) RecipientDirectory() ports.RecipientDirectory {
	return recipientrepo.NewGormRecipientDirectory(uow.conn())
}
