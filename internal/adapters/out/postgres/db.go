package postgres

import (
	"context"
	"fmt"
	"time"

	"orderflow/internal/adapters/out/postgres/catalogrepo"
	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/postgres/notificationrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/recipientrepo"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig tunes the pgx pool gorm runs on. Zero values keep pgx defaults.
type PoolConfig struct {
	MaxConns        int32
	MaxConnLifetime time.Duration
}

// Open creates a pgx connection pool for dsn and wraps it in a gorm handle.
// Closing the returned pool releases every connection gorm uses.
//
// Example:
//
//	db, pool, err := postgres.Open(ctx, dsn, postgres.PoolConfig{MaxConns: 20})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
func Open(ctx context.Context, dsn string, cfg PoolConfig) (*gorm.DB, *pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create pool: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}

	return db, pool, nil
}

// Migrate creates or updates every table the service owns or reads.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalogrepo.MenuItemDTO{},
		&recipientrepo.CustomerDTO{},
		&recipientrepo.ChefDTO{},
		&recipientrepo.DelivererDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&historyrepo.StatusHistoryDTO{},
		&notificationrepo.NotificationDTO{},
	)
}
