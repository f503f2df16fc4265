// Package pgtest starts a throwaway PostgreSQL container with the service schema for
// integration tests.
package pgtest

import (
	"context"
	"fmt"
	"strings"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Tables lists every table Migrate creates, children before parents.
var Tables = []string{
	"notifications",
	"order_status_history",
	"order_items",
	"orders",
	"menu",
	"customers",
	"chefs",
	"deliverers",
}

type Database struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, opens it through postgres.Open and migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, pool, err := postgres_adapter.Open(ctx, dsn, postgres_adapter.PoolConfig{MaxConns: 10})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres_adapter.Migrate(db); err != nil {
		pool.Close()
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Database{Container: container, Pool: pool, DB: db}, nil
}

// Truncate empties every table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ") + " CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	d.Pool.Close()
	return d.Container.Terminate(ctx)
}
