package orderrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its items in a single gorm create.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get loads an order with its items in submission order.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateStatus is a compare-and-set on the status column. The row lock taken by the
// UPDATE serializes competing transitions; the loser sees zero affected rows.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), expected.String()).
		Updates(map[string]any{
			"status":     aggregate.Status().String(),
			"courier_id": courierID,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return ports.ErrConcurrentModification
	}

	return nil
}

// ListStale returns orders still in status that were created before createdBefore.
func (r *GormOrderRepository) ListStale(
	ctx context.Context, status order.Status, createdBefore time.Time,
) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("status = ? AND created_at < ?", status.String(), createdBefore.UTC()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
