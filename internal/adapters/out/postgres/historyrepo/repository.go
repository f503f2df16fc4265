// Package historyrepo stores the append-only order_status_history audit log.
package historyrepo

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StatusHistoryDTO is one recorded transition. The serial ID reflects commit order.
type StatusHistoryDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"type:text;not null"`
	ChangedBy string    `gorm:"type:text;not null"`
	ChangedAt time.Time `gorm:"not null"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

// GormStatusHistoryRepository implements ports.StatusHistoryRepository using GORM.
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

func (r *GormStatusHistoryRepository) Append(ctx context.Context, entry order.StatusHistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := StatusHistoryDTO{
		OrderID:   entry.OrderID().Bytes(),
		Status:    entry.Status().String(),
		ChangedBy: entry.Actor().String(),
		ChangedAt: entry.ChangedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormStatusHistoryRepository) ListByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]order.StatusHistoryEntry, error) {
	var dtos []StatusHistoryDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]order.StatusHistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		status, err := order.ParseStatus(dto.Status)
		if err != nil {
			return nil, err
		}
		actor, err := order.ParseActor(dto.ChangedBy)
		if err != nil {
			return nil, err
		}
		entry, err := order.NewStatusHistoryEntry(orderID, status, actor, dto.ChangedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
