// Package notificationrepo persists outbound notifications in the notifications table.
package notificationrepo

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserType  string     `gorm:"type:text;not null"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	Title     string     `gorm:"type:text;not null"`
	Message   string     `gorm:"type:text;not null"`
	IsSent    bool       `gorm:"not null;default:false"`
	CreatedAt time.Time  `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := fromDomain(n)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// MarkSent flips is_sent. Marking an already sent notification succeeds.
func (r *GormNotificationRepository) MarkSent(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", id.Bytes()).
		Update("is_sent", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", id.String())
	}
	return nil
}

func (r *GormNotificationRepository) ListByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*notification.Notification, error) {
	var dtos []NotificationDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, user_type").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	result := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, nil
}

func fromDomain(n *notification.Notification) NotificationDTO {
	var orderID *uuid.UUID
	if id := n.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserType:  n.RecipientType().String(),
		UserID:    n.RecipientID().Bytes(),
		OrderID:   orderID,
		Title:     n.Title(),
		Message:   n.Body(),
		IsSent:    n.IsSent(),
		CreatedAt: n.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	userType, err := notification.ParseRecipientType(dto.UserType)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return notification.RestoreNotification(id, userType, userID, orderID, dto.Title, dto.Message, dto.IsSent, dto.CreatedAt)
}
