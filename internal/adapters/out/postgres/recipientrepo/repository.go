// Package recipientrepo resolves push tokens from the customers, chefs and deliverers
// account tables.
package recipientrepo

import (
	"context"
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FCMToken *string   `gorm:"column:fcm_token;type:text"`
}

func (CustomerDTO) TableName() string { return "customers" }

type ChefDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FCMToken *string   `gorm:"column:fcm_token;type:text"`
}

func (ChefDTO) TableName() string { return "chefs" }

type DelivererDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FCMToken *string   `gorm:"column:fcm_token;type:text"`
}

func (DelivererDTO) TableName() string { return "deliverers" }

var tables = map[notification.RecipientType]string{
	notification.Customer: CustomerDTO{}.TableName(),
	notification.Chef:     ChefDTO{}.TableName(),
	notification.Courier:  DelivererDTO{}.TableName(),
}

// GormRecipientDirectory implements ports.RecipientDirectory using GORM.
type GormRecipientDirectory struct {
	db *gorm.DB
}

func NewGormRecipientDirectory(db *gorm.DB) *GormRecipientDirectory {
	return &GormRecipientDirectory{db: db}
}

// PushToken returns "" for unknown accounts and accounts without a token.
func (d *GormRecipientDirectory) PushToken(
	ctx context.Context, recipientType notification.RecipientType, id kernel.UUID,
) (string, error) {
	table, ok := tables[recipientType]
	if !ok {
		return "", fmt.Errorf("no account table for recipient type %q", recipientType)
	}

	var row struct {
		FCMToken *string `gorm:"column:fcm_token"`
	}
	err := d.db.WithContext(ctx).
		Table(table).
		Select("fcm_token").
		Where("id = ?", id.Bytes()).
		Limit(1).
		Scan(&row).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if row.FCMToken == nil {
		return "", nil
	}

	return *row.FCMToken, nil
}
