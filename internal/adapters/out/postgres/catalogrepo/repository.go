// Package catalogrepo reads menu prices from the menu table.
package catalogrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/catalog"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItemDTO is owned by menu management; this service only reads it.
type MenuItemDTO struct {
	ItemID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ChefID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Price  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu"
}

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) Get(ctx context.Context, id kernel.UUID) (catalog.Item, error) {
	if err := id.Validate(); err != nil {
		return catalog.Item{}, err
	}

	var dto MenuItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "item_id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Item{}, errs.NewObjectNotFoundError("item", id.String())
		}
		return catalog.Item{}, err
	}

	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return catalog.Item{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return catalog.Item{}, err
	}

	return catalog.NewItem(id, chefID, price)
}
