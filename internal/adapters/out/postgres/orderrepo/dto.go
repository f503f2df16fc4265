// Package orderrepo maps Order aggregates onto the orders and order_items tables.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Items are stored in order_items.
type OrderDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	CityID               uuid.UUID       `gorm:"type:uuid;not null"`
	DeliveryType         string          `gorm:"type:text;not null"`
	Status               string          `gorm:"type:text;not null;index:idx_orders_status_created,priority:1"`
	Subtotal             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PlatformFee          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	TotalAmount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	SpecialInstructions  string          `gorm:"type:text"`
	DeliveryInstructions string          `gorm:"type:text"`
	CourierID            *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt            time.Time       `gorm:"not null;index:idx_orders_status_created,priority:2"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one line of an order. Position keeps the order the customer sent.
type OrderItemDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	ChefID     uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ChefAmount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Position   int             `gorm:"not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := o.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := o.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, li := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:    o.ID().Bytes(),
			ItemID:     li.CatalogItemID().Bytes(),
			ChefID:     li.ChefID().Bytes(),
			Quantity:   li.Quantity(),
			UnitPrice:  li.UnitPrice().Decimal(),
			ChefAmount: li.Amount().Decimal(),
			Position:   i,
		})
	}

	return OrderDTO{
		ID:                   o.ID().Bytes(),
		CustomerID:           o.CustomerID().Bytes(),
		CityID:               o.CityID().Bytes(),
		DeliveryType:         o.DeliveryType().String(),
		Status:               o.Status().String(),
		Subtotal:             o.Subtotal().Decimal(),
		DeliveryFee:          o.DeliveryFee().Decimal(),
		PlatformFee:          o.PlatformFee().Decimal(),
		TotalAmount:          o.Total().Decimal(),
		SpecialInstructions:  o.Instructions().Special,
		DeliveryInstructions: o.Instructions().Delivery,
		CourierID:            courierID,
		CreatedAt:            o.CreatedAt(),
		Items:                itemDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	cityID, err := kernel.UUIDFromBytes(dto.CityID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		li, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, li)
	}

	amounts := make([]kernel.Money, 0, 4)
	for _, d := range []decimal.Decimal{dto.Subtotal, dto.DeliveryFee, dto.PlatformFee, dto.TotalAmount} {
		m, moneyErr := kernel.NewMoney(d)
		if moneyErr != nil {
			return nil, moneyErr
		}
		amounts = append(amounts, m)
	}

	return order.RestoreOrder(order.Snapshot{
		ID:           id,
		CustomerID:   customerID,
		CityID:       cityID,
		DeliveryType: deliveryType,
		Status:       status,
		Items:        items,
		Subtotal:     amounts[0],
		DeliveryFee:  amounts[1],
		PlatformFee:  amounts[2],
		Total:        amounts[3],
		Instructions: order.Instructions{
			Special:  dto.SpecialInstructions,
			Delivery: dto.DeliveryInstructions,
		},
		CourierID: courierID,
		CreatedAt: dto.CreatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (order.LineItem, error) {
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	chefID, err := kernel.UUIDFromBytes(dto.ChefID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(itemID, chefID, dto.Quantity, price)
}
