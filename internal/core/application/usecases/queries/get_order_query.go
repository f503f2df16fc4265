// Package queries holds read-side use cases. They bypass the aggregates and read
// straight from the database with raw SQL.
package queries

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery loads one order with its items, status history and notifications.
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("order_id", err)
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the full read model of an order. Enum fields carry their
// stored names.
type GetOrderQueryResponse struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	CityID               kernel.UUID
	DeliveryType         string
	Status               string
	Subtotal             kernel.Money
	DeliveryFee          kernel.Money
	PlatformFee          kernel.Money
	Total                kernel.Money
	SpecialInstructions  string
	DeliveryInstructions string
	CourierID            *kernel.UUID
	CreatedAt            time.Time

	Items         []OrderItemView
	History       []StatusChangeView
	Notifications []NotificationView
}

type OrderItemView struct {
	ItemID    kernel.UUID
	ChefID    kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Amount    kernel.Money
}

type StatusChangeView struct {
	Status    string
	ChangedBy string
	ChangedAt time.Time
}

type NotificationView struct {
	ID            kernel.UUID
	RecipientType string
	RecipientID   kernel.UUID
	Title         string
	Body          string
	IsSent        bool
	CreatedAt     time.Time
}
