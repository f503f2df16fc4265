package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTotalMismatch is returned by RestoreOrder when persisted amounts disagree.
	ErrTotalMismatch = errors.New("order amounts are inconsistent")
)

// Instructions are the free-text notes a customer attaches to an order.
type Instructions struct {
	Special  string
	Delivery string
}

// Order is the aggregate root of the order lifecycle. It owns its line items, keeps the
// monetary invariant total = subtotal + delivery fee + platform fee and only changes
// status along the edges of the transition table.
type Order struct {
	id           kernel.UUID
	customerID   kernel.UUID
	cityID       kernel.UUID
	deliveryType DeliveryType
	status       Status

	items       []LineItem
	subtotal    kernel.Money
	deliveryFee kernel.Money
	platformFee kernel.Money
	total       kernel.Money

	instructions Instructions
	courierID    *kernel.UUID
	createdAt    time.Time

	isConstructed bool
}

// NewOrder prices a new order in status placed.
//
// The subtotal is the sum of the line amounts, the delivery fee is taken from fees
// for delivery orders only, and the platform fee is always charged.
//
// Example:
//
//	fees, _ := order.NewFeeSchedule(kernel.MustMoney("30"), kernel.MustMoney("10"))
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, cityID, order.Delivery,
//	    items, fees, order.Instructions{}, time.Now())
func NewOrder(
	id, customerID, cityID kernel.UUID,
	deliveryType DeliveryType,
	items []LineItem,
	fees FeeSchedule,
	instructions Instructions,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		wrapParam("order_id", id.Validate()),
		wrapParam("customer_id", customerID.Validate()),
		wrapParam("city_id", cityID.Validate()),
		deliveryType.Validate(),
		fees.Validate(),
		validateItems(items),
	); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created_at")
	}

	subtotal := sumItems(items)
	deliveryFee := fees.DeliveryFeeFor(deliveryType)
	platformFee := fees.PlatformFee()

	return &Order{
		id:            id,
		customerID:    customerID,
		cityID:        cityID,
		deliveryType:  deliveryType,
		status:        Placed,
		items:         append([]LineItem(nil), items...),
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		platformFee:   platformFee,
		total:         subtotal.Add(deliveryFee).Add(platformFee),
		instructions:  instructions,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

// Snapshot carries persisted state into RestoreOrder.
type Snapshot struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	CityID       kernel.UUID
	DeliveryType DeliveryType
	Status       Status
	Items        []LineItem
	Subtotal     kernel.Money
	DeliveryFee  kernel.Money
	PlatformFee  kernel.Money
	Total        kernel.Money
	Instructions Instructions
	CourierID    *kernel.UUID
	CreatedAt    time.Time
}

// RestoreOrder rebuilds an order loaded from storage and re-checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		wrapParam("order_id", s.ID.Validate()),
		wrapParam("customer_id", s.CustomerID.Validate()),
		wrapParam("city_id", s.CityID.Validate()),
		s.DeliveryType.Validate(),
		s.Status.Validate(),
		s.Subtotal.Validate(),
		s.DeliveryFee.Validate(),
		s.PlatformFee.Validate(),
		s.Total.Validate(),
		validateItems(s.Items),
	); err != nil {
		return nil, err
	}
	if s.CourierID != nil {
		if err := s.CourierID.Validate(); err != nil {
			return nil, wrapParam("delivery_person_id", err)
		}
	}

	if !sumItems(s.Items).Equal(s.Subtotal) {
		return nil, fmt.Errorf("%w: subtotal %s does not match line items", ErrTotalMismatch, s.Subtotal)
	}
	if !s.Subtotal.Add(s.DeliveryFee).Add(s.PlatformFee).Equal(s.Total) {
		return nil, fmt.Errorf("%w: total %s is not subtotal + fees", ErrTotalMismatch, s.Total)
	}
	if s.DeliveryFee.IsZero() == (s.DeliveryType == Delivery) {
		return nil, fmt.Errorf("%w: delivery fee %s does not fit a %s order", ErrTotalMismatch, s.DeliveryFee, s.DeliveryType)
	}

	var courierID *kernel.UUID
	if s.CourierID != nil {
		id := *s.CourierID
		courierID = &id
	}

	return &Order{
		id:            s.ID,
		customerID:    s.CustomerID,
		cityID:        s.CityID,
		deliveryType:  s.DeliveryType,
		status:        s.Status,
		items:         append([]LineItem(nil), s.Items...),
		subtotal:      s.Subtotal,
		deliveryFee:   s.DeliveryFee,
		platformFee:   s.PlatformFee,
		total:         s.Total,
		instructions:  s.Instructions,
		courierID:     courierID,
		createdAt:     s.CreatedAt.UTC(),
		isConstructed: true,
	}, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) CustomerID() kernel.UUID    { return o.customerID }
func (o *Order) CityID() kernel.UUID        { return o.cityID }
func (o *Order) DeliveryType() DeliveryType { return o.deliveryType }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Subtotal() kernel.Money     { return o.subtotal }
func (o *Order) DeliveryFee() kernel.Money  { return o.deliveryFee }
func (o *Order) PlatformFee() kernel.Money  { return o.platformFee }
func (o *Order) Total() kernel.Money        { return o.total }
func (o *Order) Instructions() Instructions { return o.instructions }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// Courier returns the assigned courier, nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	if o.courierID == nil {
		return nil
	}
	id := *o.courierID
	return &id
}

// ChefIDs returns every chef with at least one line item, each once, in the order
// they first appear.
func (o *Order) ChefIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(o.items))
	chefs := make([]kernel.UUID, 0, len(o.items))
	for _, item := range o.items {
		if _, ok := seen[item.chefID]; ok {
			continue
		}
		seen[item.chefID] = struct{}{}
		chefs = append(chefs, item.chefID)
	}
	return chefs
}

// ChangeStatus moves the order to the target status, optionally assigning a courier,
// and returns the status it had before. Persistence uses the returned value as the
// expected prior state of its conditional update.
//
// Couriers can only be assigned to delivery orders. On error the order is unchanged.
func (o *Order) ChangeStatus(to Status, courierID *kernel.UUID) (Status, error) {
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return UnknownStatus, wrapParam("delivery_person_id", err)
		}
		if o.deliveryType != Delivery {
			return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
				"delivery_person_id", fmt.Errorf("cannot assign a courier to a %s order", o.deliveryType))
		}
	}

	next, err := o.status.TransitionTo(to, o.deliveryType)
	if err != nil {
		return UnknownStatus, err
	}

	previous := o.status
	o.status = next
	if courierID != nil {
		id := *courierID
		o.courierID = &id
	}
	return previous, nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

func sumItems(items []LineItem) kernel.Money {
	sum := kernel.ZeroMoney()
	for _, item := range items {
		sum = sum.Add(item.amount)
	}
	return sum
}
