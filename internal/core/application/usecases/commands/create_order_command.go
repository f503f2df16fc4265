package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested catalog item and its quantity.
type OrderLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// CreateOrderCommand places a new order for a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, cityID, order.Delivery,
//	    []OrderLine{{ItemID: pizzaID, Quantity: 2}, {ItemID: saladID, Quantity: 1}},
//	    order.Instructions{Delivery: "leave at the door"})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	cityID       kernel.UUID
	deliveryType order.DeliveryType
	lines        []OrderLine
	instructions order.Instructions

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates everything that can be checked without storage:
// ids, delivery type, at least one line and positive quantities.
func NewCreateOrderCommand(
	customerID, cityID kernel.UUID,
	deliveryType order.DeliveryType,
	lines []OrderLine,
	instructions order.Instructions,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setCityID(cityID),
		cmd.setDeliveryType(deliveryType),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID          { return c.customerID }
func (c CreateOrderCommand) CityID() kernel.UUID              { return c.cityID }
func (c CreateOrderCommand) DeliveryType() order.DeliveryType { return c.deliveryType }
func (c CreateOrderCommand) Instructions() order.Instructions { return c.instructions }
func (c CreateOrderCommand) Lines() []OrderLine               { return append([]OrderLine(nil), c.lines...) }

func (c *CreateOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("customer_id: %w", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setCityID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("city_id: %w", err)
	}
	c.cityID = id
	return nil
}

func (c *CreateOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	c.deliveryType = deliveryType
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var problems []error
	for i, line := range lines {
		if err := line.ItemID.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("items[%d].item_id: %w", i, err))
		}
		if line.Quantity <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i), fmt.Errorf("%d is not greater than 0", line.Quantity)))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.lines = append([]OrderLine(nil), lines...)
	return nil
}
