package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand moves an order to a new status on behalf of an actor and
// optionally assigns a courier in the same step.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	status    order.Status
	actor     order.Actor
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	status order.Status,
	actor order.Actor,
	courierID *kernel.UUID,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(actor),
		cmd.setCourierID(courierID),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c ChangeOrderStatusCommand) Status() order.Status { return c.status }
func (c ChangeOrderStatusCommand) Actor() order.Actor   { return c.actor }

// CourierID is nil when the command does not assign a courier.
func (c ChangeOrderStatusCommand) CourierID() *kernel.UUID {
	if c.courierID == nil {
		return nil
	}
	id := *c.courierID
	return &id
}

func (c *ChangeOrderStatusCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("order_id: %w", err)
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *ChangeOrderStatusCommand) setCourierID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return fmt.Errorf("delivery_person_id: %w", err)
	}
	courier := *id
	c.courierID = &courier
	return nil
}
