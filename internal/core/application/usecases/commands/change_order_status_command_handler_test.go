package commands_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeOrderStatusCommandHandler_Handle_Accept(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, order.Delivery)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Accepted, order.ActorChef, nil)
	require.NoError(t, err)

	f := newOrderUoWFixture()
	var stored *notification.Notification
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		f.orders.On("UpdateStatus", ctx, o, order.Placed).Return(nil).Once(),
		f.history.On("Append", ctx, mock.MatchedBy(func(e order.StatusHistoryEntry) bool {
			return e.Status() == order.Accepted && e.Actor() == order.ActorChef && e.OrderID().IsEqual(o.ID())
		})).Return(nil).Once(),
		f.notifications.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
			stored = args.Get(1).(*notification.Notification)
		}).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	f.assert(t)
	assert.Equal(t, order.Accepted, result.Order.Status())
	assert.Equal(t, order.Placed, result.PreviousStatus)
	require.Len(t, result.NotificationIDs, 1)
	require.NotNil(t, stored)
	assert.Equal(t, notification.Customer, stored.RecipientType())
	assert.Equal(t, "Order Accepted", stored.Title())
}

func TestChangeOrderStatusCommandHandler_Handle_PreparedWithCourier(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, order.Delivery)
	_, err := o.ChangeStatus(order.Accepted, nil)
	require.NoError(t, err)
	courier := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Prepared, order.ActorChef, &courier)
	require.NoError(t, err)

	f := newOrderUoWFixture()
	var recipients []notification.RecipientType
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("UpdateStatus", ctx, o, order.Accepted).Return(nil).Once()
	f.history.On("Append", ctx, mock.Anything).Return(nil).Once()
	f.notifications.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		recipients = append(recipients, args.Get(1).(*notification.Notification).RecipientType())
	}).Return(nil).Twice()
	f.uow.On("Commit", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	f.assert(t)
	assert.True(t, courier.IsEqual(*result.Order.Courier()))
	assert.Equal(t, []notification.RecipientType{notification.Customer, notification.Courier}, recipients)
}

func TestChangeOrderStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, order.Delivery)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Delivered, order.ActorDelivery, nil)
	require.NoError(t, err)

	f := newOrderUoWFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	f.assert(t)
	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.notifications.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, order.Pickup)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Cancelled, order.ActorCustomer, nil)
	require.NoError(t, err)

	f := newOrderUoWFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("UpdateStatus", ctx, o, order.Placed).Return(ports.ErrConcurrentModification).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrConcurrentModification)
	require.ErrorIs(t, err, errs.ErrConflict)
	f.assert(t)
	f.history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(id, order.Accepted, order.ActorChef, nil)
	require.NoError(t, err)

	f := newOrderUoWFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order_id", id)).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.assert(t)
}

func TestChangeOrderStatusCommandHandler_Handle_HistoryFailure(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, order.Pickup)
	cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), order.Accepted, order.ActorChef, nil)
	require.NoError(t, err)

	f := newOrderUoWFixture()
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
	f.orders.On("UpdateStatus", ctx, o, order.Placed).Return(nil).Once()
	f.history.On("Append", ctx, mock.Anything).Return(errors.New("connection reset")).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorContains(t, err, "insert status history")
	f.assert(t)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestChangeOrderStatusCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	h := commands.NewChangeOrderStatusCommandHandler(factory)

	_, err := h.Handle(t.Context(), commands.ChangeOrderStatusCommand{})

	require.ErrorIs(t, err, commands.ErrChangeOrderStatusCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestChangeOrderStatusCommandHandler_Handle_FullDeliveryLifecycle(t *testing.T) {
	ctx := t.Context()
	o := placedOrder(t, order.Delivery)
	courier := kernel.NewUUID()

	f := newOrderUoWFixture()
	f.factory.On("Create").Return(f.uow).Times(3)

	var (
		expected []order.Status
		history  []order.Status
		actors   []order.Actor
		titles   []string
		targets  []notification.RecipientType
	)
	f.uow.On("Begin", ctx).Return(nil).Times(4)
	f.orders.On("Get", ctx, o.ID()).Return(o, nil).Times(4)
	f.orders.On("UpdateStatus", ctx, o, mock.Anything).Run(func(args mock.Arguments) {
		expected = append(expected, args.Get(2).(order.Status))
	}).Return(nil).Times(4)
	f.history.On("Append", ctx, mock.Anything).Run(func(args mock.Arguments) {
		entry := args.Get(1).(order.StatusHistoryEntry)
		history = append(history, entry.Status())
		actors = append(actors, entry.Actor())
	}).Return(nil).Times(4)
	f.notifications.On("Add", ctx, mock.Anything).Run(func(args mock.Arguments) {
		n := args.Get(1).(*notification.Notification)
		titles = append(titles, n.Title())
		targets = append(targets, n.RecipientType())
	}).Return(nil).Times(5)
	f.uow.On("Commit", ctx).Return(nil).Times(4)
	f.uow.On("Rollback", ctx).Return(nil).Times(4)

	h := commands.NewChangeOrderStatusCommandHandler(f.factory)
	steps := []struct {
		status    order.Status
		actor     order.Actor
		courierID *kernel.UUID
		notified  int
	}{
		{status: order.Accepted, actor: order.ActorChef, notified: 1},
		{status: order.Prepared, actor: order.ActorChef, courierID: &courier, notified: 2},
		{status: order.PickedUp, actor: order.ActorDelivery, notified: 1},
		{status: order.Delivered, actor: order.ActorDelivery, notified: 1},
	}
	for _, step := range steps {
		cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), step.status, step.actor, step.courierID)
		require.NoError(t, err)

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err, step.status.String())
		assert.Equal(t, step.status, result.Order.Status())
		assert.Len(t, result.NotificationIDs, step.notified, step.status.String())
	}

	f.assert(t)
	assert.Equal(t, []order.Status{order.Placed, order.Accepted, order.Prepared, order.PickedUp}, expected)
	assert.Equal(t, []order.Status{order.Accepted, order.Prepared, order.PickedUp, order.Delivered}, history)
	assert.Equal(t, []order.Actor{order.ActorChef, order.ActorChef, order.ActorDelivery, order.ActorDelivery}, actors)
	assert.Equal(t, []notification.RecipientType{
		notification.Customer,
		notification.Customer, notification.Courier,
		notification.Customer,
		notification.Customer,
	}, targets)
	assert.Equal(t, []string{
		"Order Accepted",
		"Order Ready", "Order Ready for Pickup",
		"Order Picked Up",
		"Order Delivered",
	}, titles)
	require.NotNil(t, o.Courier())
	assert.True(t, courier.IsEqual(*o.Courier()))
}
