package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/historyrepo"
	"orderflow/internal/adapters/out/postgres/notificationrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	database *pgtest.Database
	handler  queries.GetOrderQueryHandler
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.handler = queries.NewGetOrderQueryHandler(database.DB)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *GetOrderQueryHandlerTestSuite) query(id kernel.UUID) queries.GetOrderQuery {
	query, err := queries.NewGetOrderQuery(id)
	suite.Require().NoError(err)
	return query
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ReturnsOrderWithItemsHistoryAndNotifications() {
	ctx := context.Background()
	db := suite.database.DB
	createdAt := time.Now().Add(-time.Minute).UTC()

	chefA, chefB := kernel.NewUUID(), kernel.NewUUID()
	first, err := order.NewLineItem(kernel.NewUUID(), chefA, 2, kernel.MustMoney("100"))
	suite.Require().NoError(err)
	second, err := order.NewLineItem(kernel.NewUUID(), chefB, 1, kernel.MustMoney("50"))
	suite.Require().NoError(err)
	fees, err := order.NewFeeSchedule(kernel.MustMoney("30"), kernel.MustMoney("10"))
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), order.Delivery,
		[]order.LineItem{first, second}, fees, order.Instructions{Special: "extra spicy"}, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(db).Add(ctx, o))

	courierID := kernel.NewUUID()
	prev, err := o.ChangeStatus(order.Accepted, &courierID)
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(db).UpdateStatus(ctx, o, prev))

	history := historyrepo.NewGormStatusHistoryRepository(db)
	for _, step := range []struct {
		status order.Status
		actor  order.Actor
	}{{order.Placed, order.ActorCustomer}, {order.Accepted, order.ActorChef}} {
		entry, entryErr := order.NewStatusHistoryEntry(o.ID(), step.status, step.actor, createdAt)
		suite.Require().NoError(entryErr)
		suite.Require().NoError(history.Append(ctx, entry))
	}

	orderID := o.ID()
	n, err := notification.NewNotification(kernel.NewUUID(), notification.Customer, o.CustomerID(), &orderID,
		"Order Accepted", "Your order has been accepted", createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(notificationrepo.NewGormNotificationRepository(db).Add(ctx, n))

	resp, err := suite.handler.Handle(ctx, suite.query(o.ID()))
	suite.Require().NoError(err)

	suite.Equal(o.ID(), resp.ID)
	suite.Equal(o.CustomerID(), resp.CustomerID)
	suite.Equal("delivery", resp.DeliveryType)
	suite.Equal("accepted", resp.Status)
	suite.Equal("250.00", resp.Subtotal.String())
	suite.Equal("30.00", resp.DeliveryFee.String())
	suite.Equal("10.00", resp.PlatformFee.String())
	suite.Equal("290.00", resp.Total.String())
	suite.Equal("extra spicy", resp.SpecialInstructions)
	suite.Empty(resp.DeliveryInstructions)
	suite.Require().NotNil(resp.CourierID)
	suite.Equal(courierID, *resp.CourierID)
	suite.WithinDuration(createdAt, resp.CreatedAt, time.Millisecond)

	suite.Require().Len(resp.Items, 2)
	suite.Equal(chefA, resp.Items[0].ChefID)
	suite.Equal("200.00", resp.Items[0].Amount.String())
	suite.Equal(chefB, resp.Items[1].ChefID)
	suite.Equal(1, resp.Items[1].Quantity)

	suite.Require().Len(resp.History, 2)
	suite.Equal("placed", resp.History[0].Status)
	suite.Equal("customer", resp.History[0].ChangedBy)
	suite.Equal("accepted", resp.History[1].Status)
	suite.Equal("chef", resp.History[1].ChangedBy)

	suite.Require().Len(resp.Notifications, 1)
	suite.Equal(n.ID(), resp.Notifications[0].ID)
	suite.Equal("customer", resp.Notifications[0].RecipientType)
	suite.False(resp.Notifications[0].IsSent)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_PickupOrderWithoutExtras_ReturnsEmptyCollections() {
	ctx := context.Background()
	li, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), 1, kernel.MustMoney("250"))
	suite.Require().NoError(err)
	fees, err := order.NewFeeSchedule(kernel.MustMoney("30"), kernel.MustMoney("10"))
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), order.Pickup,
		[]order.LineItem{li}, fees, order.Instructions{}, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.database.DB).Add(ctx, o))

	resp, err := suite.handler.Handle(ctx, suite.query(o.ID()))
	suite.Require().NoError(err)

	suite.Equal("pickup", resp.DeliveryType)
	suite.Equal("260.00", resp.Total.String())
	suite.True(resp.DeliveryFee.IsZero())
	suite.Nil(resp.CourierID)
	suite.NotNil(resp.History)
	suite.Empty(resp.History)
	suite.NotNil(resp.Notifications)
	suite.Empty(resp.Notifications)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	_, err := suite.handler.Handle(context.Background(), suite.query(kernel.NewUUID()))

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})

	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.handler.Handle(ctx, suite.query(kernel.NewUUID()))

	suite.Error(err)
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}
