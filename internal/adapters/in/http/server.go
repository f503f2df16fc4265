package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

type orderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
}

type statusChanger interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
}

type staleOrderExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleOrdersCommand) (commands.ExpireStaleOrdersResult, error)
}

type notificationDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationCommand) (commands.DeliveryOutcome, error)
}

type notificationSender interface {
	Handle(ctx context.Context, cmd commands.SendNotificationCommand) (commands.SendNotificationResult, error)
}

type orderReader interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
}

type notificationQueue interface {
	Enqueue(ctx context.Context, ids ...kernel.UUID) int
}

// Handlers are the use cases the API exposes.
type Handlers struct {
	CreateOrder          orderCreator
	ChangeOrderStatus    statusChanger
	ExpireStaleOrders    staleOrderExpirer
	DispatchNotification notificationDispatcher
	SendNotification     notificationSender
	GetOrder             orderReader
}

// Server implements api.ServerInterface on top of the command and query handlers.
// Notifications produced by order operations are handed to the queue after commit,
// so a slow or failing push never affects the response.
type Server struct {
	handlers     Handlers
	queue        notificationQueue
	expiryMaxAge time.Duration
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

func NewServer(
	handlers Handlers,
	queue notificationQueue,
	expiryMaxAge time.Duration,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers:     handlers,
		queue:        queue,
		expiryMaxAge: expiryMaxAge,
		metrics:      m,
		logger:       logger.With("component", "http"),
		now:          time.Now,
	}
}

var _ api.ServerInterface = (*Server)(nil)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req api.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	customerID, err := toKernelUUID("customer_id", req.CustomerId)
	if err != nil {
		return badRequest(c, err)
	}
	cityID, err := toKernelUUID("city_id", req.CityId)
	if err != nil {
		return badRequest(c, err)
	}
	deliveryType, err := order.ParseDeliveryType(req.DeliveryType)
	if err != nil {
		return badRequest(c, err)
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, idErr := toKernelUUID("item_id", item.ItemId)
		if idErr != nil {
			return badRequest(c, idErr)
		}
		lines = append(lines, commands.OrderLine{ItemID: itemID, Quantity: item.Quantity})
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, cityID, deliveryType, lines, order.Instructions{
		Special:  deref(req.SpecialInstructions),
		Delivery: deref(req.DeliveryInstructions),
	})
	if err != nil {
		return badRequest(c, err)
	}

	ctx := c.Request().Context()
	result, err := s.handlers.CreateOrder.Handle(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.metrics.OrdersCreatedTotal.WithLabelValues(result.Order.DeliveryType().String()).Inc()
	s.queue.Enqueue(ctx, result.NotificationIDs...)

	resp := api.CreateOrderResponse{
		Success:     true,
		OrderId:     result.Order.ID().Bytes(),
		TotalAmount: money(result.Order.Total()),
	}
	for _, id := range result.SkippedItemIDs {
		resp.SkippedItemIds = append(resp.SkippedItemIds, id.Bytes())
	}

	return c.JSON(http.StatusOK, resp)
}

// ChangeOrderStatus handles POST /api/v1/orders/status.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	var req api.ChangeOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	orderID, err := toKernelUUID("order_id", req.OrderId)
	if err != nil {
		return badRequest(c, err)
	}
	status, err := order.ParseStatus(req.NewStatus)
	if err != nil {
		return badRequest(c, err)
	}
	actor, err := order.ParseActor(req.ChangedBy)
	if err != nil {
		return badRequest(c, err)
	}
	var courierID *kernel.UUID
	if req.DeliveryPersonId != nil {
		id, idErr := toKernelUUID("delivery_person_id", *req.DeliveryPersonId)
		if idErr != nil {
			return badRequest(c, idErr)
		}
		courierID = &id
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status, actor, courierID)
	if err != nil {
		return badRequest(c, err)
	}

	ctx := c.Request().Context()
	result, err := s.handlers.ChangeOrderStatus.Handle(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.metrics.OrderTransitionsTotal.WithLabelValues(status.String(), actor.String()).Inc()
	s.queue.Enqueue(ctx, result.NotificationIDs...)

	return c.JSON(http.StatusOK, api.ChangeOrderStatusResponse{
		Success: true,
		Order:   orderFromDomain(result.Order),
	})
}

// ExpireStaleOrders handles POST /api/v1/orders/expire, the on-demand variant of the
// scheduled sweep.
func (s *Server) ExpireStaleOrders(c echo.Context) error {
	cmd, err := commands.NewExpireStaleOrdersCommand(s.expiryMaxAge, s.now())
	if err != nil {
		return s.fail(c, err)
	}

	ctx := c.Request().Context()
	result, err := s.handlers.ExpireStaleOrders.Handle(ctx, cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.metrics.SweepExpiredTotal.Add(float64(result.Expired))
	s.metrics.SweepFailedTotal.Add(float64(result.Failed))
	s.metrics.OrderTransitionsTotal.
		WithLabelValues(order.Cancelled.String(), order.ActorSystem.String()).
		Add(float64(result.Expired))
	s.queue.Enqueue(ctx, result.NotificationIDs...)

	return c.JSON(http.StatusOK, api.ExpireStaleOrdersResponse{
		Success:      true,
		ExpiredCount: result.Expired,
		FailedCount:  result.Failed,
	})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context, id openapi_types.UUID) error {
	orderID, err := toKernelUUID("id", id)
	if err != nil {
		return badRequest(c, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(c, err)
	}

	resp, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, orderDetails(resp))
}

// SendNotification handles POST /api/v1/notifications.
func (s *Server) SendNotification(c echo.Context) error {
	var req api.SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	recipientType, err := notification.ParseRecipientType(req.UserType)
	if err != nil {
		return badRequest(c, err)
	}
	recipientID, err := toKernelUUID("user_id", req.UserId)
	if err != nil {
		return badRequest(c, err)
	}
	var orderID *kernel.UUID
	if req.OrderId != nil {
		id, idErr := toKernelUUID("order_id", *req.OrderId)
		if idErr != nil {
			return badRequest(c, idErr)
		}
		orderID = &id
	}

	cmd, err := commands.NewSendNotificationCommand(recipientType, recipientID, orderID, req.Title, req.Message)
	if err != nil {
		return badRequest(c, err)
	}

	result, err := s.handlers.SendNotification.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.metrics.NotificationDispatches.WithLabelValues(string(result.Outcome)).Inc()

	return c.JSON(http.StatusOK, api.SendNotificationResponse{
		Success:        result.Outcome == commands.OutcomeSent,
		NotificationId: result.NotificationID.Bytes(),
		Outcome:        string(result.Outcome),
	})
}

// DispatchNotification handles POST /api/v1/notifications/dispatch. It pushes
// synchronously and reports the outcome; a failed push is still a 200.
func (s *Server) DispatchNotification(c echo.Context) error {
	var req api.DispatchNotificationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	notificationID, err := toKernelUUID("notification_id", req.NotificationId)
	if err != nil {
		return badRequest(c, err)
	}

	cmd, err := commands.NewDispatchNotificationCommand(notificationID)
	if err != nil {
		return badRequest(c, err)
	}

	outcome, err := s.handlers.DispatchNotification.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	s.metrics.NotificationDispatches.WithLabelValues(string(outcome)).Inc()

	return c.JSON(http.StatusOK, api.DispatchNotificationResponse{
		Success: true,
		Outcome: string(outcome),
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
