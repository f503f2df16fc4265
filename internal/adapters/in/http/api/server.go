package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Place an order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Move an order to a new status
	// (POST /api/v1/orders/status)
	ChangeOrderStatus(ctx echo.Context) error
	// Cancel placed orders older than the configured age
	// (POST /api/v1/orders/expire)
	ExpireStaleOrders(ctx echo.Context) error
	// Order with items, status history and notifications
	// (GET /api/v1/orders/{id})
	GetOrder(ctx echo.Context, id openapi_types.UUID) error
	// Store and push a notification to one recipient
	// (POST /api/v1/notifications)
	SendNotification(ctx echo.Context) error
	// Push a stored notification
	// (POST /api/v1/notifications/dispatch)
	DispatchNotification(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	return w.Handler.ChangeOrderStatus(ctx)
}

func (w *ServerInterfaceWrapper) ExpireStaleOrders(ctx echo.Context) error {
	return w.Handler.ExpireStaleOrders(ctx)
}

// GetOrder binds the path parameter "id" before calling the handler.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}

	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) SendNotification(ctx echo.Context) error {
	return w.Handler.SendNotification(ctx)
}

func (w *ServerInterfaceWrapper) DispatchNotification(ctx echo.Context) error {
	return w.Handler.DispatchNotification(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST("/api/v1/orders", wrapper.CreateOrder)
	router.POST("/api/v1/orders/status", wrapper.ChangeOrderStatus)
	router.POST("/api/v1/orders/expire", wrapper.ExpireStaleOrders)
	router.GET("/api/v1/orders/:id", wrapper.GetOrder)
	router.POST("/api/v1/notifications", wrapper.SendNotification)
	router.POST("/api/v1/notifications/dispatch", wrapper.DispatchNotification)
}
