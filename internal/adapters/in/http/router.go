package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewEcho builds the HTTP router: API routes behind request validation, plus health,
// metrics and swagger endpoints.
func NewEcho(
	server api.ServerInterface,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := api.LoadSpec()
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	validator, err := api.RequestValidator(doc)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(MetricsMiddleware(m))
	e.Use(RequestLogger(logger))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group("", validator)
	api.RegisterHandlers(apiGroup, server)

	return e, nil
}
