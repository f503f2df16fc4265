package http

import (
	"log/slog"
	"strconv"
	"time"

	"orderflow/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MetricsMiddleware counts requests and observes latency per route template.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let the error handler write the response so the status is final.
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, path, status).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	})
}
