package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"orderflow/internal/adapters/in/http/api"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var domainErrors = []error{
	errs.ErrObjectNotFound,
	errs.ErrValueIsInvalid,
	errs.ErrValueIsOutOfRange,
	errs.ErrValueIsRequired,
	errs.ErrConflict,
	order.ErrInvalidTransition,
	commands.ErrNoOrderableItems,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, api.Error{Error: firstLine(err.Error())})
}

// fail reports a use case error. Callers always get a 400 with the message; errors that
// do not come from validation or lookups are logged as well.
func (s *Server) fail(c echo.Context, err error) error {
	if !isDomainError(err) {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
			slog.Any("error", err),
		)
	}
	return badRequest(c, err)
}

// ErrorHandler renders errors that escape the handlers. Routing errors keep their echo
// status; everything else becomes a 400.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusBadRequest
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed {
				status = he.Code
			}
			if m, ok := he.Message.(string); ok {
				message = m
			}
		} else if !isDomainError(err) {
			logger.ErrorContext(c.Request().Context(), "unhandled error",
				slog.String("path", c.Path()),
				slog.Any("error", err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, api.Error{Error: firstLine(message)})
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", slog.Any("error", writeErr))
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
