package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks every request under /api/ against doc before it reaches a
// handler. Violations are answered with 400 and an Error body.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		MultiError:         false,
		ExcludeRequestBody: false,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if !strings.HasPrefix(req.URL.Path, "/api/") {
				return next(c)
			}

			// Unknown paths and methods are left to echo's 404 and 405.
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return c.JSON(http.StatusBadRequest, Error{Error: validationMessage(validateErr)})
			}

			return next(c)
		}
	}, nil
}

// validationMessage keeps the first line of kin-openapi's report, which names the
// offending field without the schema dump that follows.
func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		msg := reqErr.Error()
		if i := strings.IndexByte(msg, '\n'); i >= 0 {
			msg = msg[:i]
		}
		return msg
	}
	return err.Error()
}
