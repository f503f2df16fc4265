// Package api holds the HTTP contract of the service: the embedded OpenAPI document,
// the request and response types that mirror it, the ServerInterface the handlers
// implement and the request validator built from the document.
package api

import (
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.json
var rawSpec []byte

func init() {
	openapi3.DefineStringFormatValidator("uuid", openapi3.NewRegexpFormatValidator(openapi3.FormatOfStringForUUIDOfRFC4122))
	swag.Register(swag.Name, swaggerDoc{})
}

// swaggerDoc serves the embedded document to echo-swagger under /swagger/doc.json.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string { return string(rawSpec) }

// RawSpec returns a copy of the embedded document.
func RawSpec() []byte {
	return append([]byte(nil), rawSpec...)
}

// LoadSpec parses and validates the embedded document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}
