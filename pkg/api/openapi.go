package api

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yaml

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// RawSpec returns the embedded OpenAPI document describing every
// catalogued operation.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger returns the loaded and validated OpenAPI document. The result
// is parsed once and shared; callers must not mutate it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading Swagger: %w", err)
			return
		}
		if err := doc.Validate(context.Background()); err != nil {
			swaggerErr = fmt.Errorf("error validating Swagger: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}
