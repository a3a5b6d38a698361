package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/request.schema.json
var requestSchema []byte

var requestSchemaLoader = gojsonschema.NewBytesLoader(requestSchema)

// ValidateDocument checks a request document against the request schema.
// Every violation is reported in one error.
func ValidateDocument(data []byte) error {
	result, err := gojsonschema.Validate(requestSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
}
