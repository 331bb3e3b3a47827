package persist

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/multierr"
)

// ErrSchema is returned when a document does not match the building schema
var ErrSchema = errors.New("building document does not match schema")

//go:embed building.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// Validate checks raw JSON against the building schema. Every violation is reported.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile building schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate building: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var violations error
	for _, desc := range result.Errors() {
		violations = multierr.Append(violations, errors.New(desc.String()))
	}
	return fmt.Errorf("%w: %w", ErrSchema, violations)
}
