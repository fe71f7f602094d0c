package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks documents against a compiled JSON Schema.
// It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON.
func NewValidator(schemaJSON string) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return &Validator{schema: s}, nil
}

// NewCareerValidator returns a validator for CareerSchema.
func NewCareerValidator() (*Validator, error) {
	return NewValidator(CareerSchema)
}

// Validate returns nil if doc matches the schema, a *ViolationError
// (matching ErrSchemaViolation) if it parses but does not, and an error
// matching ErrNotJSON if it does not parse.
func (v *Validator) Validate(doc string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotJSON, err)
	}
	if result.Valid() {
		return nil
	}

	violation := &ViolationError{}
	for _, desc := range result.Errors() {
		violation.Details = append(violation.Details, desc.String())
	}
	return violation
}
