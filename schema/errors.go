package schema

import (
	"errors"
	"strings"
)

var (
	// ErrSchemaViolation indicates a document parsed but does not match the schema.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrInvalidSchema indicates the schema itself could not be compiled.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrNotJSON indicates the document could not be parsed at all.
	ErrNotJSON = errors.New("document is not valid JSON")
)

// ViolationError lists every way a document failed the schema.
type ViolationError struct {
	Details []string
}

func (e *ViolationError) Error() string {
	return ErrSchemaViolation.Error() + ": " + strings.Join(e.Details, "; ")
}

func (e *ViolationError) Unwrap() error {
	return ErrSchemaViolation
}
