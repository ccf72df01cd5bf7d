package validate

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("malformed model response")
	ErrSchemaViolation   = errors.New("schema violation")
)

// MalformedResponseError is returned when model output is not valid JSON.
// Raw keeps the original text for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaViolationError names the first field that broke the contract.
type SchemaViolationError struct {
	Schema string
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("%s: field %q %s", e.Schema, e.Field, e.Reason)
}

func (e *SchemaViolationError) Is(target error) bool { return target == ErrSchemaViolation }
