package codec

import (
	"fmt"
	"strings"
)

// The three validation errors below abort only the record being decoded,
// never a whole import batch, and are not retryable: a missing or invalid
// field stays missing or invalid.

// MissingFieldError indicates a required field was absent from a record.
type MissingFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// InvalidCodeError indicates a coded field held a value outside its closed
// set. ValidCodes carries the full set for diagnostics.
type InvalidCodeError struct {
	Field      string
	Value      string
	ValidCodes []string
}

// Error implements the error interface.
func (e *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code %q in field %q (valid: %s)",
		e.Value, e.Field, strings.Join(e.ValidCodes, ", "))
}

// UnresolvedReferenceError indicates a reference field's external id did
// not resolve through its registry.
type UnresolvedReferenceError struct {
	Field string
	XID   string
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("reference %q in field %q does not resolve", e.XID, e.Field)
}
