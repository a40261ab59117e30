// Package apperrors provides the typed error taxonomy for the pipeline.
package apperrors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeReferenceLoad indicates a reference master file could not be read.
	// Callers degrade to empty lookup tables rather than aborting the run.
	TypeReferenceLoad Type = "REFERENCE_LOAD_FAILURE"

	// TypeParse indicates the batch input file could not be read or parsed
	TypeParse Type = "PARSE_FAILURE"

	// TypeNoResults indicates classification produced neither accepted nor
	// rejected lines; the invocation is surfaced to the user as a failure
	TypeNoResults Type = "NO_RESULTS"

	// TypeRender indicates the output workbook could not be written
	TypeRender Type = "RENDER_FAILURE"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeAuditLog indicates the audit log line could not be appended
	TypeAuditLog Type = "AUDIT_LOG_FAILURE"
)

// Error represents a domain error with context
type Error struct {
	Type    Type
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// ReferenceLoad creates a reference master load error
func ReferenceLoad(message string, cause error) *Error {
	return Wrap(TypeReferenceLoad, message, cause)
}

// Parse creates a batch parse error
func Parse(message string, cause error) *Error {
	return Wrap(TypeParse, message, cause)
}

// NoResults creates the empty-classification error
func NoResults() *Error {
	return New(TypeNoResults, "no accepted or rejected orders produced")
}

// Render creates a report write error
func Render(message string, cause error) *Error {
	return Wrap(TypeRender, message, cause)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}
