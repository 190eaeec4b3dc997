package domain

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline failures. A failure is fatal to the document
// being processed, never to a whole batch.
type ErrorType string

const (
	ErrTypeNotFound      ErrorType = "not_found"
	ErrTypeConversion    ErrorType = "conversion_failure"
	ErrTypeRemoteService ErrorType = "remote_service"
	ErrTypeValidation    ErrorType = "validation"
	ErrTypeConfig        ErrorType = "config"
	ErrTypeIO            ErrorType = "io"
)

// ErrNoData marks the recoverable empty outcomes: the classifier found no
// matching section, or the extractor found no rows. Callers abort the
// remaining stages without treating the run as failed.
var ErrNoData = errors.New("no extractable data")

// Error is the typed failure returned by every stage.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two typed errors by their ErrorType, so callers can compare
// against a bare &Error{Type: ...} sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func newError(t ErrorType, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// NotFoundError signals a required local input file is missing.
func NotFoundError(message string, cause error) *Error {
	return newError(ErrTypeNotFound, message, cause)
}

// ConversionError signals the PDF could not be rasterized.
func ConversionError(message string, cause error) *Error {
	return newError(ErrTypeConversion, message, cause)
}

// RemoteServiceError signals a transport failure or malformed response from
// the vision-model service.
func RemoteServiceError(message string, cause error) *Error {
	return newError(ErrTypeRemoteService, message, cause)
}

// ValidationError signals invalid caller input.
func ValidationError(message string, cause error) *Error {
	return newError(ErrTypeValidation, message, cause)
}

// ConfigError signals missing or inconsistent configuration.
func ConfigError(message string, cause error) *Error {
	return newError(ErrTypeConfig, message, cause)
}

// IOError signals a local filesystem failure.
func IOError(message string, cause error) *Error {
	return newError(ErrTypeIO, message, cause)
}

// IsType reports whether err (or anything it wraps) is a typed error of the
// given kind.
func IsType(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}
