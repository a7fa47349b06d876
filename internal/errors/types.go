// Package errors provides structured error types for rnoe with error kinds,
// stable codes, and context so callers can react to failure categories
// (missing config vs. unreadable config vs. malformed config) instead of
// matching on message text.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind represents different categories of errors.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindIO         ErrorKind = "io"
	KindMalformed  ErrorKind = "malformed"
	KindValidation ErrorKind = "validation"
	KindSecurity   ErrorKind = "security"
	KindNetwork    ErrorKind = "network"
	KindInternal   ErrorKind = "internal"
)

// RnoeError is a structured error type with context.
type RnoeError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *RnoeError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *RnoeError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on kind and code.
func (e *RnoeError) Is(target error) bool {
	var t *RnoeError
	if errors.As(target, &t) {
		return e.Kind == t.Kind && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *RnoeError) WithContext(key string, value interface{}) *RnoeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// Error creation functions

// NewNotFoundError creates an error for an absent file or record.
func NewNotFoundError(code, message string) *RnoeError {
	return &RnoeError{
		Kind:    KindNotFound,
		Code:    code,
		Message: message,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *RnoeError {
	return &RnoeError{
		Kind:    KindIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewMalformedError creates an error for input the codec could not classify.
func NewMalformedError(code, message string) *RnoeError {
	return &RnoeError{
		Kind:    KindMalformed,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(code, message string) *RnoeError {
	return &RnoeError{
		Kind:    KindValidation,
		Code:    code,
		Message: message,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *RnoeError {
	return &RnoeError{
		Kind:    KindSecurity,
		Code:    code,
		Message: message,
	}
}

// NewNetworkError creates a network error.
func NewNetworkError(code, message string, cause error) *RnoeError {
	return &RnoeError{
		Kind:    KindNetwork,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *RnoeError {
	return &RnoeError{
		Kind:    KindInternal,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Kind predicates

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return hasKind(err, KindNotFound)
}

// IsIO checks if an error is an I/O error.
func IsIO(err error) bool {
	return hasKind(err, KindIO)
}

// IsMalformed checks if an error is a malformed-input error.
func IsMalformed(err error) bool {
	return hasKind(err, KindMalformed)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return hasKind(err, KindValidation)
}

// IsSecurity checks if an error is security-related.
func IsSecurity(err error) bool {
	return hasKind(err, KindSecurity)
}

func hasKind(err error, kind ErrorKind) bool {
	var re *RnoeError
	if errors.As(err, &re) {
		return re.Kind == kind
	}

	return false
}

// Common error codes.
const (
	ErrCodeConfigNotFound    = "ERR_CONFIG_NOT_FOUND"
	ErrCodeConfigExists      = "ERR_CONFIG_EXISTS"
	ErrCodeIOFailure         = "ERR_IO_FAILURE"
	ErrCodeMalformedDocument = "ERR_MALFORMED_DOCUMENT"
	ErrCodeInvalidAccount    = "ERR_INVALID_ACCOUNT"
	ErrCodeDuplicateAccount  = "ERR_DUPLICATE_ACCOUNT"
	ErrCodeAccountNotFound   = "ERR_ACCOUNT_NOT_FOUND"
	ErrCodeMissingPassword   = "ERR_MISSING_PASSWORD"
	ErrCodePermissionDenied  = "ERR_PERMISSION_DENIED"
	ErrCodeInjectionDetected = "ERR_INJECTION_DETECTED"
	ErrCodeConnectionFailed  = "ERR_CONNECTION_FAILED"
	ErrCodeMessageNotFound   = "ERR_MESSAGE_NOT_FOUND"
	ErrCodeSendFailed        = "ERR_SEND_FAILED"
	ErrCodeInternalError     = "ERR_INTERNAL"
)
