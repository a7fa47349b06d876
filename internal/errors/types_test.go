package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageFormat(t *testing.T) {
	err := NewValidationError(ErrCodeInvalidAccount, "bad account")
	assert.Equal(t, "[ERR_INVALID_ACCOUNT] bad account", err.Error())

	cause := stderrors.New("disk full")
	wrapped := NewIOError(ErrCodeIOFailure, "cannot write", cause)
	assert.Equal(t, "[ERR_IO_FAILURE] cannot write: disk full", wrapped.Error())
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewNetworkError(ErrCodeConnectionFailed, "dial failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestIsMatchesOnKindAndCode(t *testing.T) {
	a := NewNotFoundError(ErrCodeConfigNotFound, "missing at /a")
	b := NewNotFoundError(ErrCodeConfigNotFound, "missing at /b")
	other := NewNotFoundError(ErrCodeMessageNotFound, "no such message")

	assert.True(t, stderrors.Is(a, b), "same kind and code match regardless of message")
	assert.False(t, stderrors.Is(a, other), "different codes do not match")
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
	}{
		{"not found", NewNotFoundError(ErrCodeConfigNotFound, "x"), IsNotFound},
		{"io", NewIOError(ErrCodeIOFailure, "x", nil), IsIO},
		{"malformed", NewMalformedError(ErrCodeMalformedDocument, "x"), IsMalformed},
		{"validation", NewValidationError(ErrCodeInvalidAccount, "x"), IsValidation},
		{"security", NewSecurityError(ErrCodeInjectionDetected, "x"), IsSecurity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.predicate(tt.err))
			assert.False(t, tt.predicate(stderrors.New("plain")))
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := NewSecurityError(ErrCodePermissionDenied, "no move grant")
	wrapped := fmt.Errorf("moving message: %w", inner)

	assert.True(t, IsSecurity(wrapped))
	assert.False(t, IsNotFound(wrapped))
}

func TestWithContext(t *testing.T) {
	err := NewSecurityError(ErrCodeInjectionDetected, "blocked").
		WithContext("score", 0.9).
		WithContext("folder", "INBOX")

	require.NotNil(t, err.Context)
	assert.Equal(t, 0.9, err.Context["score"])
	assert.Equal(t, "INBOX", err.Context["folder"])
}
