// Package errors provides standardized error handling for upstream fetches.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFetchFailed    ErrorCode = "FETCH_FAILED"
	ErrCodeUpstreamStatus ErrorCode = "UPSTREAM_STATUS"
	ErrCodeInvalidPayload ErrorCode = "INVALID_PAYLOAD"
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// Kinds callers match with errors.Is. Every fetch error is one of the two.
var (
	ErrFetchFailure = errors.New("fetch failure")
	ErrNotFound     = errors.New("not found")
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the kind sentinel and the underlying cause.
func (e *StandardError) Unwrap() []error {
	kind := ErrFetchFailure
	if e.Code == ErrCodeNotFound {
		kind = ErrNotFound
	}
	if e.cause == nil {
		return []error{kind}
	}
	return []error{kind, e.cause}
}

// WithMetadata returns e with key set in its metadata.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewFetchFailedError wraps a transport-level failure.
func NewFetchFailedError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFetchFailed,
		Message:   "Upstream request failed",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewUpstreamStatusError reports a non-2xx upstream response.
func NewUpstreamStatusError(url string, status int) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamStatus,
		Message:   "Upstream returned an unexpected status",
		Details:   fmt.Sprintf("url: %s, status: %d", url, status),
		Retryable: status >= 500,
		Metadata:  map[string]interface{}{"status": status},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPayloadError reports a body that failed decoding or schema checks.
func NewInvalidPayloadError(url string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPayload,
		Message:   "Upstream payload is invalid",
		Details:   fmt.Sprintf("url: %s, error: %s", url, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewNotFoundError reports a missing or empty record.
func NewNotFoundError(resource, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("%s: %s", resource, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "NOT_FOUND"):
		return "NOT_FOUND"
	case strings.Contains(codeStr, "FETCH") || strings.Contains(codeStr, "UPSTREAM"):
		return "TRANSPORT"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
