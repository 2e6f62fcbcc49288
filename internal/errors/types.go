// Package errors provides the structured error used at the edges of the
// system: configuration, export I/O, the HTTP boundary and the assistant and
// deployment collaborators. The document model itself never fails.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind represents different categories of errors.
type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindUnsupportedMedia Kind = "unsupported_media"
	KindTooLarge         Kind = "too_large"
	KindUpstream         Kind = "upstream"
	KindUnavailable      Kind = "unavailable"
	KindRateLimited      Kind = "rate_limited"
	KindConfig           Kind = "config"
	KindIO               Kind = "io"
	KindInternal         Kind = "internal"
)

// Common error codes.
const (
	CodeInvalidRequest    = "ERR_INVALID_REQUEST"
	CodeComponentNotFound = "ERR_COMPONENT_NOT_FOUND"
	CodeEndpointNotFound  = "ERR_ENDPOINT_NOT_FOUND"
	CodeModelNotFound     = "ERR_MODEL_NOT_FOUND"
	CodeUnknownTarget     = "ERR_UNKNOWN_TARGET"
	CodeUnknownOp         = "ERR_UNKNOWN_OP"
	CodeImageType         = "ERR_IMAGE_TYPE"
	CodeImageTooLarge     = "ERR_IMAGE_TOO_LARGE"
	CodeNoImage           = "ERR_NO_IMAGE"
	CodeProviderFailed    = "ERR_PROVIDER_FAILED"
	CodeProviderMissing   = "ERR_PROVIDER_MISSING"
	CodeHistoryFailed     = "ERR_HISTORY_FAILED"
	CodeConfigInvalid     = "ERR_CONFIG_INVALID"
	CodeConfigLoad        = "ERR_CONFIG_LOAD"
	CodeWriteFailed       = "ERR_WRITE_FAILED"
	CodeRateLimited       = "ERR_RATE_LIMITED"
	CodeInternal          = "ERR_INTERNAL"
)

// Error is a structured error with a kind, a stable code and context.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
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
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports kind and code equality.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func newError(kind Kind, code, message string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Cause: cause}
}

// Validation creates an error for a malformed request at the transport edge.
func Validation(code, message string) *Error {
	return newError(KindValidation, code, message, nil)
}

// NotFound creates a not found error.
func NotFound(code, message string) *Error {
	return newError(KindNotFound, code, message, nil)
}

// UnsupportedMedia creates an error for a rejected upload type.
func UnsupportedMedia(code, message string) *Error {
	return newError(KindUnsupportedMedia, code, message, nil)
}

// TooLarge creates an error for an oversized upload.
func TooLarge(code, message string) *Error {
	return newError(KindTooLarge, code, message, nil)
}

// Upstream creates an error for a failed collaborator call.
func Upstream(code, message string, cause error) *Error {
	return newError(KindUpstream, code, message, cause)
}

// Unavailable creates an error for a collaborator that is not configured.
func Unavailable(code, message string) *Error {
	return newError(KindUnavailable, code, message, nil)
}

// RateLimited creates an error for a client over its request budget.
func RateLimited(message string) *Error {
	return newError(KindRateLimited, CodeRateLimited, message, nil)
}

// Config creates a configuration error.
func Config(code, message string, cause error) *Error {
	return newError(KindConfig, code, message, cause)
}

// IO creates an I/O error.
func IO(code, message string, cause error) *Error {
	return newError(KindIO, code, message, cause)
}

// Internal creates an internal error.
func Internal(code, message string, cause error) *Error {
	return newError(KindInternal, code, message, cause)
}

// ErrComponentNotFound creates a component not found error.
func ErrComponentNotFound(id string) *Error {
	return NotFound(CodeComponentNotFound, "component not found: "+id).WithContext("id", id)
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
