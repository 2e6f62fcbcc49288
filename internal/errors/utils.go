package errors

import (
	"errors"
	"net/http"
	"strings"
)

// Wrap wraps an existing error with kind and code. An *Error cause keeps its
// context.
func Wrap(err error, kind Kind, code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := newError(kind, code, message, err)
	var e *Error
	if errors.As(err, &e) && e.Context != nil {
		wrapped.Context = make(map[string]any, len(e.Context))
		for k, v := range e.Context {
			wrapped.Context[k] = v
		}
	}
	return wrapped
}

// HTTPStatus maps the kind of err to a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindUpstream:
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ErrorPayload is the JSON body returned for failed requests.
type ErrorPayload struct {
	Error   string         `json:"error"`
	Kind    Kind           `json:"kind"`
	Code    string         `json:"code,omitempty"`
	Details string         `json:"details,omitempty"`
	Context map[string]any `json:"context,omitempty"`
}

// Payload builds the response body for err.
func Payload(err error) ErrorPayload {
	var e *Error
	if !errors.As(err, &e) {
		return ErrorPayload{Error: "internal error", Kind: KindInternal, Details: err.Error()}
	}

	p := ErrorPayload{Error: e.Message, Kind: e.Kind, Code: e.Code, Context: e.Context}
	if e.Cause != nil {
		p.Details = e.Cause.Error()
	}
	return p
}

// FormatError formats an error for CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Error())
	return b.String()
}

// CombineErrors joins the non-nil errors, returning nil when there are none.
func CombineErrors(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return errors.Join(nonNil...)
	}
}
