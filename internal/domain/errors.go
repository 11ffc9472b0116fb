package domain

import (
	"errors"
	"fmt"
)

// Gateway errors. Validation errors are resolved locally and never reach a
// backend; the upstream errors are produced by the downstream client.
var (
	// ErrMissingBody is returned when a route that requires a body receives none.
	ErrMissingBody = errors.New("request body is required")

	// ErrMalformedJSON is returned when a body is present but is not a JSON object.
	ErrMalformedJSON = errors.New("malformed JSON body")

	// ErrMissingField is returned when a field required for the command is
	// absent, null or empty.
	ErrMissingField = errors.New("required field missing")

	// ErrInvalidID is returned when an id is not a non-negative integer in textual form.
	ErrInvalidID = errors.New("invalid ID")

	// ErrIDMismatch is returned when the path id and the body id disagree.
	ErrIDMismatch = errors.New("path ID does not match body ID")

	// ErrUnknownCommand is returned when the command is not create, update or delete.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrRouteNotFound is returned when no route matches method and path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrBodyTooLarge is returned when the request body exceeds the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")

	// ErrRateLimited is returned when the gateway sheds load.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNotImplemented is returned by routes that are reserved but not served yet.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUpstreamTransport is returned when a backend cannot be reached or
	// does not answer in time.
	ErrUpstreamTransport = errors.New("upstream transport failure")

	// ErrUnknownService is returned when a service name has no endpoint.
	ErrUnknownService = errors.New("unknown service")
)

// ValidationError describes why a request was rejected. It wraps one of the
// validation sentinels so callers can use errors.Is.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

// NewValidationError creates a ValidationError for field wrapping err.
func NewValidationError(field, msg string, err error) *ValidationError {
	return &ValidationError{Field: field, Msg: msg, Err: err}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Field, e.Msg, e.Err)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Reason returns the short reason code used in logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingBody):
		return "missing_body"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, ErrMissingField):
		return "missing_field"
	case errors.Is(err, ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, ErrIDMismatch):
		return "id_mismatch"
	case errors.Is(err, ErrUnknownCommand):
		return "unknown_command"
	case errors.Is(err, ErrRouteNotFound):
		return "route_not_found"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrNotImplemented):
		return "not_implemented"
	case errors.Is(err, ErrUpstreamTransport):
		return "upstream_transport"
	default:
		return "internal"
	}
}
