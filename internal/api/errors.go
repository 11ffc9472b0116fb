package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/iscs-gateway/internal/domain"
)

// MapErrorToStatusCode maps gateway errors to HTTP status codes. Anything
// unrecognised is a 500 so internal error types never shape the response.
func MapErrorToStatusCode(err error) int {
	switch {
	// Local validation failures
	case errors.Is(err, domain.ErrMissingBody),
		errors.Is(err, domain.ErrMalformedJSON),
		errors.Is(err, domain.ErrMissingField),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrIDMismatch),
		errors.Is(err, domain.ErrUnknownCommand):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrRouteNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests

	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented

	// Backend unreachable, timed out or unknown
	case errors.Is(err, domain.ErrUpstreamTransport):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes backend addresses or other internal detail.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrBodyTooLarge):
		return "Request body too large"
	case errors.Is(err, domain.ErrRateLimited):
		return "Rate limit exceeded"
	case errors.Is(err, domain.ErrNotImplemented):
		return "Order placement is not implemented"
	case errors.Is(err, domain.ErrUpstreamTransport):
		return "Upstream service unavailable"
	case errors.Is(err, domain.ErrRouteNotFound):
		return "Not found"
	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		return "Invalid request"
	default:
		return "An unexpected error occurred"
	}
}

// hasEmptyBody reports whether a status is answered without a body. Local
// rejections are signalled by status code alone.
func hasEmptyBody(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusNotFound
}
