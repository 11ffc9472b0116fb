package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/iscs-gateway/internal/platform/logger"
	"github.com/phrazzld/iscs-gateway/internal/redact"
)

// ErrorResponse is the body sent for gateway-originated failures that carry
// a message (413, 429, 501, 502). Local validation rejections carry no body.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"-"` // Not serialized to JSON, used for logging
	RequestID string `json:"request_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Error("failed to encode JSON response", "error", err)
	}
}

// Relay writes a backend's status and body back to the client unchanged.
// The content type is always application/json, whatever the backend sent.
func Relay(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(body) > 0 {
		_, _ = w.Write(body)
	}
}

// RespondEmpty writes a status line with no body.
func RespondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// RespondWithError writes a JSON error response with the given status code and message.
// It also sets the RequestID from the request context if available.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	requestID := logger.RequestID(r.Context())

	logger.FromContextOrDefault(r.Context(), slog.Default()).Debug("sending error response",
		"status_code", status,
		"message", message,
		"path", r.URL.Path,
		"method", r.Method)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:     message,
		Code:      status,
		RequestID: requestID,
	})
}

// RespondWithErrorAndLog writes a JSON error response and logs the detailed,
// redacted error. Only userMessage reaches the client.
//
// 5xx responses are logged at ERROR, except 501 which is expected and goes to
// WARN together with 429. Everything else is DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	RespondWithErrorAndLogTo(w, r, nil, status, userMessage, err)
}

// RespondWithErrorAndLogTo is RespondWithErrorAndLog with the logger used
// when the request carries none. A nil fallback means slog.Default().
func RespondWithErrorAndLogTo(
	w http.ResponseWriter,
	r *http.Request,
	fallback *slog.Logger,
	status int,
	userMessage string,
	err error,
) {
	requestID := logger.RequestID(r.Context())

	logAttrs := []slog.Attr{
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	log := logger.FromContextOrDefault(r.Context(), fallback)
	log.LogAttrs(r.Context(), errorLogLevel(status), "API error response", logAttrs...)

	RespondWithJSON(w, r, status, ErrorResponse{
		Error:     userMessage,
		Code:      status,
		RequestID: requestID,
	})
}

func errorLogLevel(status int) slog.Level {
	switch {
	case status == http.StatusNotImplemented, status == http.StatusTooManyRequests:
		return slog.LevelWarn
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
