package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/iscs-gateway/internal/api/shared"
	"github.com/phrazzld/iscs-gateway/internal/domain"
	"github.com/phrazzld/iscs-gateway/internal/downstream"
	"github.com/phrazzld/iscs-gateway/internal/platform/logger"
	"github.com/phrazzld/iscs-gateway/internal/platform/metrics"
	"github.com/phrazzld/iscs-gateway/internal/redact"
	"github.com/phrazzld/iscs-gateway/internal/validation"
)

// Forwarder sends a request to a backend service.
type Forwarder interface {
	Forward(ctx context.Context, req downstream.Request) (*downstream.Response, error)
}

// PayloadValidator decides whether a POST body may be forwarded.
type PayloadValidator interface {
	Validate(service domain.Service, body map[string]any) validation.Outcome
}

// GatewayHandler serves the gateway routes. Each request is validated
// locally and, when admissible, forwarded to exactly one backend whose
// answer is relayed verbatim.
type GatewayHandler struct {
	forwarder    Forwarder
	validator    PayloadValidator
	metrics      *metrics.Metrics
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewGatewayHandler creates a new GatewayHandler. m may be nil; a
// non-positive maxBodyBytes leaves request bodies unbounded.
func NewGatewayHandler(
	forwarder Forwarder,
	validator PayloadValidator,
	m *metrics.Metrics,
	maxBodyBytes int64,
	logger *slog.Logger,
) *GatewayHandler {
	if forwarder == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("forwarder cannot be nil for GatewayHandler")
	}
	if validator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("validator cannot be nil for GatewayHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GatewayHandler{
		forwarder:    forwarder,
		validator:    validator,
		metrics:      m,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.With(slog.String("component", "gateway_handler")),
	}
}

// GetEntity handles GET /{service}/{id}.
// The optional body must repeat the path id; the backend receives a GET for
// the same path with no body.
func (h *GatewayHandler) GetEntity(service domain.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		id := getPathID(r)

		body, err := shared.ReadBody(w, r, h.maxBodyBytes)
		if err != nil {
			h.reject(w, r, service, err)
			return
		}

		if err := checkBodyID(body, id); err != nil {
			h.reject(w, r, service, err)
			return
		}

		log.Debug("forwarding lookup",
			slog.String("service", service.String()),
			slog.String("id", id))

		h.forward(w, r, downstream.Request{
			Service: service,
			Method:  http.MethodGet,
			Path:    "/" + service.String() + "/" + id,
		})
	}
}

// MutateEntity handles POST /{service}.
// The body must carry a known command and the fields that command requires.
// Accepted bodies are forwarded byte for byte.
func (h *GatewayHandler) MutateEntity(service domain.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContextOrDefault(r.Context(), h.logger)

		body, err := shared.ReadBody(w, r, h.maxBodyBytes)
		if err != nil {
			h.reject(w, r, service, err)
			return
		}
		if len(body) == 0 {
			h.reject(w, r, service, domain.ErrMissingBody)
			return
		}

		payload, err := shared.DecodeObject(body)
		if err != nil {
			h.reject(w, r, service, err)
			return
		}

		outcome := h.validator.Validate(service, payload)
		if !outcome.Accepted() {
			h.reject(w, r, service, outcome.Err)
			return
		}

		log.Debug("forwarding command",
			slog.String("service", service.String()),
			slog.Any("payload", redact.Fields(outcome.Payload)))

		h.forward(w, r, downstream.Request{
			Service: service,
			Method:  http.MethodPost,
			Path:    "/" + service.String(),
			Body:    body,
		})
	}
}

// PlaceOrder handles POST /order. The route is reserved; nothing is forwarded.
func (h *GatewayHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	h.reject(w, r, domain.ServiceOrder, domain.ErrNotImplemented)
}

// NotFound answers every request no route accepts, including known paths
// with the wrong method, with 404 and no body.
func (h *GatewayHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("no route")
	shared.RespondEmpty(w, http.StatusNotFound)
}

// forward performs the single downstream call for a request and relays the
// result. Transport failures become 502.
func (h *GatewayHandler) forward(w http.ResponseWriter, r *http.Request, req downstream.Request) {
	resp, err := h.forwarder.Forward(r.Context(), req)
	if err != nil {
		if errors.Is(r.Context().Err(), context.Canceled) {
			logger.FromContextOrDefault(r.Context(), h.logger).Debug("client went away during forward",
				slog.String("service", req.Service.String()))
		}
		h.respondError(w, r, err)
		return
	}
	shared.Relay(w, resp.StatusCode, resp.Body)
}

// reject records a request refused before forwarding and answers it.
func (h *GatewayHandler) reject(w http.ResponseWriter, r *http.Request, service domain.Service, err error) {
	reason := domain.Reason(err)
	h.metrics.ValidationRejected(service.String(), reason)

	attrs := []any{
		slog.String("service", service.String()),
		slog.String("reason", reason),
		slog.String("error", redact.Error(err)),
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) && vErr.Field != "" {
		attrs = append(attrs, slog.String("field", vErr.Field))
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("request rejected", attrs...)

	h.respondError(w, r, err)
}

func (h *GatewayHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	if hasEmptyBody(status) {
		shared.RespondEmpty(w, status)
		return
	}
	shared.RespondWithErrorAndLogTo(w, r, h.logger, status, GetSafeErrorMessage(err), err)
}
