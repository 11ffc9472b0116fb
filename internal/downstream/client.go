package downstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/phrazzld/iscs-gateway/internal/domain"
	"github.com/phrazzld/iscs-gateway/internal/platform/logger"
	"github.com/phrazzld/iscs-gateway/internal/platform/metrics"
	"github.com/phrazzld/iscs-gateway/internal/redact"
)

// DefaultTimeout bounds every downstream call unless configured otherwise.
const DefaultTimeout = 10 * time.Second

// DefaultMaxResponseBytes caps the size of a relayed backend response.
const DefaultMaxResponseBytes = 10 << 20

// ErrResponseTooLarge is the cause of a TransportError for a backend body
// over the response limit. Such a body is never relayed in part.
var ErrResponseTooLarge = errors.New("backend response exceeds limit")

// Request describes one call to a backend service.
type Request struct {
	Service domain.Service
	Method  string
	// Path is the absolute path on the backend, e.g. /user/7.
	Path string
	// Query is sent as URL query parameters on GET.
	Query url.Values
	// Body is sent as a JSON request body on POST.
	Body []byte
}

// Response is a backend's answer, whatever its status code.
type Response struct {
	StatusCode int
	Body       []byte
}

// TransportError reports that a backend could not be reached or did not
// answer in time. It wraps domain.ErrUpstreamTransport.
type TransportError struct {
	Service domain.Service
	URL     string
	Cause   error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("forward to %s service at %s: %v", e.Service, e.URL, e.Cause)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{domain.ErrUpstreamTransport, e.Cause}
}

// Timeout reports whether the call ran out of time.
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Cause, context.DeadlineExceeded)
}

// Client performs single, unretried HTTP calls to the backend services.
// It is safe for concurrent use.
type Client struct {
	endpoints  *domain.EndpointTable
	httpClient *http.Client
	timeout    time.Duration
	maxBody    int64
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the pooled HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxResponseBytes sets the largest backend body that is relayed.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithMetrics records forward outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client resolving service addresses through endpoints.
func NewClient(endpoints *domain.EndpointTable, log *slog.Logger, opts ...Option) *Client {
	if endpoints == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("endpoints cannot be nil for downstream Client")
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		endpoints:  endpoints,
		httpClient: cleanhttp.DefaultPooledClient(),
		timeout:    DefaultTimeout,
		maxBody:    DefaultMaxResponseBytes,
		logger:     log.With(slog.String("component", "downstream_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Forward sends req to its backend and returns the backend's status code
// and body. Any backend status, including 4xx and 5xx, is a successful
// forward. Network failures, timeouts and cancellation of ctx are returned
// as *TransportError; a Response and an error are never returned together.
func (c *Client) Forward(ctx context.Context, req Request) (*Response, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	addr, ok := c.endpoints.Lookup(req.Service)
	if !ok {
		return nil, &TransportError{Service: req.Service, Cause: domain.ErrUnknownService}
	}

	target := addr.BaseURL() + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if req.Method != http.MethodGet && req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, &TransportError{Service: req.Service, URL: target, Cause: err}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if id := logger.RequestID(ctx); id != "" {
		httpReq.Header.Set("X-Request-Id", id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.Forwarded(req.Service.String(), metrics.OutcomeTransport, time.Since(start))
		tErr := &TransportError{Service: req.Service, URL: target, Cause: err}
		// The caller reports the failure to the client and logs it there.
		log.Debug("downstream call failed",
			slog.String("service", req.Service.String()),
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Bool("timeout", tErr.Timeout()),
			slog.String("error", redact.Error(err)))
		return nil, tErr
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err == nil && int64(len(respBody)) > c.maxBody {
		err = fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, c.maxBody)
	}
	if err != nil {
		c.metrics.Forwarded(req.Service.String(), metrics.OutcomeTransport, time.Since(start))
		log.Debug("failed to read downstream response",
			slog.String("service", req.Service.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("error", redact.Error(err)))
		return nil, &TransportError{Service: req.Service, URL: target, Cause: err}
	}

	elapsed := time.Since(start)
	c.metrics.Forwarded(req.Service.String(), metrics.OutcomeForwarded, elapsed)
	log.Debug("downstream call completed",
		slog.String("service", req.Service.String()),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", elapsed))

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}
