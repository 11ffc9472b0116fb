package workload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultTimeout bounds each request sent to the gateway.
const DefaultTimeout = 10 * time.Second

// Runner replays workload commands against the gateway, one at a time.
type Runner struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithHTTPClient replaces the default client.
func WithHTTPClient(hc *http.Client) RunnerOption {
	return func(r *Runner) {
		if hc != nil {
			r.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-line diagnostics.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner sending requests to baseURL, for example
// http://127.0.0.1:14000.
func NewRunner(baseURL string, opts ...RunnerOption) *Runner {
	hc := cleanhttp.DefaultClient()
	hc.Timeout = DefaultTimeout

	r := &Runner{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads a workload from src and executes every line in order. Invalid
// lines and failed requests are recorded in the report and do not stop the
// run; only a read error on src or cancellation of ctx does.
func (r *Runner) Run(ctx context.Context, src io.Reader) (*Report, error) {
	entries, err := ReadAll(src)
	if err != nil {
		return nil, err
	}

	report := &Report{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := Result{Line: e.Line, Input: e.Text}
		if e.Err != nil {
			res.Error = e.Err.Error()
			r.logger.Warn("invalid workload line", slog.Int("line", e.Line), slog.String("error", res.Error))
			report.add(res, true, false)
			continue
		}

		res.Kind = e.Command.Kind.String()
		status, body, err := r.Execute(ctx, e.Command)
		if err != nil {
			res.Error = err.Error()
			r.logger.Error("workload request failed", slog.Int("line", e.Line), slog.String("error", res.Error))
			report.add(res, false, true)
			continue
		}

		res.Status = status
		if isLookup(e.Command.Kind) && status == http.StatusOK {
			res.Response = string(body)
		}
		r.logger.Debug("workload request sent",
			slog.Int("line", e.Line),
			slog.String("kind", res.Kind),
			slog.Int("status", status))
		report.add(res, false, false)
	}
	return report, nil
}

// Execute sends one command and returns the gateway's status and body.
func (r *Runner) Execute(ctx context.Context, cmd Command) (int, []byte, error) {
	call, err := cmd.Request()
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, r.baseURL+call.Path, bytes.NewReader(call.Body))
	if err != nil {
		return 0, nil, fmt.Errorf("build %s request: %w", cmd.Kind, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send %s request: %w", cmd.Kind, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read %s response: %w", cmd.Kind, err)
	}
	return resp.StatusCode, body, nil
}

func isLookup(k Kind) bool {
	return k == KindUserGet || k == KindProductInfo
}
