package middleware

import (
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/phrazzld/iscs-gateway/internal/api/shared"
	"github.com/phrazzld/iscs-gateway/internal/domain"
	"github.com/phrazzld/iscs-gateway/internal/platform/metrics"
)

// NewRateLimitMiddleware sheds requests beyond limit per second, allowing
// bursts of up to burst requests, with 429 Too Many Requests. A non-positive
// limit disables limiting.
func NewRateLimitMiddleware(limit float64, burst int, m *metrics.Metrics) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(limit), burst)
	limitHeader := strconv.Itoa(int(limit))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				m.RateLimited()
				w.Header().Set("Retry-After", "1")
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					"Rate limit exceeded", domain.ErrRateLimited)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limitHeader)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
			next.ServeHTTP(w, r)
		})
	}
}
