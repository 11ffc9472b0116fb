package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/iscs-gateway/internal/platform/metrics"
)

func TestMetricsMiddlewareLabelsByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(m))
	r.Get("/user/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/user/1", "/user/2", "/orders/1", "/random/path"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP iscs_http_requests_total Total number of HTTP requests handled by the gateway
# TYPE iscs_http_requests_total counter
iscs_http_requests_total{method="GET",route="/user/{id:[0-9]+}",status="200"} 2
iscs_http_requests_total{method="GET",route="unmatched",status="404"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "iscs_http_requests_total"))

	inFlight, err := testutil.GatherAndCount(reg, "iscs_http_requests_in_flight")
	require.NoError(t, err)
	assert.Equal(t, 1, inFlight)
}

func TestMetricsMiddlewareWithoutRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	handler := NewMetricsMiddleware(metrics.New(reg))(http.NotFoundHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	count, err := testutil.GatherAndCount(reg, "iscs_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetricsMiddlewareNilMetrics(t *testing.T) {
	handler := NewMetricsMiddleware(nil)(http.NotFoundHandler())
	w := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
