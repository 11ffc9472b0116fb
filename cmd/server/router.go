package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/iscs-gateway/internal/api"
	apiMiddleware "github.com/phrazzld/iscs-gateway/internal/api/middleware"
)

// setupRouter creates the gateway router with its middleware chain.
func (app *application) setupRouter() http.Handler {
	handler := api.NewGatewayHandler(
		app.forwarder,
		app.validator,
		app.metrics,
		app.config.Server.MaxBodyBytes,
		app.logger,
	)

	return api.NewRouter(handler,
		apiMiddleware.NewRequestIDMiddleware(app.logger),
		middleware.RealIP,
		apiMiddleware.NewMetricsMiddleware(app.metrics),
		middleware.Recoverer,
		apiMiddleware.NewRateLimitMiddleware(
			app.config.Server.RateLimit,
			app.config.Server.RateLimitBurst,
			app.metrics,
		),
		apiMiddleware.RequestLogger,
	)
}

// setupAdminRouter serves metrics and liveness on the admin listener, away
// from the gateway's route table.
func (app *application) setupAdminRouter() http.Handler {
	r := chi.NewRouter()

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{
		Registry: app.registry,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
