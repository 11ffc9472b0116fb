package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/iscs-gateway/internal/config"
	"github.com/phrazzld/iscs-gateway/internal/downstream"
	"github.com/phrazzld/iscs-gateway/internal/platform/metrics"
	"github.com/phrazzld/iscs-gateway/internal/validation"
)

// application holds the gateway's shared dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	forwarder *downstream.Client
	validator *validation.Validator
}

// newApplication wires the gateway from a validated configuration.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	endpoints, err := cfg.Endpoints()
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	app := &application{
		config:   cfg,
		logger:   logger,
		registry: registry,
		metrics:  m,
		forwarder: downstream.NewClient(endpoints, logger,
			downstream.WithTimeout(cfg.Server.ForwardTimeout),
			downstream.WithMaxResponseBytes(cfg.Server.MaxResponseBytes),
			downstream.WithMetrics(m)),
		validator: validation.New(),
	}

	for _, svc := range []struct {
		name string
		cfg  config.ServiceConfig
	}{
		{"user", cfg.UserService},
		{"product", cfg.ProductService},
		{"order", cfg.OrderService},
	} {
		logger.Info("backend configured",
			slog.String("service", svc.name),
			slog.String("address", svc.cfg.Address().Addr()))
	}

	logger.Info("Application initialized successfully",
		slog.String("listen", cfg.ListenAddr()),
		slog.String("admin", cfg.AdminAddr()),
		slog.Duration("forward_timeout", cfg.Server.ForwardTimeout),
		slog.Int64("max_body_bytes", cfg.Server.MaxBodyBytes),
		slog.Float64("rate_limit", cfg.Server.RateLimit))
	return app, nil
}

// Run binds the gateway listener, and the admin listener when configured,
// and serves until ctx is done.
func (app *application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.ListenAddr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.config.ListenAddr(), err)
	}

	var adminLn net.Listener
	if addr := app.config.AdminAddr(); addr != "" {
		adminLn, err = net.Listen("tcp", addr)
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
	}

	return app.serve(ctx, ln, adminLn)
}
