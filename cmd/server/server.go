package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const idleTimeout = 120 * time.Second

func (app *application) newHTTPServer(handler http.Handler) *http.Server {
	return &http.Server{
		Handler:      handler,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelWarn),
	}
}

// serve runs the gateway on ln, and the admin router on adminLn when it is
// non-nil, until ctx is done or a server fails. In-flight requests are
// given the configured shutdown timeout to complete.
func (app *application) serve(ctx context.Context, ln, adminLn net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	gateway := app.newHTTPServer(app.setupRouter())
	servers := []*http.Server{gateway}

	g.Go(func() error {
		app.logger.Info("Starting server", slog.String("addr", ln.Addr().String()))
		return serveHTTP(gateway, ln)
	})

	if adminLn != nil {
		admin := app.newHTTPServer(app.setupAdminRouter())
		servers = append(servers, admin)

		g.Go(func() error {
			app.logger.Info("Starting admin server", slog.String("addr", adminLn.Addr().String()))
			return serveHTTP(admin, adminLn)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()

		var errs []error
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server error: %w", err)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}

func serveHTTP(srv *http.Server, ln net.Listener) error {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
