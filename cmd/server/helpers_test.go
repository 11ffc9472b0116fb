package main

import (
	"net"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/iscs-gateway/internal/config"
	"github.com/phrazzld/iscs-gateway/internal/platform/logger"
)

// backendConfig points a service section at a running test server.
func backendConfig(t *testing.T, srv *httptest.Server) config.ServiceConfig {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	return config.ServiceConfig{IP: u.Hostname(), Port: port}
}

// unusedPort returns a local port with nothing listening on it.
func unusedPort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func testConfig(t *testing.T, user, product config.ServiceConfig) *config.Config {
	t.Helper()
	return &config.Config{
		UserService:    user,
		ProductService: product,
		OrderService:   config.ServiceConfig{IP: "127.0.0.1", Port: unusedPort(t)},
		Gateway:        config.ServiceConfig{IP: "127.0.0.1", Port: unusedPort(t)},
		Server: config.ServerConfig{
			LogLevel:         "debug",
			ForwardTimeout:   2 * time.Second,
			ReadTimeout:      5 * time.Second,
			WriteTimeout:     5 * time.Second,
			ShutdownTimeout:  2 * time.Second,
			MaxBodyBytes:     1 << 20,
			MaxResponseBytes: 1 << 20,
			RateLimitBurst:   50,
		},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *application {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	app, err := newApplication(cfg, log)
	require.NoError(t, err)
	return app
}
