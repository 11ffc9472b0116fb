package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/iscs-gateway/internal/domain"
)

const validConfig = `{
  "UserService": {"ip": "127.0.0.1", "port": 14001},
  "ProductService": {"host": "products.local", "port": 15000},
  "OrderService": {"ip": "127.0.0.1", "port": 14000},
  "InterServiceCommunication": {"ip": "127.0.0.1", "port": 14002}
}`

// writeConfig writes content to a file in a temporary directory and returns its path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write config file")
	return path
}

// TestLoadDefaults verifies that server settings fall back to their defaults
// when the document only supplies addresses.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", validConfig))

	require.NoError(t, err, "Load() should not return an error for a valid document")
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.Server.ForwardTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxResponseBytes)
	assert.Zero(t, cfg.Server.RateLimit)
	assert.Zero(t, cfg.Server.AdminPort)
	assert.Equal(t, "", cfg.AdminAddr())
}

// TestLoadAddresses verifies both the host and legacy ip keys.
func TestLoadAddresses(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", validConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.ServiceAddress{Host: "127.0.0.1", Port: 14001}, cfg.UserService.Address())
	assert.Equal(t, domain.ServiceAddress{Host: "products.local", Port: 15000}, cfg.ProductService.Address())
	assert.Equal(t, "127.0.0.1:14002", cfg.ListenAddr())

	table, err := cfg.Endpoints()
	require.NoError(t, err)
	order, ok := table.Lookup(domain.ServiceOrder)
	require.True(t, ok)
	assert.Equal(t, 14000, order.Port)
}

// TestLoadServerSection verifies explicit server settings, including durations.
func TestLoadServerSection(t *testing.T) {
	content := `{
  "UserService": {"ip": "127.0.0.1", "port": 14001},
  "ProductService": {"ip": "127.0.0.1", "port": 15000},
  "OrderService": {"ip": "127.0.0.1", "port": 14000},
  "InterServiceCommunication": {"ip": "0.0.0.0", "port": 14002},
  "server": {
    "log_level": "debug",
    "forward_timeout": "2s",
    "max_body_bytes": 512,
    "max_response_bytes": 4096,
    "rate_limit": 25,
    "admin_port": 9090
  }
}`
	cfg, err := Load(writeConfig(t, "config.json", content))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Server.ForwardTimeout)
	assert.Equal(t, int64(512), cfg.Server.MaxBodyBytes)
	assert.Equal(t, int64(4096), cfg.Server.MaxResponseBytes)
	assert.Equal(t, 25.0, cfg.Server.RateLimit)
	assert.Equal(t, "0.0.0.0:9090", cfg.AdminAddr())
}

// TestLoadYAML verifies that the document format follows the file extension.
func TestLoadYAML(t *testing.T) {
	content := `
UserService: {host: users, port: 1}
ProductService: {host: products, port: 2}
OrderService: {host: orders, port: 3}
InterServiceCommunication: {host: localhost, port: 4}
`
	cfg, err := Load(writeConfig(t, "config.yaml", content))
	require.NoError(t, err)
	assert.Equal(t, "users", cfg.UserService.Address().Host)
}

// TestLoadFromEnv verifies that environment variables override the document.
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ISCS_USERSERVICE_PORT", "24001")
	t.Setenv("ISCS_SERVER_LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, "config.json", validConfig))
	require.NoError(t, err)

	assert.Equal(t, 24001, cfg.UserService.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
}

// TestLoadValidationErrors verifies that incomplete documents are rejected.
func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing order service",
			content: `{
  "UserService": {"ip": "127.0.0.1", "port": 14001},
  "ProductService": {"ip": "127.0.0.1", "port": 15000},
  "InterServiceCommunication": {"ip": "127.0.0.1", "port": 14002}
}`,
		},
		{
			name: "missing host",
			content: `{
  "UserService": {"port": 14001},
  "ProductService": {"ip": "127.0.0.1", "port": 15000},
  "OrderService": {"ip": "127.0.0.1", "port": 14000},
  "InterServiceCommunication": {"ip": "127.0.0.1", "port": 14002}
}`,
		},
		{
			name: "port out of range",
			content: `{
  "UserService": {"ip": "127.0.0.1", "port": 99999},
  "ProductService": {"ip": "127.0.0.1", "port": 15000},
  "OrderService": {"ip": "127.0.0.1", "port": 14000},
  "InterServiceCommunication": {"ip": "127.0.0.1", "port": 14002}
}`,
		},
		{
			name: "invalid log level",
			content: `{
  "UserService": {"ip": "127.0.0.1", "port": 14001},
  "ProductService": {"ip": "127.0.0.1", "port": 15000},
  "OrderService": {"ip": "127.0.0.1", "port": 14000},
  "InterServiceCommunication": {"ip": "127.0.0.1", "port": 14002},
  "server": {"log_level": "verbose"}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "config.json", tt.content))
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

// TestLoadMissingFile verifies that a missing document is an error.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
