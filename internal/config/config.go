package config

import (
	"fmt"
	"time"

	"github.com/phrazzld/iscs-gateway/internal/domain"
)

// Config holds all gateway configuration.
// The four address sections are required; the server section is optional
// and falls back to defaults.
type Config struct {
	UserService    ServiceConfig `mapstructure:"userservice"`
	ProductService ServiceConfig `mapstructure:"productservice"`
	OrderService   ServiceConfig `mapstructure:"orderservice"`
	// Gateway is the address the gateway itself listens on. The key name is
	// shared with the backend services' configuration documents.
	Gateway ServiceConfig `mapstructure:"interservicecommunication"`
	Server  ServerConfig  `mapstructure:"server"`
}

// ServiceConfig is the network location of one service. Older configuration
// documents name the host "ip"; either key is accepted.
type ServiceConfig struct {
	Host string `mapstructure:"host" validate:"required_without=IP"`
	IP   string `mapstructure:"ip"`
	Port int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
}

// ServerConfig contains the gateway's runtime settings.
type ServerConfig struct {
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ForwardTimeout  time.Duration `mapstructure:"forward_timeout" validate:"gt=0"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
	// MaxResponseBytes bounds a relayed backend body; larger ones are a 502.
	MaxResponseBytes int64 `mapstructure:"max_response_bytes" validate:"gt=0"`
	// RateLimit is in requests per second; zero disables limiting.
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gte=1"`
	// AdminPort serves /metrics and /healthz; zero disables the listener.
	AdminPort int `mapstructure:"admin_port" validate:"gte=0,lt=65536"`
}

// Address returns the service location as a domain value.
func (s ServiceConfig) Address() domain.ServiceAddress {
	host := s.Host
	if host == "" {
		host = s.IP
	}
	return domain.ServiceAddress{Host: host, Port: s.Port}
}

// Endpoints builds the read-only endpoint table for the backend services.
func (c *Config) Endpoints() (*domain.EndpointTable, error) {
	table, err := domain.NewEndpointTable(map[domain.Service]domain.ServiceAddress{
		domain.ServiceUser:    c.UserService.Address(),
		domain.ServiceProduct: c.ProductService.Address(),
		domain.ServiceOrder:   c.OrderService.Address(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build endpoint table: %w", err)
	}
	return table, nil
}

// ListenAddr is the host:port the gateway binds to.
func (c *Config) ListenAddr() string {
	return c.Gateway.Address().Addr()
}

// AdminAddr is the host:port of the admin listener, or "" when disabled.
// It binds to the same host as the gateway.
func (c *Config) AdminAddr() string {
	if c.Server.AdminPort == 0 {
		return ""
	}
	return domain.ServiceAddress{Host: c.Gateway.Address().Host, Port: c.Server.AdminPort}.Addr()
}
