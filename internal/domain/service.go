package domain

import (
	"fmt"
	"net"
	"strconv"
)

// Service names a backend domain service.
type Service string

// Backend services reachable through the gateway.
const (
	ServiceUser    Service = "user"
	ServiceProduct Service = "product"
	ServiceOrder   Service = "order"
)

// Services lists every backend service in a stable order.
func Services() []Service {
	return []Service{ServiceUser, ServiceProduct, ServiceOrder}
}

// IsValid reports whether s is a known backend service.
func (s Service) IsValid() bool {
	switch s {
	case ServiceUser, ServiceProduct, ServiceOrder:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Service) String() string {
	return string(s)
}

// ServiceAddress is the network location of a backend service.
type ServiceAddress struct {
	Host string
	Port int
}

// Addr returns the address in host:port form.
func (a ServiceAddress) Addr() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// BaseURL returns the http base URL of the service without a trailing slash.
func (a ServiceAddress) BaseURL() string {
	return "http://" + a.Addr()
}

// EndpointTable maps each backend service to its address. It is built once
// at startup and is read-only afterwards, so it can be shared by concurrent
// handlers without locking.
type EndpointTable struct {
	addrs map[Service]ServiceAddress
}

// NewEndpointTable copies addrs into a new table. Every entry must name a
// known service and carry a host and a port in range.
func NewEndpointTable(addrs map[Service]ServiceAddress) (*EndpointTable, error) {
	t := &EndpointTable{addrs: make(map[Service]ServiceAddress, len(addrs))}
	for svc, addr := range addrs {
		if !svc.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownService, svc)
		}
		if addr.Host == "" {
			return nil, fmt.Errorf("endpoint for %s has no host", svc)
		}
		if addr.Port <= 0 || addr.Port > 65535 {
			return nil, fmt.Errorf("endpoint for %s has invalid port %d", svc, addr.Port)
		}
		t.addrs[svc] = addr
	}
	return t, nil
}

// Lookup returns the address registered for svc.
func (t *EndpointTable) Lookup(svc Service) (ServiceAddress, bool) {
	if t == nil {
		return ServiceAddress{}, false
	}
	addr, ok := t.addrs[svc]
	return addr, ok
}
