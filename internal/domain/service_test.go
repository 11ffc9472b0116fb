package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAddress(t *testing.T) {
	addr := ServiceAddress{Host: "127.0.0.1", Port: 14001}
	assert.Equal(t, "127.0.0.1:14001", addr.Addr())
	assert.Equal(t, "http://127.0.0.1:14001", addr.BaseURL())

	v6 := ServiceAddress{Host: "::1", Port: 80}
	assert.Equal(t, "[::1]:80", v6.Addr())
}

func TestNewEndpointTable(t *testing.T) {
	tests := []struct {
		name    string
		addrs   map[Service]ServiceAddress
		wantErr bool
	}{
		{
			name: "all services",
			addrs: map[Service]ServiceAddress{
				ServiceUser:    {Host: "localhost", Port: 14001},
				ServiceProduct: {Host: "localhost", Port: 15000},
				ServiceOrder:   {Host: "localhost", Port: 14000},
			},
		},
		{
			name:    "unknown service",
			addrs:   map[Service]ServiceAddress{"inventory": {Host: "localhost", Port: 1}},
			wantErr: true,
		},
		{
			name:    "missing host",
			addrs:   map[Service]ServiceAddress{ServiceUser: {Port: 1}},
			wantErr: true,
		},
		{
			name:    "port out of range",
			addrs:   map[Service]ServiceAddress{ServiceUser: {Host: "localhost", Port: 70000}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := NewEndpointTable(tt.addrs)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, table)
				return
			}
			require.NoError(t, err)
			for svc, want := range tt.addrs {
				got, ok := table.Lookup(svc)
				assert.True(t, ok)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestEndpointTableIsolatedFromInput(t *testing.T) {
	addrs := map[Service]ServiceAddress{ServiceUser: {Host: "a", Port: 1}}
	table, err := NewEndpointTable(addrs)
	require.NoError(t, err)

	addrs[ServiceUser] = ServiceAddress{Host: "b", Port: 2}
	got, ok := table.Lookup(ServiceUser)
	require.True(t, ok)
	assert.Equal(t, "a", got.Host)

	_, ok = table.Lookup(ServiceOrder)
	assert.False(t, ok)

	var nilTable *EndpointTable
	_, ok = nilTable.Lookup(ServiceUser)
	assert.False(t, ok)
}

func TestCommandIsValid(t *testing.T) {
	assert.True(t, CommandCreate.IsValid())
	assert.True(t, CommandUpdate.IsValid())
	assert.True(t, CommandDelete.IsValid())
	assert.False(t, Command("Create").IsValid())
	assert.False(t, Command("archive").IsValid())
	assert.False(t, Command("").IsValid())
}

func TestDigits(t *testing.T) {
	assert.True(t, IsDigits("0"))
	assert.True(t, IsDigits("0007"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("-1"))
	assert.False(t, IsDigits("1.0"))
	assert.False(t, IsDigits("1e3"))
	assert.False(t, IsDigits("٣"))

	assert.Equal(t, "7", NormalizeDigits("0007"))
	assert.Equal(t, "0", NormalizeDigits("000"))
	assert.Equal(t, "120", NormalizeDigits("120"))
}

func TestReason(t *testing.T) {
	wrapped := NewValidationError(FieldPassword, "is required", ErrMissingField)
	assert.True(t, errors.Is(wrapped, ErrMissingField))
	assert.Equal(t, "missing_field", Reason(wrapped))
	assert.Equal(t, "password is required: required field missing", wrapped.Error())

	assert.Equal(t, "upstream_transport", Reason(fmt.Errorf("forward: %w", ErrUpstreamTransport)))
	assert.Equal(t, "internal", Reason(errors.New("boom")))
	assert.Equal(t, "", Reason(nil))
}
