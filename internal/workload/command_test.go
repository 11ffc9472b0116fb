package workload

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRequest(t *testing.T) {
	tests := []struct {
		line   string
		method string
		path   string
		body   string
	}{
		{
			line:   "USER create 1 alice a@x.io pw",
			method: http.MethodPost,
			path:   "/user",
			body:   `{"command":"create","id":1,"username":"alice","email":"a@x.io","password":"pw"}`,
		},
		{
			line:   "USER update 1 email:b@x.io",
			method: http.MethodPost,
			path:   "/user",
			body:   `{"command":"update","id":1,"email":"b@x.io"}`,
		},
		{
			line:   "USER delete 1 alice a@x.io pw",
			method: http.MethodPost,
			path:   "/user",
			body:   `{"command":"delete","id":1,"username":"alice","email":"a@x.io","password":"pw"}`,
		},
		{
			line:   "USER get 42",
			method: http.MethodGet,
			path:   "/user/42",
			body:   `{"id":42}`,
		},
		{
			line:   "PRODUCT create 3 lamp desk 9.5 4",
			method: http.MethodPost,
			path:   "/product",
			body:   `{"command":"create","id":3,"name":"lamp","description":"desk","price":9.5,"quantity":4}`,
		},
		{
			line:   "PRODUCT update 3",
			method: http.MethodPost,
			path:   "/product",
			body:   `{"command":"update","id":3}`,
		},
		{
			line:   "PRODUCT update 3 quantity:0",
			method: http.MethodPost,
			path:   "/product",
			body:   `{"command":"update","id":3,"quantity":0}`,
		},
		{
			line:   "PRODUCT delete 3 lamp 9.5 4",
			method: http.MethodPost,
			path:   "/product",
			body:   `{"command":"delete","id":3,"name":"lamp","price":9.5,"quantity":4}`,
		},
		{
			line:   "PRODUCT info 3",
			method: http.MethodGet,
			path:   "/product/3",
			body:   `{"id":3}`,
		},
		{
			line:   "ORDER place 3 1 2",
			method: http.MethodPost,
			path:   "/order",
			body:   `{"command":"place order","product_id":3,"user_id":1,"quantity":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := Parse(tt.line)
			require.NoError(t, err)

			call, err := cmd.Request()
			require.NoError(t, err)
			assert.Equal(t, tt.method, call.Method)
			assert.Equal(t, tt.path, call.Path)
			assert.JSONEq(t, tt.body, string(call.Body))
		})
	}
}

func TestCommandRequestUnknownKind(t *testing.T) {
	_, err := Command{}.Request()
	assert.Error(t, err)

	_, err = Command{Kind: Kind(99), Args: LookupArgs{ID: 1}}.Request()
	assert.Error(t, err)
}

func TestCommandRequestRejectsForeignArgs(t *testing.T) {
	tests := []Command{
		{Kind: KindUserGet, Args: ProductCreateArgs{ID: 1, Price: 2}},
		{Kind: KindUserCreate, Args: UserUpdateArgs{ID: 1}},
		{Kind: KindProductDelete, Args: ProductCreateArgs{ID: 1}},
		{Kind: KindOrderPlace, Args: LookupArgs{ID: 1}},
		{Kind: KindProductInfo},
	}

	for _, cmd := range tests {
		t.Run(cmd.Kind.String(), func(t *testing.T) {
			_, err := cmd.Request()
			assert.Error(t, err)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "user_create", KindUserCreate.String())
	assert.Equal(t, "order_place", KindOrderPlace.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
