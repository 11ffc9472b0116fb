package workload

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{name: "user create", line: "USER create 1 alice a@x.io pw", kind: KindUserCreate},
		{name: "user update no fields", line: "USER update 1", kind: KindUserUpdate},
		{name: "user update fields", line: "USER update 1 email:b@x.io password:new", kind: KindUserUpdate},
		{name: "user delete", line: "USER delete 1 alice a@x.io pw", kind: KindUserDelete},
		{name: "user get", line: "USER get 1", kind: KindUserGet},
		{name: "product create", line: "PRODUCT create 3 lamp desk-lamp 9.99 4", kind: KindProductCreate},
		{name: "product update", line: "PRODUCT update 3 price:12.5", kind: KindProductUpdate},
		{name: "product delete", line: "PRODUCT delete 3 lamp 9.99 4", kind: KindProductDelete},
		{name: "product delete uppercase action", line: "PRODUCT DELETE 3 lamp 9.99 4", kind: KindProductDelete},
		{name: "product info", line: "PRODUCT info 3", kind: KindProductInfo},
		{name: "order place", line: "ORDER place 3 1 2", kind: KindOrderPlace},
		{name: "mixed case keywords", line: "user Get 5", kind: KindUserGet},
		{name: "extra whitespace", line: "  USER   get\t9  ", kind: KindUserGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, cmd.Kind)
		})
	}
}

func TestParseArgs(t *testing.T) {
	price, qty := 12.5, int64(0)
	email := "bob@x.io"

	tests := []struct {
		line string
		want Args
	}{
		{
			line: "PRODUCT create 3 lamp desk-lamp 9.99 4",
			want: ProductCreateArgs{ID: 3, Name: "lamp", Description: "desk-lamp", Price: 9.99, Quantity: 4},
		},
		{
			line: "PRODUCT update 3 price:12.5 quantity:0",
			want: ProductUpdateArgs{ID: 3, Price: &price, Quantity: &qty},
		},
		{
			line: "PRODUCT delete 3 lamp 9.99 4",
			want: ProductDeleteArgs{ID: 3, Name: "lamp", Price: 9.99, Quantity: 4},
		},
		{
			line: "USER create 1 alice a@x.io pw",
			want: UserArgs{ID: 1, Username: "alice", Email: "a@x.io", Password: "pw"},
		},
		{
			line: "USER update 7 email:bob@x.io",
			want: UserUpdateArgs{ID: 7, Email: &email},
		},
		{line: "USER get 5", want: LookupArgs{ID: 5}},
		{line: "ORDER place 3 1 2", want: OrderArgs{ProductID: 3, UserID: 1, Quantity: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}

func TestParseUpdateKeepsValueAfterFirstColon(t *testing.T) {
	cmd, err := Parse("USER update 7 password:a:b")
	require.NoError(t, err)

	args, ok := cmd.Args.(UserUpdateArgs)
	require.True(t, ok)
	require.NotNil(t, args.Password)
	assert.Equal(t, "a:b", *args.Password)
	assert.Nil(t, args.Username)
}

func TestParseInvalid(t *testing.T) {
	lines := []string{
		"USER",
		"USER create 1 alice a@x.io",
		"USER create x alice a@x.io pw",
		"USER create -1 alice a@x.io pw",
		"USER get",
		"USER get 1 2",
		"USER update 1 nickname:al",
		"USER update 1 username",
		"USER archive 1",
		"PRODUCT create 3 lamp desk 9.99",
		"PRODUCT create 3 lamp desk cheap 4",
		"PRODUCT create 3 lamp desk NaN 4",
		"PRODUCT create 3 lamp desk 9.99 1.5",
		"PRODUCT update 3 price:free",
		"PRODUCT update 3 color:red",
		"PRODUCT delete 3 lamp 9.99",
		"PRODUCT info",
		"ORDER place 3 1",
		"ORDER cancel 3 1 2",
		"INVOICE create 1",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(line)
			assert.True(t, errors.Is(err, ErrInvalidLine), "got %v", err)
		})
	}
}

func TestReadAll(t *testing.T) {
	src := strings.NewReader("USER get 1\n\n   \nbogus line\nPRODUCT info 2\n")

	entries, err := ReadAll(src)

	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Line)
	assert.NoError(t, entries[0].Err)
	assert.Equal(t, KindUserGet, entries[0].Command.Kind)

	assert.Equal(t, 4, entries[1].Line)
	assert.Equal(t, "bogus line", entries[1].Text)
	assert.True(t, errors.Is(entries[1].Err, ErrInvalidLine))

	assert.Equal(t, 5, entries[2].Line)
	assert.Equal(t, KindProductInfo, entries[2].Command.Kind)
}
