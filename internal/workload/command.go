package workload

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// Kind identifies which workload command a Command holds.
type Kind int

// Workload command kinds.
const (
	KindUnknown Kind = iota
	KindUserCreate
	KindUserUpdate
	KindUserDelete
	KindUserGet
	KindProductCreate
	KindProductUpdate
	KindProductDelete
	KindProductInfo
	KindOrderPlace
)

var kindNames = map[Kind]string{
	KindUserCreate:    "user_create",
	KindUserUpdate:    "user_update",
	KindUserDelete:    "user_delete",
	KindUserGet:       "user_get",
	KindProductCreate: "product_create",
	KindProductUpdate: "product_update",
	KindProductDelete: "product_delete",
	KindProductInfo:   "product_info",
	KindOrderPlace:    "order_place",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one parsed workload line. Args holds the arguments of Kind and
// nothing else: each kind has its own argument type.
type Command struct {
	Kind Kind
	Args Args
}

// Args is implemented by the per-kind argument types below.
type Args interface {
	args()
}

// UserArgs are the arguments of USER create and USER delete.
type UserArgs struct {
	ID       uint64
	Username string
	Email    string
	Password string
}

// UserUpdateArgs are the arguments of USER update. Unset fields are nil.
type UserUpdateArgs struct {
	ID       uint64
	Username *string
	Email    *string
	Password *string
}

// LookupArgs are the arguments of USER get and PRODUCT info.
type LookupArgs struct {
	ID uint64
}

// ProductCreateArgs are the arguments of PRODUCT create.
type ProductCreateArgs struct {
	ID          uint64
	Name        string
	Description string
	Price       float64
	Quantity    int64
}

// ProductUpdateArgs are the arguments of PRODUCT update. Unset fields are nil.
type ProductUpdateArgs struct {
	ID          uint64
	Name        *string
	Description *string
	Price       *float64
	Quantity    *int64
}

// ProductDeleteArgs are the arguments of PRODUCT delete.
type ProductDeleteArgs struct {
	ID       uint64
	Name     string
	Price    float64
	Quantity int64
}

// OrderArgs are the arguments of ORDER place.
type OrderArgs struct {
	ProductID uint64
	UserID    uint64
	Quantity  int64
}

func (UserArgs) args() {}
func (UserUpdateArgs) args() {}
func (LookupArgs) args() {}
func (ProductCreateArgs) args() {}
func (ProductUpdateArgs) args() {}
func (ProductDeleteArgs) args() {}
func (OrderArgs) args() {}

// Call is the HTTP request a Command turns into.
type Call struct {
	Method string
	Path   string
	Body   []byte
}

type userPayload struct {
	Command  string  `json:"command"`
	ID       uint64  `json:"id"`
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

type productPayload struct {
	Command     string   `json:"command"`
	ID          uint64   `json:"id"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int64   `json:"quantity,omitempty"`
}

type orderPayload struct {
	Command   string `json:"command"`
	ProductID uint64 `json:"product_id"`
	UserID    uint64 `json:"user_id"`
	Quantity  int64  `json:"quantity"`
}

type lookupPayload struct {
	ID uint64 `json:"id"`
}

// Request builds the gateway call for c. It fails when Kind is unknown or
// Args is not the argument type of Kind.
func (c Command) Request() (Call, error) {
	switch c.Kind {
	case KindUserCreate, KindUserDelete:
		a, ok := c.Args.(UserArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		verb := "create"
		if c.Kind == KindUserDelete {
			verb = "delete"
		}
		return post("/user", userPayload{
			Command:  verb,
			ID:       a.ID,
			Username: &a.Username,
			Email:    &a.Email,
			Password: &a.Password,
		})
	case KindUserUpdate:
		a, ok := c.Args.(UserUpdateArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		return post("/user", userPayload{
			Command:  "update",
			ID:       a.ID,
			Username: a.Username,
			Email:    a.Email,
			Password: a.Password,
		})
	case KindUserGet, KindProductInfo:
		a, ok := c.Args.(LookupArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		if c.Kind == KindUserGet {
			return lookup("/user/", a.ID)
		}
		return lookup("/product/", a.ID)
	case KindProductCreate:
		a, ok := c.Args.(ProductCreateArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		return post("/product", productPayload{
			Command:     "create",
			ID:          a.ID,
			Name:        &a.Name,
			Description: &a.Description,
			Price:       &a.Price,
			Quantity:    &a.Quantity,
		})
	case KindProductUpdate:
		a, ok := c.Args.(ProductUpdateArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		return post("/product", productPayload{
			Command:     "update",
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Price:       a.Price,
			Quantity:    a.Quantity,
		})
	case KindProductDelete:
		a, ok := c.Args.(ProductDeleteArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		return post("/product", productPayload{
			Command:  "delete",
			ID:       a.ID,
			Name:     &a.Name,
			Price:    &a.Price,
			Quantity: &a.Quantity,
		})
	case KindOrderPlace:
		a, ok := c.Args.(OrderArgs)
		if !ok {
			return Call{}, c.mismatch()
		}
		return post("/order", orderPayload{
			Command:   "place order",
			ProductID: a.ProductID,
			UserID:    a.UserID,
			Quantity:  a.Quantity,
		})
	default:
		return Call{}, fmt.Errorf("no request for command kind %s", c.Kind)
	}
}

func (c Command) mismatch() error {
	return fmt.Errorf("command kind %s cannot carry %T", c.Kind, c.Args)
}

func post(path string, payload any) (Call, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Call{}, fmt.Errorf("encode %s payload: %w", path, err)
	}
	return Call{Method: http.MethodPost, Path: path, Body: body}, nil
}

func lookup(prefix string, id uint64) (Call, error) {
	body, err := json.Marshal(lookupPayload{ID: id})
	if err != nil {
		return Call{}, fmt.Errorf("encode lookup payload: %w", err)
	}
	return Call{
		Method: http.MethodGet,
		Path:   prefix + strconv.FormatUint(id, 10),
		Body:   body,
	}, nil
}
