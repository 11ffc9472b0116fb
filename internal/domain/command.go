package domain

// Command is the mutation requested in a POST body.
type Command string

// Commands accepted by the user and product services.
const (
	CommandCreate Command = "create"
	CommandUpdate Command = "update"
	CommandDelete Command = "delete"
)

// IsValid reports whether c is one of create, update or delete. The match
// is case-sensitive.
func (c Command) IsValid() bool {
	switch c {
	case CommandCreate, CommandUpdate, CommandDelete:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return string(c)
}

// Body field names shared by the gateway and the workload client.
const (
	FieldCommand     = "command"
	FieldID          = "id"
	FieldUsername    = "username"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldQuantity    = "quantity"
	FieldProductID   = "product_id"
	FieldUserID      = "user_id"
)

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeDigits strips leading zeros from a digit string so that two ids
// with the same integer value compare equal. The input must satisfy IsDigits.
func NormalizeDigits(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
