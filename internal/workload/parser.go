package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidLine is wrapped by every parse failure.
var ErrInvalidLine = errors.New("invalid workload line")

// Entry is one non-blank line of a workload file.
type Entry struct {
	Line    int
	Text    string
	Command Command
	// Err is set when the line could not be parsed; Command is then zero.
	Err error
}

// ReadAll parses every non-blank line of r. Lines that fail to parse are
// returned with Err set rather than stopping the read.
func ReadAll(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		cmd, err := Parse(text)
		entries = append(entries, Entry{Line: lineNo, Text: text, Command: cmd, Err: err})
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("read workload: %w", err)
	}
	return entries, nil
}

// Parse turns one workload line into a Command. Entity and action keywords
// are matched case-insensitively.
func Parse(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return Command{}, invalid("expected an entity and an action")
	}

	entity := strings.ToUpper(tokens[0])
	action := strings.ToLower(tokens[1])

	switch entity {
	case "USER":
		switch action {
		case "create":
			return parseUserFull(KindUserCreate, tokens)
		case "update":
			return parseUserUpdate(tokens)
		case "delete":
			return parseUserFull(KindUserDelete, tokens)
		case "get":
			return parseLookup(KindUserGet, tokens)
		}
	case "PRODUCT":
		switch action {
		case "create":
			return parseProductCreate(tokens)
		case "update":
			return parseProductUpdate(tokens)
		case "delete":
			return parseProductDelete(tokens)
		case "info":
			return parseLookup(KindProductInfo, tokens)
		}
	case "ORDER":
		if action == "place" {
			return parseOrderPlace(tokens)
		}
	default:
		return Command{}, invalid("unknown entity %q", tokens[0])
	}
	return Command{}, invalid("unknown %s action %q", entity, tokens[1])
}

// USER create|delete <id> <username> <email> <password>
func parseUserFull(kind Kind, tokens []string) (Command, error) {
	if len(tokens) != 6 {
		return Command{}, invalid("%s takes id, username, email and password", kind)
	}
	id, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: kind, Args: UserArgs{
		ID:       id,
		Username: tokens[3],
		Email:    tokens[4],
		Password: tokens[5],
	}}, nil
}

// USER update <id> [username:x] [email:x] [password:x]
func parseUserUpdate(tokens []string) (Command, error) {
	if len(tokens) < 3 {
		return Command{}, invalid("user_update requires an id")
	}
	id, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}

	args := UserUpdateArgs{ID: id}
	for _, tok := range tokens[3:] {
		key, value, ok := strings.Cut(tok, ":")
		if !ok {
			return Command{}, invalid("update field %q is not key:value", tok)
		}
		switch key {
		case "username":
			args.Username = &value
		case "email":
			args.Email = &value
		case "password":
			args.Password = &value
		default:
			return Command{}, invalid("unknown user field %q", key)
		}
	}
	return Command{Kind: KindUserUpdate, Args: args}, nil
}

// USER get <id>, PRODUCT info <id>
func parseLookup(kind Kind, tokens []string) (Command, error) {
	if len(tokens) != 3 {
		return Command{}, invalid("%s takes only an id", kind)
	}
	id, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: kind, Args: LookupArgs{ID: id}}, nil
}

// PRODUCT create <id> <name> <description> <price> <quantity>
func parseProductCreate(tokens []string) (Command, error) {
	if len(tokens) != 7 {
		return Command{}, invalid("product_create takes id, name, description, price and quantity")
	}
	id, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}
	price, err := parsePrice(tokens[5])
	if err != nil {
		return Command{}, err
	}
	qty, err := parseQuantity(tokens[6])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindProductCreate, Args: ProductCreateArgs{
		ID:          id,
		Name:        tokens[3],
		Description: tokens[4],
		Price:       price,
		Quantity:    qty,
	}}, nil
}

// PRODUCT update <id> [name:x] [description:x] [price:x] [quantity:x]
func parseProductUpdate(tokens []string) (Command, error) {
	if len(tokens) < 3 {
		return Command{}, invalid("product_update requires an id")
	}
	id, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}

	args := ProductUpdateArgs{ID: id}
	for _, tok := range tokens[3:] {
		key, value, ok := strings.Cut(tok, ":")
		if !ok {
			return Command{}, invalid("update field %q is not key:value", tok)
		}
		switch key {
		case "name":
			args.Name = &value
		case "description":
			args.Description = &value
		case "price":
			price, err := parsePrice(value)
			if err != nil {
				return Command{}, err
			}
			args.Price = &price
		case "quantity":
			qty, err := parseQuantity(value)
			if err != nil {
				return Command{}, err
			}
			args.Quantity = &qty
		default:
			return Command{}, invalid("unknown product field %q", key)
		}
	}
	return Command{Kind: KindProductUpdate, Args: args}, nil
}

// PRODUCT delete <id> <name> <price> <quantity>
func parseProductDelete(tokens []string) (Command, error) {
	if len(tokens) != 6 {
		return Command{}, invalid("product_delete takes id, name, price and quantity")
	}
	id, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}
	price, err := parsePrice(tokens[4])
	if err != nil {
		return Command{}, err
	}
	qty, err := parseQuantity(tokens[5])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindProductDelete, Args: ProductDeleteArgs{
		ID:       id,
		Name:     tokens[3],
		Price:    price,
		Quantity: qty,
	}}, nil
}

// ORDER place <product_id> <user_id> <quantity>
func parseOrderPlace(tokens []string) (Command, error) {
	if len(tokens) != 5 {
		return Command{}, invalid("order_place takes product id, user id and quantity")
	}
	productID, err := parseID(tokens[2])
	if err != nil {
		return Command{}, err
	}
	userID, err := parseID(tokens[3])
	if err != nil {
		return Command{}, err
	}
	qty, err := parseQuantity(tokens[4])
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindOrderPlace, Args: OrderArgs{
		ProductID: productID,
		UserID:    userID,
		Quantity:  qty,
	}}, nil
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, invalid("id %q is not a non-negative integer", s)
	}
	return id, nil
}

func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, invalid("price %q is not a number", s)
	}
	return price, nil
}

func parseQuantity(s string) (int64, error) {
	qty, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, invalid("quantity %q is not an integer", s)
	}
	return qty, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidLine, fmt.Sprintf(format, args...))
}
