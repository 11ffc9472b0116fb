package validation

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/iscs-gateway/internal/domain"
)

// truthyTag marks a field that must be present and hold a non-empty value.
const truthyTag = "truthy"

// Outcome is the result of validating a request body. Exactly one of
// Accepted or Err is meaningful: an accepted outcome carries the payload to
// forward, a rejected one carries a *domain.ValidationError.
type Outcome struct {
	Payload map[string]any
	Err     error
}

// Accepted reports whether the body may be forwarded.
func (o Outcome) Accepted() bool {
	return o.Err == nil
}

func accept(body map[string]any) Outcome {
	return Outcome{Payload: body}
}

func reject(field, msg string, err error) Outcome {
	return Outcome{Err: domain.NewValidationError(field, msg, err)}
}

// Validator checks POST bodies for the user and product services. It is
// safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	rules    map[domain.Service]map[domain.Command]map[string]interface{}
}

// New creates a Validator with the per-service field rules.
func New() *Validator {
	v := validator.New()
	// ALLOW-PANIC: registration only fails for an empty tag or nil func
	if err := v.RegisterValidation(truthyTag, isTruthy); err != nil {
		panic(fmt.Sprintf("failed to register %s validation: %v", truthyTag, err))
	}

	userRule := fieldRules(domain.FieldUsername, domain.FieldEmail, domain.FieldPassword)
	productCreate := fieldRules(domain.FieldName, domain.FieldDescription, domain.FieldPrice, domain.FieldQuantity)
	productDelete := fieldRules(domain.FieldName, domain.FieldPrice, domain.FieldQuantity)

	return &Validator{
		validate: v,
		rules: map[domain.Service]map[domain.Command]map[string]interface{}{
			domain.ServiceUser: {
				domain.CommandCreate: userRule,
				domain.CommandDelete: userRule,
			},
			domain.ServiceProduct: {
				domain.CommandCreate: productCreate,
				domain.CommandDelete: productDelete,
			},
		},
	}
}

func fieldRules(fields ...string) map[string]interface{} {
	rules := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		rules[f] = truthyTag
	}
	return rules
}

// Validate decides whether body is admissible for service. The checks run
// in a fixed order: command and id present, id all digits, command known,
// then the fields required by create and delete. The accepted payload is
// body itself, unmodified.
func (v *Validator) Validate(service domain.Service, body map[string]any) Outcome {
	command, hasCommand := body[domain.FieldCommand]
	id, hasID := body[domain.FieldID]
	if !hasCommand || command == nil {
		return reject(domain.FieldCommand, "is required", domain.ErrMissingField)
	}
	if !hasID || id == nil {
		return reject(domain.FieldID, "is required", domain.ErrMissingField)
	}

	if _, ok := IDText(id); !ok {
		return reject(domain.FieldID, "must be a non-negative integer", domain.ErrInvalidID)
	}

	name, _ := command.(string)
	cmd := domain.Command(name)
	if !cmd.IsValid() {
		return reject(domain.FieldCommand, "must be create, update or delete", domain.ErrUnknownCommand)
	}

	rules, ok := v.rules[service][cmd]
	if !ok {
		// update carries any subset of fields, including none
		return accept(body)
	}

	if errs := v.validate.ValidateMap(body, rules); len(errs) > 0 {
		return reject(firstField(errs), "is required for "+cmd.String(), domain.ErrMissingField)
	}

	return accept(body)
}

// firstField picks a deterministic field name from the validator's error map.
func firstField(errs map[string]interface{}) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields[0]
}

// IDText returns the textual form of an id value decoded with
// json.Decoder.UseNumber and reports whether it is all digits. Numbers keep
// their literal text, so 7 passes while 7.0, -7 and 7e0 do not. Strings are
// taken as-is; any other JSON type fails.
func IDText(v any) (string, bool) {
	var text string
	switch id := v.(type) {
	case json.Number:
		text = id.String()
	case string:
		text = id
	default:
		return "", false
	}
	return text, domain.IsDigits(text)
}

// isTruthy rejects zero values the way a dynamically typed caller would:
// empty strings, zero numbers, false, and empty arrays or objects. Missing
// keys and JSON null never reach this function; the validator rejects them
// as invalid values.
func isTruthy(fl validator.FieldLevel) bool {
	field := fl.Field()
	if n, ok := field.Interface().(json.Number); ok {
		f, err := n.Float64()
		return err != nil || f != 0
	}

	switch field.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return field.Len() > 0
	case reflect.Bool:
		return field.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return field.Float() != 0
	default:
		return !field.IsZero()
	}
}
