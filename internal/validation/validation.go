package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"journal/internal/models"
)

// FieldError describes one rejected field of a request.
type FieldError struct {
	Type string   `json:"type"`
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
}

// Errors is returned when a request fails validation. It is rendered as
// the "detail" list of a 422 response.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, strings.Join(fe.Loc, ".")+": "+fe.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// optional is satisfied by every models.Optional instantiation.
type optional interface {
	Ptr() any
}

// Validator wraps validator.Validate with JSON field names and support for
// models.Optional fields.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(optional); ok {
			return o.Ptr()
		}
		return nil
	}, models.Optional[string]{}, models.Optional[int]{}, models.Optional[*string]{})

	// Usernames must not contain whitespace.
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})

	// bcrypt only reads the first 72 bytes of a password.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})

	return &Validator{validate: v}
}

// Struct validates s and returns Errors describing every failed field.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, newFieldError(fe))
	}
	return out
}

// Body builds the error reported for a body that is not valid JSON.
func Body(err error) Errors {
	return Errors{{
		Type: "json_invalid",
		Loc:  []string{"body"},
		Msg:  "JSON decode error: " + err.Error(),
	}}
}

// Path builds the error reported for a path parameter that is not an
// integer.
func Path(name, value string) Errors {
	return Errors{{
		Type: "int_parsing",
		Loc:  []string{"path", name},
		Msg:  fmt.Sprintf("Input should be a valid integer, unable to parse string as an integer: %q", value),
	}}
}

func newFieldError(fe validator.FieldError) FieldError {
	e := FieldError{Loc: []string{"body", fe.Field()}}
	switch fe.Tag() {
	case "required":
		e.Type = "missing"
		e.Msg = "Field required"
	case "min":
		e.Type = "string_too_short"
		e.Msg = fmt.Sprintf("String should have at least %s characters", fe.Param())
	case "max":
		e.Type = "string_too_long"
		e.Msg = fmt.Sprintf("String should have at most %s characters", fe.Param())
	case "gt":
		e.Type = "greater_than"
		e.Msg = "Input should be greater than " + fe.Param()
	case "lt":
		e.Type = "less_than"
		e.Msg = "Input should be less than " + fe.Param()
	case "bcryptlen":
		e.Type = "string_too_long"
		e.Msg = fmt.Sprintf("String should have at most %d bytes", MaxPasswordBytes)
	case "nospace":
		e.Type = "string_pattern_mismatch"
		e.Msg = "String should not contain whitespace"
	case "email":
		e.Type = "value_error"
		e.Msg = fmt.Sprintf("value is not a valid email address: %v", fe.Value())
	default:
		e.Type = "value_error"
		e.Msg = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
	return e
}
