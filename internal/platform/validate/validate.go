package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError represents a single field validation failure.
type FieldError struct {
	Field   string
	Message string
	Value   string
}

// ValidationError is returned when input validation fails. Fields are kept
// in the order the fields were checked.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + e.Fields[0].Message
}

// First returns the first reported field error.
func (e *ValidationError) First() (FieldError, bool) {
	if len(e.Fields) == 0 {
		return FieldError{}, false
	}
	return e.Fields[0], true
}

// MessageFor returns the message reported for field, if any.
func (e *ValidationError) MessageFor(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// AppValidator wraps go-playground/validator for Echo's Validator interface.
type AppValidator struct {
	v *validator.Validate
}

// New creates a new AppValidator.
func New() *AppValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param", "koanf"} {
			if name := tagName(fld, tag); name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &AppValidator{v: v}
}

// Validate validates the given struct and returns a *ValidationError on failure.
func (av *AppValidator) Validate(i any) error {
	err := av.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]FieldError, len(ve))
		for idx, fe := range ve {
			fields[idx] = FieldError{
				Field:   fe.Field(),
				Message: buildMessage(fe),
				Value:   fmt.Sprintf("%v", fe.Value()),
			}
		}
		return &ValidationError{
			Message: "validation failed",
			Fields:  fields,
		}
	}

	return &ValidationError{Message: err.Error()}
}

func tagName(fld reflect.StructField, tag string) string {
	name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
	if name == "" || name == "-" {
		return ""
	}
	return name
}

func buildMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	case "url", "http_url":
		return field + " must be an absolute URL"
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " failed on " + fe.Tag() + " validation"
	}
}
