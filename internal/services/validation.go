package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gizindir-panel/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError is returned when a request body fails the entity schema
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Rule
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func invalid(field, rule string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule}}}
}

// nullCheck names an update field backed by a NOT NULL column
type nullCheck struct {
	field string
	value interface{ IsNull() bool }
}

// rejectNulls fails every field that was sent as an explicit null
func rejectNulls(checks ...nullCheck) error {
	out := &ValidationError{}
	for _, c := range checks {
		if c.value.IsNull() {
			out.Fields = append(out.Fields, FieldError{Field: c.field, Rule: "required"})
		}
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report json names so errors match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(optionalValue,
		models.Optional[string]{},
		models.Optional[int64]{},
		models.Optional[bool]{},
		models.Optional[models.Date]{},
	)
	return v
}

func optionalValue(field reflect.Value) interface{} {
	if o, ok := field.Interface().(interface{ Any() any }); ok {
		return o.Any()
	}
	return nil
}

// validateInput checks a request body against its validate tags
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}

// IsValidationError reports whether err was caused by a rejected request body
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
