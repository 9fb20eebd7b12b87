package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	v10 "github.com/go-playground/validator/v10"
)

// FieldError describes one failed struct constraint
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *v10.Validate {
	v := v10.New(v10.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(sf.Name)
		}
		return name
	})
	return v
}

// Validate runs struct validation using go-playground/validator.
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// FormatValidationErrors converts validator.ValidationErrors into a slice of FieldError.
// Code follows the pattern "INVALID_<RULE>|<param>" when the rule takes a parameter.
func FormatValidationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var ve v10.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "", Code: "INVALID", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(ve))
	for _, f := range ve {
		code := "INVALID_" + strings.ToUpper(f.Tag())
		if f.Param() != "" {
			code += "|" + f.Param()
		}
		out = append(out, FieldError{
			Field:   f.Field(),
			Code:    code,
			Message: describe(f),
		})
	}
	return out
}

// Message renders validation failures as a single line of text
func Message(err error) string {
	fields := FormatValidationErrors(err)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Message)
	}
	return strings.Join(parts, "; ")
}

func describe(f v10.FieldError) string {
	switch f.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f.Field())
	case "min":
		if f.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", f.Field(), f.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f.Field(), f.Param())
	case "max":
		if f.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", f.Field(), f.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f.Field(), f.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", f.Field(), f.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", f.Field(), f.Param())
	default:
		return fmt.Sprintf("%s failed the %s constraint", f.Field(), f.Tag())
	}
}
