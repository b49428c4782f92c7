package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON name so clients see registeredName, not RegisteredName
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
	return v
}

// FieldError is a single failed rule on one request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors keeps failures in struct field order; the first entry is
// the one reported to the client.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", ve[0].Field, ve[0].Message)
}

func (ve ValidationErrors) First() FieldError {
	if len(ve) == 0 {
		return FieldError{}
	}
	return ve[0]
}

func (ve ValidationErrors) Map() map[string]string {
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// ValidateStruct runs the validate tags of data. It returns nil when data is valid.
func ValidateStruct(data any) ValidationErrors {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			errs = append(errs, FieldError{Field: fe.Field(), Message: getErrorMessage(fe)})
		}
		return errs
	}

	return ValidationErrors{{Field: "body", Message: err.Error()}}
}

// NewFieldError builds a single-field failure for checks the tags cannot express.
func NewFieldError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("Minimum value is %s", err.Param())
		}
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		if isNumeric(err.Kind()) {
			return fmt.Sprintf("Maximum value is %s", err.Param())
		}
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", err.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("Must be a date in %s format", err.Param())
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
