package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsObjectID reports whether s is a syntactically valid store identifier:
// exactly 24 hexadecimal characters.
func IsObjectID(s string) bool {
	return objectIDPattern.MatchString(s)
}

// Validator wraps go-playground/validator with the store's identifier
// rule and the API's error message style.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator with the objectid rule registered. Error
// messages use json tag names so they match the wire payload.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsObjectID(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate checks s against its validate tags and returns one message per
// violated rule, in field declaration order. Every failing field is
// reported; validation never stops at the first error. A nil return
// means the payload is valid.
func (v *Validator) Validate(s interface{}) []string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, message(fe))
	}
	return details
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "email":
		return fmt.Sprintf("%q must be a valid email", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
	case "uri":
		return fmt.Sprintf("%q must be a valid uri", field)
	case "number":
		return fmt.Sprintf("%q must only contain digits", field)
	case "objectid":
		return fmt.Sprintf("%q must be a valid identifier", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}

// fieldPath strips the root struct name from the namespace so nested
// fields read like "address.geolocation.lat" or "products[0].productId".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
