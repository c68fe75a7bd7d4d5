package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator checks request structs against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	sharedValidator *Validator
	validatorOnce   sync.Once
)

// GetValidator returns the process-wide validator, building it on first use
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their JSON name so clients see the keys they sent
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("nonzero", func(fl validator.FieldLevel) bool {
			return !fl.Field().IsZero()
		})
		sharedValidator = &Validator{validate: v}
	})
	return sharedValidator
}

func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// Messages per validate tag. A %s is replaced with the tag parameter.
var validationMessages = map[string]string{
	"required":    "This field is required",
	"oneof":       "Must be one of: %s",
	"gt":          "Must be greater than %s",
	"gte":         "Must be at least %s",
	"min":         "Must be at least %s",
	"max":         "Must be at most %s",
	"nonzero":     "Must not be zero",
	"uuid":        "Must be a UUID",
	"excludesall": "Contains invalid characters",
}

// FormatValidationError maps each failing field to a readable message.
// Errors that did not come from the validator collapse to a single "error" key.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	out := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := validationMessages[fe.Tag()]
		switch {
		case !ok:
			msg = "Invalid value"
		case strings.Contains(msg, "%s"):
			msg = fmt.Sprintf(msg, fe.Param())
		}
		out[fe.Field()] = msg
	}
	return out
}
