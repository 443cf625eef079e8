// Package validator plugs go-playground/validator into Echo.
package validator

import (
	"reflect"
	"strings"

	domainerrors "github.com/guesssays/med-platform/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New returns a validator that reports fields by their JSON names.
func New() *CustomValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &CustomValidator{validate: v}
}

// Validate checks struct tags and converts failures to VALIDATION_FAILED.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "failed to validate request")
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, describe(fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(messages, "; "))
}

func describe(fieldErr validator.FieldError) string {
	field := fieldErr.Field()

	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return field + " must be at least " + fieldErr.Param()
	case "max":
		return field + " must be at most " + fieldErr.Param()
	case "len":
		return field + " must be exactly " + fieldErr.Param() + " characters"
	case "gt":
		return field + " must be greater than " + fieldErr.Param()
	case "oneof":
		return field + " must be one of " + fieldErr.Param()
	case "gtfield":
		return field + " must be after " + fieldErr.Param()
	default:
		return field + " is invalid"
	}
}
