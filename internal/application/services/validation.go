package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mobilectl/core/internal/domain/entities"
)

var fieldLabels = map[string]string{
	"name":         "contact name",
	"phone":        "phone number",
	"phone_number": "phone number",
	"message":      "message",
	"level":        "level",
	"mode":         "theme mode",
}

// requestValidator turns validator tag failures into user-facing
// ValidationErrors.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Struct validates req and reports the first failing field.
func (v *requestValidator) Struct(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate request: %w", err)
	}

	fe := fieldErrs[0]
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return entities.NewValidationError(fe.Field(), "%s is required", label)
	case "min", "max":
		return entities.NewValidationError(fe.Field(), "%s must be an integer between 0 and 100", label)
	case "oneof":
		return entities.NewValidationError(fe.Field(), "invalid %s, expected one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return entities.NewValidationError(fe.Field(), "%s is invalid", label)
	}
}
