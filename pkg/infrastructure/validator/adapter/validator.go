package adapter

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mateusmacedo/go-mediator/pkg/application"
	"github.com/mateusmacedo/go-mediator/pkg/domain"
)

type structValidator struct {
	validate *validator.Validate
}

// NewStructValidator builds the validator consulted before every dispatch.
// Constraints are declared with `validate` struct tags on request types;
// reported field names come from the `json` tags.
func NewStructValidator() application.StructuralValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &structValidator{validate: validate}
}

func (v *structValidator) Validate(request domain.Request) []application.FieldError {
	err := v.validate.Struct(request)
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		// a request shape with nothing to check passes
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []application.FieldError{{Message: err.Error(), Rule: "struct"}}
	}

	fields := make([]application.FieldError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, application.FieldError{
			Field:   fieldPath(fieldErr.Namespace()),
			Message: fieldMessage(fieldErr),
			Rule:    fieldErr.Tag(),
		})
	}
	return fields
}

// fieldPath strips the request type name from the namespace, leaving the
// field path as a client sees it.
func fieldPath(namespace string) string {
	if _, path, found := strings.Cut(namespace, "."); found {
		return path
	}
	return namespace
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation rule '%s'", fieldErr.Tag())
	}
}
