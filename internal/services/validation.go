package services

import (
	"errors"
	"fmt"

	"bloomshop/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

// validateStruct runs validator tags over v and converts failures into the
// shared ValidationError shape, one message per field.
func validateStruct(validate *validator.Validate, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return &apperrors.ValidationError{Fields: fields}
}
