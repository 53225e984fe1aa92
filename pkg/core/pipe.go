package core

import (
	"github.com/go-playground/validator/v10"
)

// structValidator is shared across the process the way goflash's validate
// package shares a single validator.Validate instance: construction does
// struct-tag caching that is wasteful to repeat per request.
var structValidator = validator.New()

// validateStruct runs struct-tag validation (the "validate" tag) over v and
// converts any failure into a *Error of KindValidation with field-level
// detail, the shape ValidationPipe.Transform also produces.
func validateStruct(v interface{}) error {
	if err := structValidator.Struct(v); err != nil {
		return toValidationError(err)
	}
	return nil
}

func toValidationError(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Internal(err.Error())
	}
	fields := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, ValidationError{
			Field:   fe.Field(),
			Message: fe.Field() + " failed on the '" + fe.Tag() + "' rule",
			Value:   fe.Value(),
		})
	}
	return NewValidation(fields)
}

// ValidationPipe adapts go-playground/validator struct validation to the
// Pipe contract so it can be attached per-route via RouteOptions.Pipes,
// independent of the automatic validation Bind already runs for typed
// handlers (useful for legacy handlers that decode the body themselves).
type ValidationPipe struct{}

// Transform validates value as a struct and returns it unchanged on success.
func (ValidationPipe) Transform(value interface{}, _ PipeMetadata) (interface{}, error) {
	if err := validateStruct(value); err != nil {
		return nil, err
	}
	return value, nil
}
