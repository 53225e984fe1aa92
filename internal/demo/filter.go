package demo

import (
	"time"

	"github.com/aegis-go/aegis/pkg/core"
)

// ValidationFilter renders validation failures in the framework's
// ErrorResponse envelope, with the offending fields attached, instead of the
// default {"error","status"} body. It only claims KindValidation, so every
// other error still falls through to the default synthesis.
type ValidationFilter struct{}

// Handles restricts this filter to validation errors.
func (f *ValidationFilter) Handles() []core.ErrorKind {
	return []core.ErrorKind{core.KindValidation}
}

// Catch implements core.Filter.
func (f *ValidationFilter) Catch(err error, ctx core.Context) error {
	coreErr, ok := err.(*core.Error)
	if !ok {
		return err
	}
	body := struct {
		core.ErrorResponse
		Fields core.ValidationErrors `json:"fields,omitempty"`
	}{
		ErrorResponse: core.ErrorResponse{
			StatusCode: coreErr.Status(),
			Message:    coreErr.Message,
			Error:      string(coreErr.Kind),
			Path:       ctx.Path(),
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		},
		Fields: coreErr.Fields,
	}
	return ctx.JSON(coreErr.Status(), body)
}
