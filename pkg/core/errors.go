package core

import "net/http"

// ErrorKind is the closed taxonomy of error categories the dispatcher and
// exception filters reason about. Other carries an application-defined name
// for cases the taxonomy does not cover.
type ErrorKind string

// The core error kinds, each mapped to a default HTTP status by StatusFor.
const (
	KindNotFound        ErrorKind = "NotFound"
	KindBadRequest      ErrorKind = "BadRequest"
	KindUnauthorized    ErrorKind = "Unauthorized"
	KindForbidden       ErrorKind = "Forbidden"
	KindConflict        ErrorKind = "Conflict"
	KindValidation      ErrorKind = "Validation"
	KindSerialization   ErrorKind = "Serialization"
	KindDeserialization ErrorKind = "Deserialization"
	KindInternal        ErrorKind = "Internal"
	KindOther           ErrorKind = "Other"
)

var defaultStatusByKind = map[ErrorKind]int{
	KindNotFound:        http.StatusNotFound,
	KindBadRequest:      http.StatusBadRequest,
	KindUnauthorized:    http.StatusUnauthorized,
	KindForbidden:       http.StatusForbidden,
	KindConflict:        http.StatusConflict,
	KindValidation:      http.StatusUnprocessableEntity,
	KindSerialization:   http.StatusInternalServerError,
	KindDeserialization: http.StatusBadRequest,
	KindInternal:        http.StatusInternalServerError,
	KindOther:           http.StatusInternalServerError,
}

// StatusFor returns the default HTTP status for an error kind. Unknown kinds
// (including application-defined Other names) map to 500.
func StatusFor(kind ErrorKind) int {
	if status, ok := defaultStatusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error is the core error type that flows through middleware, guards and
// handlers. It carries the taxonomy kind used by exception filter dispatch
// and, for KindValidation, the field-level detail.
type Error struct {
	Kind    ErrorKind
	Message string
	Fields  ValidationErrors
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// Status returns the HTTP status this error maps to by default.
func (e *Error) Status() int {
	return StatusFor(e.Kind)
}

// KindOf extracts the ErrorKind of err, defaulting to KindInternal for any
// error that isn't a *Error.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindInternal
}

// NotFound builds a KindNotFound error (router miss, resource absent).
func NotFound(message string) *Error { return &Error{Kind: KindNotFound, Message: message} }

// BadRequest builds a KindBadRequest error (malformed request).
func BadRequest(message string) *Error { return &Error{Kind: KindBadRequest, Message: message} }

// Unauthorized builds a KindUnauthorized error (missing/invalid credentials).
func Unauthorized(message string) *Error { return &Error{Kind: KindUnauthorized, Message: message} }

// Forbidden builds a KindForbidden error (guard refused).
func Forbidden(message string) *Error { return &Error{Kind: KindForbidden, Message: message} }

// Conflict builds a KindConflict error (state transition disallowed).
func Conflict(message string) *Error { return &Error{Kind: KindConflict, Message: message} }

// Internal builds a KindInternal error (uncategorized / bootstrap invariant).
func Internal(message string) *Error { return &Error{Kind: KindInternal, Message: message} }

// NewValidation builds a KindValidation error carrying field-level detail.
func NewValidation(fields ValidationErrors) *Error {
	msg := "validation failed"
	if len(fields) > 0 {
		msg = fields[0].Message
	}
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

// Serialization wraps an outbound encoding failure as a KindSerialization error.
func Serialization(err error) *Error {
	return &Error{Kind: KindSerialization, Message: err.Error(), cause: err}
}

// Deserialization wraps an inbound decoding failure as a KindDeserialization error.
func Deserialization(err error) *Error {
	return &Error{Kind: KindDeserialization, Message: err.Error(), cause: err}
}

// Other builds an application-defined error kind, defaulting to a 500 status
// unless a filter maps it to something else.
func Other(kind string, message string) *Error {
	return &Error{Kind: ErrorKind(kind), Message: message}
}
