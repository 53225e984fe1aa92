package core

import "net/http"

// Response is a raw response a typed handler can return directly instead of
// writing through Context itself.
type Response struct {
	Status  int
	Headers map[string]string
	Body    interface{}
}

// StatusResponse pairs a body with a custom status code, the value a typed
// handler returns in place of calling ctx.JSON(status, body) itself.
type StatusResponse struct {
	Status int
	Body   interface{}
}

// WithStatus builds a StatusResponse, the responder for the "(status, body)
// tuple" case.
func WithStatus(status int, body interface{}) StatusResponse {
	return StatusResponse{Status: status, Body: body}
}

// Respond writes a typed handler's (result, error) return through ctx:
// a non-nil error short-circuits to the caller unchanged; a nil result
// responds 204 No Content; a Response is written verbatim; a StatusResponse
// uses its own status; anything else is marshaled as 200 OK JSON.
func Respond(ctx Context, result interface{}, err error) error {
	if err != nil {
		return err
	}
	switch v := result.(type) {
	case nil:
		return ctx.NoContent(http.StatusNoContent)
	case Response:
		for key, value := range v.Headers {
			ctx.SetHeader(key, value)
		}
		if v.Body == nil {
			return ctx.NoContent(v.Status)
		}
		return ctx.JSON(v.Status, v.Body)
	case StatusResponse:
		return ctx.JSON(v.Status, v.Body)
	default:
		return ctx.JSON(http.StatusOK, v)
	}
}
