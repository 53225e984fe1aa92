package aegis

import (
	"github.com/google/uuid"

	"github.com/aegis-go/aegis/pkg/core"
)

// RequestID is the per-request id's extension type, so handlers can
// retrieve it with core.Ext[RequestID](ctx) without a string key.
type RequestID string

// RequestIDHeader is the response header the generated id is echoed on.
const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware generates a uuid for every request not already
// carrying one on RequestIDHeader, stores it as a request extension, and
// echoes it back on the response so callers can correlate logs.
func RequestIDMiddleware() core.Middleware {
	return func(ctx core.Context, next core.HandlerFunc) error {
		id := ctx.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		core.SetExt(ctx, RequestID(id))
		ctx.SetHeader(RequestIDHeader, id)
		return next(ctx)
	}
}
