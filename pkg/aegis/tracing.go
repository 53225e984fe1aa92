package aegis

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aegis-go/aegis/pkg/core"
)

const tracerName = "github.com/aegis-go/aegis/pkg/aegis"

// TracingMiddleware starts a span per request using the global otel
// TracerProvider, the way goflash's middleware.OTel does, and records the
// handler's error on the span before closing it.
func TracingMiddleware() core.Middleware {
	tracer := otel.Tracer(tracerName)
	return func(ctx core.Context, next core.HandlerFunc) error {
		spanCtx, span := tracer.Start(ctx.Context(), ctx.Method()+" "+ctx.Path(),
			trace.WithAttributes(
				attribute.String("http.method", ctx.Method()),
				attribute.String("http.route", ctx.Path()),
			),
		)
		defer span.End()

		reqCtx := ctx.WithContext(spanCtx)
		core.SetExt[trace.Span](reqCtx, span)
		err := next(reqCtx)
		// reqCtx is a copy; carry its status back so outer middleware sees it.
		ctx.Status(reqCtx.GetStatusCode())

		span.SetAttributes(attribute.Int("http.status_code", reqCtx.GetStatusCode()))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
