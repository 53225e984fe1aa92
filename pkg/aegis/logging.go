package aegis

import (
	"time"

	"go.uber.org/zap"

	"github.com/aegis-go/aegis/pkg/core"
)

// newZapLogger builds a zap.Logger for the given level and format, the way
// caddy's cmd package configures its logger at startup.
func newZapLogger(logLevel string, jsonFormat bool) (*zap.Logger, error) {
	var zcfg zap.Config
	if jsonFormat {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(logLevel)
	if err == nil {
		zcfg.Level = level
	}
	return zcfg.Build()
}

// LoggingMiddleware logs method, path, status, duration and request id for
// every request once it finishes, wrapping the rest of the pipeline so the
// recorded duration includes tracing and the handler itself. When the
// pipeline returns an error, the status logged is the one set before the
// exception filters write the error response.
func LoggingMiddleware(logger *zap.Logger) core.Middleware {
	return func(ctx core.Context, next core.HandlerFunc) error {
		start := time.Now()
		err := next(ctx)

		id, idErr := core.Ext[RequestID](ctx)
		fields := []zap.Field{
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", ctx.GetStatusCode()),
			zap.Duration("duration", time.Since(start)),
		}
		if idErr == nil {
			fields = append(fields, zap.String("request_id", string(id)))
		}

		if err != nil {
			logger.Error("request failed", append(fields, zap.Error(err))...)
		} else {
			logger.Info("request completed", fields...)
		}
		return err
	}
}
