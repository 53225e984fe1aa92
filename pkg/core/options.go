package core

// routePipesKey is the Context value key ApplyOptions stores a route's pipes
// under, so Bind can run them against the extracted request struct without
// the router having to thread them through every registration signature.
const routePipesKey = "aegis:route-pipes"

// RoutePipes returns the pipes attached to the matched route, or nil when
// the route was registered without options.
func RoutePipes(ctx Context) []Pipe {
	if pipes, ok := ctx.GetValue(routePipesKey).([]Pipe); ok {
		return pipes
	}
	return nil
}

// ApplyOptions wraps handler with the per-route layers carried by opts,
// nested so that a request traverses them as:
//
//	route filters → route middleware → pipes installed → guards → interceptors → handler
//
// Guards sit innermost of the middleware per the guard chain contract;
// interceptors wrap only the handler so they see its result value. Route
// filters catch errors from every inner layer before the error escapes to
// the application's global filter chain.
func ApplyOptions(handler HandlerFunc, opts RouteOptions) HandlerFunc {
	h := handler

	for i := len(opts.Interceptors) - 1; i >= 0; i-- {
		h = interceptHandler(opts.Interceptors[i], h)
	}

	h = WithGuards(h, opts.Guards...)

	if len(opts.Pipes) > 0 {
		pipes := append([]Pipe{}, opts.Pipes...)
		inner := h
		h = func(ctx Context) error {
			ctx.SetValue(routePipesKey, pipes)
			return inner(ctx)
		}
	}

	h = Chain(h, opts.Middleware...)

	if len(opts.Filters) > 0 {
		filters := append([]Filter{}, opts.Filters...)
		inner := h
		h = func(ctx Context) error {
			err := inner(ctx)
			if err == nil {
				return nil
			}
			kind := KindOf(err)
			for _, filter := range filters {
				if matcher, ok := filter.(FilterMatcher); ok && !acceptsKind(matcher.Handles(), kind) {
					continue
				}
				if catchErr := filter.Catch(err, ctx); catchErr == nil {
					return nil
				}
			}
			return err
		}
	}

	return h
}

// interceptHandler adapts an Interceptor around next. A non-nil result (or
// error) from Intercept is written through Respond; a nil result with a nil
// error means the inner handler already wrote the response itself.
func interceptHandler(interceptor Interceptor, next HandlerFunc) HandlerFunc {
	return func(ctx Context) error {
		result, err := interceptor.Intercept(ctx, next)
		if result == nil {
			return err
		}
		return Respond(ctx, result, err)
	}
}
