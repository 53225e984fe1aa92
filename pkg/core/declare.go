package core

// This file accepts hand-written declaration data as an alternative to
// method-based controllers, the same registration surface a code generator
// emits.

// MountController registers every route in meta on r, under meta.Prefix and
// with the controller-level middleware and guards merged into each route's
// own options. It is the data-driven equivalent of a Controller's
// RegisterRoutes method.
func MountController(r Router, meta ControllerMetadata) {
	group := r.Group(meta.Prefix, meta.Middleware...)
	if len(meta.Guards) > 0 {
		group.UseGuards(meta.Guards...)
	}
	for _, route := range meta.Routes {
		group.HandleWithOptions(route.Method.String(), route.Path, route.Handler, RouteOptions{
			Middleware:   route.Middleware,
			Guards:       route.Guards,
			Pipes:        route.Pipes,
			Filters:      route.Filters,
			Interceptors: route.Interceptors,
		})
	}
}

// ProviderFromMetadata builds a Provider from declaration metadata.
// Dependencies are advisory: factories resolve what they need through the
// container, and the list is kept for inspection tooling.
func ProviderFromMetadata(meta ProviderMetadata) Provider {
	return NewProvider(meta.Token, meta.Scope, meta.Factory)
}
