package router

import (
	"net/http"

	"github.com/aegis-go/aegis/pkg/core"
)

// groupRouter is the Router returned by Router.Group: it bakes its prefix
// and middleware into every route registered through it, then delegates
// storage to the base Router so all routes still live in one set of
// per-method trees.
type groupRouter struct {
	base  *Router
	group *core.Group
}

func (g *groupRouter) GET(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("GET", path, handler)
}
func (g *groupRouter) POST(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("POST", path, handler)
}
func (g *groupRouter) PUT(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("PUT", path, handler)
}
func (g *groupRouter) DELETE(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("DELETE", path, handler)
}
func (g *groupRouter) PATCH(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("PATCH", path, handler)
}
func (g *groupRouter) OPTIONS(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("OPTIONS", path, handler)
}
func (g *groupRouter) HEAD(path string, handler core.HandlerFunc) core.Router {
	return g.Handle("HEAD", path, handler)
}

func (g *groupRouter) Handle(method, path string, handler core.HandlerFunc) core.Router {
	return g.HandleWithOptions(method, path, handler, core.RouteOptions{})
}

// HandleWithOptions registers handler with per-route options merged under the
// group's own prefix, middleware and guards. Group middleware runs outside
// route middleware; the combined guard list (group first, then route) sits
// innermost, immediately around the handler, so guards always run after
// every middleware layer has begun.
func (g *groupRouter) HandleWithOptions(method, path string, handler core.HandlerFunc, opts core.RouteOptions) core.Router {
	merged := opts
	merged.Middleware = append(g.group.GetMiddleware(), opts.Middleware...)
	merged.Guards = append(g.group.GetGuards(), opts.Guards...)
	g.base.Handle(method, g.group.ApplyPrefix(path), core.ApplyOptions(handler, merged))
	return g
}

// UseGuards appends guards to this group, inherited by routes registered
// afterwards and by child groups.
func (g *groupRouter) UseGuards(guards ...core.Guard) core.Router {
	g.group.UseGuards(guards...)
	return g
}

// Group creates a nested group under this one, inheriting its prefix,
// middleware and guards per the parent-first composition law.
func (g *groupRouter) Group(prefix string, middleware ...core.Middleware) core.Router {
	return &groupRouter{base: g.base, group: g.group.Child(prefix, middleware...)}
}

func (g *groupRouter) Use(middleware ...core.Middleware) core.Router {
	g.group.Use(middleware...)
	return g
}

// ServeHTTP delegates to the base router so the group's handlers, once
// registered, are served from the same dispatch path as every other route.
func (g *groupRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.base.ServeHTTP(w, r)
}
