package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aegis-go/aegis/pkg/core"
)

// Router is the concrete radix-tree router: a per-method trie mapping
// (method, path) to a handler, composed with the application-level
// middleware chain and a fallback exception filter chain for routing misses
// and unhandled errors.
//
// Routes are registered during bootstrap. There is no freeze step: a
// registration made after serving has started is still accepted. Lookups
// take only the read lock, so concurrent requests do not block one another.
type Router struct {
	mu         sync.RWMutex
	trees      map[string]*node
	registered map[string]map[string]bool
	middleware []core.Middleware
	guards     []core.Guard
	filters    *core.FilterChain
	container  core.Container
	err        error
}

// New creates an empty router. filters may be nil, in which case a private
// FilterChain is created so the router can still synthesize default error
// responses.
func New(filters *core.FilterChain) *Router {
	if filters == nil {
		filters = core.NewFilterChain()
	}
	return &Router{
		trees:      make(map[string]*node),
		registered: make(map[string]map[string]bool),
		filters:    filters,
	}
}

// SetContainer attaches the dependency injection container the router
// passes to every request Context it constructs, used by the State[T]
// extractor.
func (r *Router) SetContainer(container core.Container) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.container = container
}

// Filters returns the router's exception filter chain so the application
// can register filters onto it.
func (r *Router) Filters() *core.FilterChain {
	return r.filters
}

// Err returns the first registration error encountered (duplicate route, bad
// wildcard placement), or nil. Bootstrap must check this after registering
// every module and abort before serving if it is non-nil.
func (r *Router) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

func (r *Router) GET(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodGet, path, handler)
}
func (r *Router) POST(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodPost, path, handler)
}
func (r *Router) PUT(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodPut, path, handler)
}
func (r *Router) DELETE(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodDelete, path, handler)
}
func (r *Router) PATCH(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodPatch, path, handler)
}
func (r *Router) OPTIONS(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodOptions, path, handler)
}
func (r *Router) HEAD(path string, handler core.HandlerFunc) core.Router {
	return r.Handle(http.MethodHead, path, handler)
}

// Handle registers handler for method and path with no constraint.
func (r *Router) Handle(method, path string, handler core.HandlerFunc) core.Router {
	r.register(method, path, handler, nil)
	return r
}

// HandleWithOptions registers handler for method and path wrapped with the
// per-route middleware, guards, pipes, filters and interceptors in opts.
func (r *Router) HandleWithOptions(method, path string, handler core.HandlerFunc, opts core.RouteOptions) core.Router {
	r.register(method, path, core.ApplyOptions(handler, opts), nil)
	return r
}

// HandleConstrained registers handler for method and path, disambiguated
// against any sibling route on the same node by constraint. Constrained
// routes on the same node are tried in registration order; an unconstrained
// route on that node, if any, is always tried last.
func (r *Router) HandleConstrained(method, path string, handler core.HandlerFunc, constraint Constraint) core.Router {
	r.register(method, path, handler, constraint)
	return r
}

func (r *Router) register(method, path string, handler core.HandlerFunc, constraint Constraint) {
	method = strings.ToUpper(method)
	normalized := NormalizePath(path)

	r.mu.Lock()
	defer r.mu.Unlock()

	if constraint == nil {
		if r.registered[method] == nil {
			r.registered[method] = make(map[string]bool)
		}
		if r.registered[method][normalized] {
			r.setErr(fmt.Errorf("router: %s %s: %w", method, normalized, ErrDuplicateRoute))
			return
		}
		r.registered[method][normalized] = true
	}

	tree, ok := r.trees[method]
	if !ok {
		tree = newNode()
		r.trees[method] = tree
	}
	if err := tree.insert(splitSegments(normalized), &routeEntry{handler: handler, constraint: constraint}); err != nil {
		r.setErr(fmt.Errorf("router: %s %s: %w", method, normalized, err))
	}
}

func (r *Router) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Use appends application-level middleware, run outermost for every route.
func (r *Router) Use(middleware ...core.Middleware) core.Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, middleware...)
	return r
}

// UseGuards appends application-level guards. They wrap every registered
// handler inside the application middleware, so they are evaluated before
// any group- or route-level guard baked in at registration time.
func (r *Router) UseGuards(guards ...core.Guard) core.Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards = append(r.guards, guards...)
	return r
}

// Group creates a route group scoped under prefix with its own middleware.
func (r *Router) Group(prefix string, middleware ...core.Middleware) core.Router {
	return &groupRouter{base: r, group: core.NewGroup(prefix, middleware...)}
}

// RouteInfo describes one registered (method, path) pair, used by the CLI's
// routes subcommand.
type RouteInfo struct {
	Method string
	Path   string
}

// Routes returns every registered (method, path) pair across all methods,
// in no particular order.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []RouteInfo
	for method, tree := range r.trees {
		var paths []string
		tree.collect("", &paths)
		for _, path := range paths {
			out = append(out, RouteInfo{Method: method, Path: path})
		}
	}
	return out
}

func (r *Router) lookup(method, path string, req *http.Request) (core.HandlerFunc, map[string]string, bool) {
	r.mu.RLock()
	tree, ok := r.trees[strings.ToUpper(method)]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, false
	}
	params := make(map[string]string)
	handler, found := tree.match(splitSegments(NormalizePath(path)), params, req)
	return handler, params, found
}

// ServeHTTP is the outermost HTTP entry point: it looks up the route,
// populates path parameters, wraps the matched handler (which already has
// its group/route-level middleware and guards baked in at registration
// time) with the application-level middleware, runs it, and on any
// unhandled error or routing miss dispatches to the exception filter chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := core.NewContext(w, req)
	r.mu.RLock()
	container := r.container
	middleware := append([]core.Middleware{}, r.middleware...)
	guards := append([]core.Guard{}, r.guards...)
	r.mu.RUnlock()
	ctx.SetContainer(container)

	handler, params, found := r.lookup(req.Method, req.URL.Path, req)

	var dispatchErr error
	if !found {
		dispatchErr = core.NotFound("Not Found")
	} else {
		for key, value := range params {
			ctx.SetParam(key, value)
		}
		chained := core.Chain(core.WithGuards(handler, guards...), middleware...)
		ctx.SetHandlers([]core.HandlerFunc{chained})
		dispatchErr = ctx.Next()
	}

	if dispatchErr != nil {
		_ = r.filters.Dispatch(dispatchErr, ctx)
	}
}
