package core

import "strings"

// Group is a scoped aggregation of a path prefix, middleware and guards.
// Groups are values: constructing one does not attach it to any router, and
// routes declared "inside" a group copy its prefix, middleware and guards at
// registration time rather than referencing the group itself.
type Group struct {
	parent     *Group
	prefix     string
	middleware []Middleware
	guards     []Guard
}

// NewGroup creates a root group with the given prefix and middleware.
func NewGroup(prefix string, middleware ...Middleware) *Group {
	return &Group{prefix: normalizeGroupSegment(prefix), middleware: append([]Middleware{}, middleware...)}
}

// Child creates a group nested under g, inheriting its prefix, middleware
// and guards.
func (g *Group) Child(prefix string, middleware ...Middleware) *Group {
	return &Group{
		parent:     g,
		prefix:     normalizeGroupSegment(prefix),
		middleware: append([]Middleware{}, middleware...),
	}
}

// Use appends middleware to this group. Child groups, whether created before
// or after this call, see it through GetMiddleware's live parent walk; routes
// registered earlier keep the list they copied at registration time.
func (g *Group) Use(middleware ...Middleware) {
	g.middleware = append(g.middleware, middleware...)
}

// UseGuards appends guards to this group.
func (g *Group) UseGuards(guards ...Guard) {
	g.guards = append(g.guards, guards...)
}

// GetPrefix returns the parent prefix concatenated with this group's own
// prefix, both normalized to a leading slash with no trailing slash.
func (g *Group) GetPrefix() string {
	if g.parent == nil {
		if g.prefix == "" {
			return "/"
		}
		return g.prefix
	}
	parent := strings.TrimSuffix(g.parent.GetPrefix(), "/")
	if g.prefix == "" {
		if parent == "" {
			return "/"
		}
		return parent
	}
	return parent + g.prefix
}

// ApplyPrefix returns the full path for a route declared inside this group.
// ApplyPrefix("") and ApplyPrefix("/") both yield the group's own prefix.
func (g *Group) ApplyPrefix(path string) string {
	prefix := g.GetPrefix()
	if path == "" || path == "/" {
		return prefix
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if prefix == "/" {
		return path
	}
	return prefix + path
}

// GetMiddleware returns the parent's middleware concatenated with this
// group's own middleware, parent first.
func (g *Group) GetMiddleware() []Middleware {
	if g.parent == nil {
		return append([]Middleware{}, g.middleware...)
	}
	return append(g.parent.GetMiddleware(), g.middleware...)
}

// GetGuards returns the parent's guards concatenated with this group's own
// guards, parent first.
func (g *Group) GetGuards() []Guard {
	if g.parent == nil {
		return append([]Guard{}, g.guards...)
	}
	return append(g.parent.GetGuards(), g.guards...)
}

func normalizeGroupSegment(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimSuffix(p, "/")
}
