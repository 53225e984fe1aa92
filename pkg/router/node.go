package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aegis-go/aegis/pkg/core"
)

// Constraint is a predicate over the params matched so far and the inbound
// request, used to disambiguate routes registered on the same terminal node.
// A constraint is tried in the order it was registered; a route with no
// constraint is always tried last among its peers.
type Constraint func(params map[string]string, r *http.Request) bool

// ErrDuplicateRoute is returned when an unconstrained route is registered
// twice for the same (method, path) pair.
var ErrDuplicateRoute = fmt.Errorf("router: duplicate route registration")

// ErrWildcardNotLast is returned when a wildcard segment is followed by
// further path segments.
var ErrWildcardNotLast = fmt.Errorf("router: wildcard segment must be the last segment")

type routeEntry struct {
	handler    core.HandlerFunc
	constraint Constraint
}

// node is one segment-trie node of a per-method radix router. Children are
// keyed by literal segment text; each node additionally carries at most one
// parameter child (":name") and one wildcard child ("*rest"), matched
// greedy-literal-first, then parameter, then wildcard.
type node struct {
	staticChildren map[string]*node
	paramChild     *node
	paramName      string
	wildcardChild  *node
	wildcardName   string
	routes         []*routeEntry
}

func newNode() *node {
	return &node{staticChildren: make(map[string]*node)}
}

func (n *node) insert(segments []string, rt *routeEntry) error {
	if len(segments) == 0 {
		return n.addRoute(rt)
	}
	segment := segments[0]
	rest := segments[1:]

	switch {
	case strings.HasPrefix(segment, ":"):
		name := segment[1:]
		if n.paramChild == nil {
			n.paramChild = newNode()
			n.paramChild.paramName = name
		}
		return n.paramChild.insert(rest, rt)
	case strings.HasPrefix(segment, "*"):
		if len(rest) != 0 {
			return ErrWildcardNotLast
		}
		name := segment[1:]
		if n.wildcardChild == nil {
			n.wildcardChild = newNode()
			n.wildcardChild.wildcardName = name
		}
		return n.wildcardChild.addRoute(rt)
	default:
		child, ok := n.staticChildren[segment]
		if !ok {
			child = newNode()
			n.staticChildren[segment] = child
		}
		return child.insert(rest, rt)
	}
}

// addRoute appends rt to this terminal node's route list. Unconstrained
// routes must be unique; constrained routes are inserted ahead of any
// unconstrained route so the unconstrained one (if present) is always tried
// last, while preserving relative insertion order among constrained peers.
func (n *node) addRoute(rt *routeEntry) error {
	if rt.constraint == nil {
		for _, existing := range n.routes {
			if existing.constraint == nil {
				return ErrDuplicateRoute
			}
		}
		n.routes = append(n.routes, rt)
		return nil
	}
	insertAt := len(n.routes)
	for i, existing := range n.routes {
		if existing.constraint == nil {
			insertAt = i
			break
		}
	}
	n.routes = append(n.routes, nil)
	copy(n.routes[insertAt+1:], n.routes[insertAt:])
	n.routes[insertAt] = rt
	return nil
}

// match walks segments against this subtree, preferring a literal child,
// then the parameter child, then the wildcard child, and returns the first
// successful terminal resolution.
func (n *node) match(segments []string, params map[string]string, r *http.Request) (core.HandlerFunc, bool) {
	if len(segments) == 0 {
		return n.resolve(params, r)
	}

	segment := segments[0]
	rest := segments[1:]

	if child, ok := n.staticChildren[segment]; ok {
		if handler, found := child.match(rest, params, r); found {
			return handler, true
		}
	}

	if n.paramChild != nil {
		params[n.paramChild.paramName] = segment
		if handler, found := n.paramChild.match(rest, params, r); found {
			return handler, true
		}
		delete(params, n.paramChild.paramName)
	}

	if n.wildcardChild != nil {
		remainder := strings.Join(segments, "/")
		params[n.wildcardChild.wildcardName] = remainder
		if handler, found := n.wildcardChild.resolve(params, r); found {
			return handler, true
		}
		delete(params, n.wildcardChild.wildcardName)
	}

	return nil, false
}

func (n *node) resolve(params map[string]string, r *http.Request) (core.HandlerFunc, bool) {
	for _, rt := range n.routes {
		if rt.constraint == nil || rt.constraint(params, r) {
			return rt.handler, true
		}
	}
	return nil, false
}

// collect walks the subtree depth-first, appending one path per terminal
// route found, used to print a route table (see Router.Routes).
func (n *node) collect(prefix string, out *[]string) {
	for range n.routes {
		if prefix == "" {
			*out = append(*out, "/")
		} else {
			*out = append(*out, prefix)
		}
	}
	for segment, child := range n.staticChildren {
		child.collect(prefix+"/"+segment, out)
	}
	if n.paramChild != nil {
		n.paramChild.collect(prefix+"/:"+n.paramChild.paramName, out)
	}
	if n.wildcardChild != nil {
		n.wildcardChild.collect(prefix+"/*"+n.wildcardChild.wildcardName, out)
	}
}
