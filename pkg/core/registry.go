package core

import (
	"reflect"
	"sync"
)

// RouteEntry is one (controller type, method, path, handler) registration as
// produced by a controller's RegisterRoutes, or by an equivalent
// code-generated registrar. The path is relative to the controller's
// base path.
type RouteEntry struct {
	ControllerType reflect.Type
	Method         string
	Path           string
	HandlerName    string
	Handler        HandlerFunc
}

// routeRegistry is the process-wide store route entries are recorded into,
// queryable by controller type. Go has no build-time code generation step in
// this repo, so in practice controllers call Record from within
// RegisterRoutes; an external generator emitting the same calls is an
// equally valid producer, per the registration data model.
type routeRegistry struct {
	mu      sync.RWMutex
	entries map[reflect.Type][]RouteEntry
}

var globalRegistry = &routeRegistry{entries: make(map[reflect.Type][]RouteEntry)}

// Record appends a route entry for controller's dynamic type to the global
// registry.
func Record(controller interface{}, entry RouteEntry) {
	t := reflect.TypeOf(controller)
	entry.ControllerType = t
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.entries[t] = append(globalRegistry.entries[t], entry)
}

// For returns a copy of the route entries recorded for controller's type.
func For(controller interface{}) []RouteEntry {
	t := reflect.TypeOf(controller)
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	out := make([]RouteEntry, len(globalRegistry.entries[t]))
	copy(out, globalRegistry.entries[t])
	return out
}
