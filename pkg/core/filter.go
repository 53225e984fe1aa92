package core

import (
	"net/http"
	"sort"
	"sync"
)

// filterRegistration pairs a registered Filter with its dispatch priority
// and the order it was registered in, used as the tie-break when two
// filters share a priority.
type filterRegistration struct {
	filter   Filter
	priority int
	name     string
	order    int
}

// FilterChain dispatches an error to the highest-priority registered filter
// willing to handle it, falling back to a default JSON error body when no
// filter produces a response.
type FilterChain struct {
	mu      sync.RWMutex
	filters []*filterRegistration
	seq     int
}

// NewFilterChain creates an empty filter chain.
func NewFilterChain() *FilterChain {
	return &FilterChain{}
}

// Register adds a filter at the given priority. Higher priority values are
// tried first; among equal priorities, earlier registrations are tried
// first.
func (fc *FilterChain) Register(filter Filter, priority int, name string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.filters = append(fc.filters, &filterRegistration{
		filter:   filter,
		priority: priority,
		name:     name,
		order:    fc.seq,
	})
	fc.seq++
}

// Dispatch converts err into a response written through ctx. It tries
// registered filters in (priority descending, registration order ascending)
// order, skipping any whose FilterMatcher.Handles() rejects the error's
// kind, and stops at the first filter that successfully writes a response.
// If no filter handles the error, a default response is synthesized from the
// error kind's mapped HTTP status.
func (fc *FilterChain) Dispatch(err error, ctx Context) error {
	if err == nil {
		return nil
	}
	fc.mu.RLock()
	candidates := make([]*filterRegistration, len(fc.filters))
	copy(candidates, fc.filters)
	fc.mu.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority > candidates[j].priority
		}
		return candidates[i].order < candidates[j].order
	})

	kind := KindOf(err)
	for _, reg := range candidates {
		if matcher, ok := reg.filter.(FilterMatcher); ok && !acceptsKind(matcher.Handles(), kind) {
			continue
		}
		if catchErr := reg.filter.Catch(err, ctx); catchErr == nil {
			return nil
		}
	}
	return writeDefaultError(ctx, err)
}

// acceptsKind reports whether a filter's Handles() set admits kind. A nil
// set means the filter catches every kind.
func acceptsKind(kinds []ErrorKind, kind ErrorKind) bool {
	if kinds == nil {
		return true
	}
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// errorBody is the default JSON shape synthesized when no filter handles an
// error: {"error": message, "status": n}.
type errorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func writeDefaultError(ctx Context, err error) error {
	if ctx.IsWritten() {
		return nil
	}
	status := http.StatusInternalServerError
	message := err.Error()
	if e, ok := err.(*Error); ok {
		status = e.Status()
	}
	return ctx.JSON(status, errorBody{Error: message, Status: status})
}
