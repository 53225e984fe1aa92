package core

import (
	"reflect"
	"strconv"
	"strings"
)

// TypedHandlerFunc is a handler that receives a pointer to an aggregate
// request struct T whose fields are populated from the path, query and body
// of the incoming request via struct tags (path, query, json), then
// validated with the validate tag. It returns a responder value (see
// Respond) rather than writing through ctx directly.
type TypedHandlerFunc[T any] func(ctx Context, req *T) (interface{}, error)

// Handler adapts a TypedHandlerFunc into the universal HandlerFunc shape,
// performing extract-then-call-then-respond once per call. This is the
// monomorphized, boxed typed-handler wrapper: each distinct T produces its
// own closure at compile time, so there is no runtime reflection on the
// handler's own shape, only on T's fields during Bind.
func Handler[T any](fn TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context) error {
		req, err := Bind[T](ctx)
		if err != nil {
			return err
		}
		result, err := fn(ctx, req)
		return Respond(ctx, result, err)
	}
}

// Bind extracts path parameters, query parameters and a JSON or form body
// into a new T, runs struct validation, then applies any pipes attached to
// the matched route (see ApplyOptions). A malformed body fails with
// Deserialization; a validation tag failure fails with Validation.
func Bind[T any](ctx Context) (*T, error) {
	v := new(T)
	if err := bindBody(ctx, v); err != nil {
		return nil, err
	}
	bindTagged(ctx, v, "path", ctx.Param)
	bindTagged(ctx, v, "query", ctx.Query)
	if err := validateStruct(*v); err != nil {
		return nil, err
	}
	for _, pipe := range RoutePipes(ctx) {
		out, err := pipe.Transform(v, PipeMetadata{Type: "body"})
		if err != nil {
			return nil, err
		}
		if typed, ok := out.(*T); ok {
			v = typed
		}
	}
	return v, nil
}

func bindBody(ctx Context, v interface{}) error {
	rt := reflect.TypeOf(v).Elem()
	if rt.Kind() != reflect.Struct {
		return nil
	}
	hasJSONTag := false
	for i := 0; i < rt.NumField(); i++ {
		if _, ok := rt.Field(i).Tag.Lookup("json"); ok {
			hasJSONTag = true
			break
		}
	}
	if !hasJSONTag {
		return nil
	}
	req := ctx.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil
	}
	contentType := ctx.GetHeader("Content-Type")
	switch {
	case strings.Contains(contentType, "application/json"):
		if err := ctx.Body(v); err != nil {
			return Deserialization(err)
		}
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		if err := req.ParseForm(); err != nil {
			return Deserialization(err)
		}
		bindForm(req.PostForm, v)
	}
	return nil
}

func bindForm(values map[string][]string, v interface{}) {
	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		name := strings.Split(tag, ",")[0]
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			continue
		}
		setField(rv.Field(i), vals[0])
	}
}

// bindTagged sets each field in v tagged `tagName:"key"` from lookup(key).
func bindTagged(ctx Context, v interface{}, tagName string, lookup func(string) string) {
	rv := reflect.ValueOf(v).Elem()
	rt := rv.Type()
	if rt.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < rt.NumField(); i++ {
		tag, ok := rt.Field(i).Tag.Lookup(tagName)
		if !ok || tag == "" {
			continue
		}
		value := lookup(tag)
		if value == "" {
			continue
		}
		setField(rv.Field(i), value)
	}
}

func setField(field reflect.Value, value string) {
	if !field.CanSet() {
		return
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			field.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n, err := strconv.ParseUint(value, 10, 64); err == nil {
			field.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			field.SetFloat(f)
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(value); err == nil {
			field.SetBool(b)
		}
	}
}

// State retrieves a shared reference to a container-registered provider of
// type T. A provider missing from the container is a bootstrap bug, surfaced
// as an Internal error rather than a panic.
func State[T any](ctx Context) (T, error) {
	var zero T
	container := ctx.Container()
	if container == nil {
		return zero, Internal("core: request has no container attached")
	}
	return Resolve[T](container)
}

// extensionKey namespaces type-keyed request extensions within the Context's
// general string-keyed value store, keeping Ext[T] O(1) without requiring a
// second map on Context.
func extensionKey[T any]() string {
	return "ext:" + TypeToken[T]().(reflect.Type).String()
}

// Ext retrieves per-request typed state previously stored with SetExt.
// Missing state is an Internal error, mirroring State[T]'s bootstrap-bug
// semantics for per-request data a middleware was supposed to populate.
func Ext[T any](ctx Context) (T, error) {
	var zero T
	value := ctx.GetValue(extensionKey[T]())
	if value == nil {
		return zero, Internal("core: no request extension registered for the requested type")
	}
	typed, ok := value.(T)
	if !ok {
		return zero, Internal("core: request extension type mismatch")
	}
	return typed, nil
}

// SetExt stores per-request typed state retrievable later with Ext[T].
func SetExt[T any](ctx Context, value T) {
	ctx.SetValue(extensionKey[T](), value)
}
