// Package lookup resolves path expressions against arbitrary nested records.
//
// Three syntaxes are understood, tried in order by Default:
//   - exact keys, so flattened records like {"cta.headline": "..."} resolve;
//   - JSON pointers ("/author/names/0");
//   - dotted paths with optional brackets ("author.names[0]", "a['b']").
//
// A path that resolves to nil is reported as missing.
package lookup

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-openapi/jsonpointer"

	"github.com/goliatone/go-tmplfit/pkg/selector"
	"github.com/goliatone/go-tmplfit/pkg/size"
)

// Resolver reads the value at path inside record.
type Resolver interface {
	Lookup(record any, path string) (any, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(record any, path string) (any, bool)

// Lookup calls f.
func (f ResolverFunc) Lookup(record any, path string) (any, bool) {
	return f(record, path)
}

type query struct {
	record any
	path   string
}

// Chain returns a Resolver trying each resolver in order, keeping the first hit.
func Chain(resolvers ...Resolver) Resolver {
	steps := make([]func(query) (any, bool), 0, len(resolvers))
	for _, r := range resolvers {
		if r == nil {
			continue
		}
		r := r
		steps = append(steps, func(q query) (any, bool) {
			return r.Lookup(q.record, q.path)
		})
	}
	return ResolverFunc(func(record any, path string) (any, bool) {
		return selector.FirstSuccess(query{record: record, path: path}, steps...)
	})
}

// Default resolves exact keys, then JSON pointers, then dotted paths.
func Default() Resolver {
	return Chain(ResolverFunc(Exact), ResolverFunc(Pointer), ResolverFunc(Walk))
}

// Exact matches path as a literal key of a string keyed map.
func Exact(record any, path string) (any, bool) {
	if size.IsAbsent(record) || path == "" {
		return nil, false
	}
	rv := indirect(reflect.ValueOf(record))
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	v := rv.MapIndex(reflect.ValueOf(path).Convert(rv.Type().Key()))
	return present(v)
}

// Pointer resolves RFC 6901 JSON pointers. Paths not starting with "/" are
// ignored.
func Pointer(record any, path string) (any, bool) {
	if size.IsAbsent(record) || !strings.HasPrefix(path, "/") {
		return nil, false
	}
	ptr, err := jsonpointer.New(path)
	if err != nil {
		return nil, false
	}
	value, _, err := ptr.Get(record)
	if err != nil || size.IsAbsent(value) {
		return nil, false
	}
	return value, true
}

// Walk follows a dotted path through maps, slices, arrays and structs. Struct
// fields match by json tag first, then by field name.
func Walk(record any, path string) (any, bool) {
	segments := Segments(path)
	if size.IsAbsent(record) || len(segments) == 0 {
		return nil, false
	}

	current := reflect.ValueOf(record)
	for _, segment := range segments {
		current = indirect(current)
		if !current.IsValid() {
			return nil, false
		}
		next, ok := child(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return present(current)
}

// Segments splits a path expression into its keys. Brackets become separators
// and quotes around bracketed keys are dropped: a.b[3] and a['b'] yield
// [a b 3] and [a b].
func Segments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimPrefix(clean, "$.")
	if clean == "" {
		return nil
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "'", "", `"`, "")
	clean = replacer.Replace(clean)

	parts := strings.Split(clean, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func child(v reflect.Value, segment string) (reflect.Value, bool) {
	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		next := v.MapIndex(reflect.ValueOf(segment).Convert(v.Type().Key()))
		return next, next.IsValid()
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(segment)
		if err != nil || idx < 0 || idx >= v.Len() {
			return reflect.Value{}, false
		}
		return v.Index(idx), true
	case reflect.Struct:
		return field(v, segment)
	default:
		return reflect.Value{}, false
	}
}

func field(v reflect.Value, segment string) (reflect.Value, bool) {
	rt := v.Type()
	byName := -1
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if tag := strings.Split(f.Tag.Get("json"), ",")[0]; tag == segment {
			return v.Field(i), true
		}
		if byName < 0 && strings.EqualFold(f.Name, segment) {
			byName = i
		}
	}
	if byName >= 0 {
		return v.Field(byName), true
	}
	return reflect.Value{}, false
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func present(v reflect.Value) (any, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	out := v.Interface()
	if size.IsAbsent(out) {
		return nil, false
	}
	return out, true
}
