package size

import (
	"reflect"
	"unicode/utf8"
)

// Sizer lets custom values report their own size instead of relying on
// reflection.
type Sizer interface {
	Size() int
}

// Repeated counts Value once per occurrence. Use it when one selected value is
// rendered Times times.
type Repeated struct {
	Value any
	Times int
}

// Size implements Sizer.
func (r Repeated) Size() int {
	if r.Times <= 0 {
		return 0
	}
	return Of(r.Value) * r.Times
}

// Unwrap returns v without a Repeated wrapper.
func Unwrap(v any) any {
	if r, ok := v.(Repeated); ok {
		return r.Value
	}
	return v
}

// IsAbsent reports whether v carries no value: an untyped nil, or a nil
// pointer, map, slice, func, chan or interface stored in an any.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Of returns the member count of v. Strings count runes, collections count
// elements, structs count exported fields and pointers are followed. Scalars
// and absent values have size 0.
func Of(v any) int {
	if IsAbsent(v) {
		return 0
	}
	if s, ok := v.(Sizer); ok {
		return s.Size()
	}

	switch typed := v.(type) {
	case string:
		return utf8.RuneCountInString(typed)
	case []byte:
		return len(typed)
	case []any:
		return len(typed)
	case map[string]any:
		return len(typed)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String())
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len()
	case reflect.Struct:
		count := 0
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			if rt.Field(i).IsExported() {
				count++
			}
		}
		return count
	default:
		return 0
	}
}
