// Package transform holds value transforms applied to candidate values before
// they take part in selection, plus a registry so configuration files can refer
// to them by name.
package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cast"
)

// Func converts one candidate value. Returning nil marks the value absent.
type Func func(value any) (any, error)

// ErrUnknownTransform is returned when a name is not registered.
var ErrUnknownTransform = errors.New("transform: unknown transform")

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// Chain applies fns left to right, stopping at the first error or absent value.
func Chain(fns ...Func) Func {
	return func(value any) (any, error) {
		current := value
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			next, err := fn(current)
			if err != nil {
				return nil, err
			}
			if next == nil {
				return nil, nil
			}
			current = next
		}
		return current, nil
	}
}

// String coerces scalars to their string form.
func String(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, fmt.Errorf("transform: string: %w", err)
	}
	return s, nil
}

// Trim removes surrounding whitespace; values that trim to "" become absent.
func Trim(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	return trimmed, nil
}

// Lower lower-cases string values.
func Lower(value any) (any, error) {
	if s, ok := value.(string); ok {
		return strings.ToLower(s), nil
	}
	return value, nil
}

// Upper upper-cases string values.
func Upper(value any) (any, error) {
	if s, ok := value.(string); ok {
		return strings.ToUpper(s), nil
	}
	return value, nil
}

// StripHTML removes all markup from string values so their size reflects the
// visible text.
func StripHTML(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	return stripSanitizer().Sanitize(s), nil
}

func stripSanitizer() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

// Registry maps transform names to functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns a registry seeded with the built-in transforms: string,
// trim, lower, upper and striphtml.
func NewRegistry() *Registry {
	return &Registry{funcs: map[string]Func{
		"string":    String,
		"trim":      Trim,
		"lower":     Lower,
		"upper":     Upper,
		"striphtml": StripHTML,
	}}
}

// Register adds or replaces a named transform.
func (r *Registry) Register(name string, fn Func) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || fn == nil {
		return errors.New("transform: name and function required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Get returns the transform registered under name.
func (r *Registry) Get(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	return fn, nil
}

// Resolve chains the named transforms. An empty list yields nil.
func (r *Registry) Resolve(names ...string) (Func, error) {
	if len(names) == 0 {
		return nil, nil
	}
	fns := make([]Func, 0, len(names))
	for _, name := range names {
		fn, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fn)
	}
	if len(fns) == 1 {
		return fns[0], nil
	}
	return Chain(fns...), nil
}

// List returns the sorted transform names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
