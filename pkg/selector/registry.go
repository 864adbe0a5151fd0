package selector

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Standard strategy names.
const (
	StrategyFittest  = "fittest"
	StrategyLongest  = "longest"
	StrategyShortest = "shortest"
)

// ErrUnknownStrategy is returned by Build for unregistered names.
var ErrUnknownStrategy = errors.New("selector: unknown strategy")

// Params carries the knobs a Factory may honour.
type Params struct {
	// MaxLength bounds the rendered size for bounded strategies.
	MaxLength int
	// Limit caps enumeration; <= 0 means unlimited.
	Limit int
}

// Factory builds a Selector from Params.
type Factory func(Params) Selector

// Registry stores selector factories by strategy name.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding the standard strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(StrategyFittest, func(p Params) Selector {
		return HighestRank(WithLimit(p.Limit))
	})
	r.MustRegister(StrategyLongest, func(p Params) Selector {
		return LongestWithin(p.MaxLength, WithLimit(p.Limit))
	})
	r.MustRegister(StrategyShortest, func(p Params) Selector {
		return Shortest(WithLimit(p.Limit))
	})
	return r
}

// Register adds a factory. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("selector: strategy name is required")
	}
	if factory == nil {
		return fmt.Errorf("selector: factory for %q is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("selector: strategy %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Build constructs the selector registered under name.
func (r *Registry) Build(name string, params Params) (Selector, error) {
	r.mu.RLock()
	factory, ok := r.factories[strings.TrimSpace(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(params), nil
}

// List returns the sorted strategy names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a strategy is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[strings.TrimSpace(name)]
	return ok
}
