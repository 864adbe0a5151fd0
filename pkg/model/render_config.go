package model

import (
	"sort"

	"github.com/goliatone/go-tmplfit/pkg/placeholder"
	"github.com/goliatone/go-tmplfit/pkg/size"
	"github.com/goliatone/go-tmplfit/pkg/transform"
)

// PlaceholderSpecs groups the syntaxes a template uses. Mask placeholders are
// removed before selection, their values are always taken as the first present
// candidate. Extract placeholders take part in selection.
type PlaceholderSpecs struct {
	Mask    []placeholder.Spec `json:"mask" yaml:"mask"`
	Extract []placeholder.Spec `json:"extract" yaml:"extract"`
}

// ExtractSpecs returns the configured extract specs, or placeholder.Default
// when none are set.
func (p PlaceholderSpecs) ExtractSpecs() []placeholder.Spec {
	if len(p.Extract) == 0 {
		return []placeholder.Spec{placeholder.Default}
	}
	return p.Extract
}

// All returns mask specs followed by extract specs.
func (p PlaceholderSpecs) All() []placeholder.Spec {
	out := make([]placeholder.Spec, 0, len(p.Mask)+len(p.Extract)+1)
	out = append(out, p.Mask...)
	return append(out, p.ExtractSpecs()...)
}

// Candidates maps a source name to its resolved candidate values, in path
// order.
type Candidates map[string][]any

// First returns the first present candidate for name.
func (c Candidates) First(name string) (any, bool) {
	for _, v := range c[name] {
		if !size.IsAbsent(v) {
			return v, true
		}
	}
	return nil, false
}

// HasPresent reports whether name has at least one present candidate.
func (c Candidates) HasPresent(name string) bool {
	_, ok := c.First(name)
	return ok
}

// Predicate decides template applicability from the resolved candidates and
// the template's Require keys.
type Predicate func(candidates Candidates, keys []string) bool

// TemplateSpec is one candidate template.
type TemplateSpec struct {
	// Text is the template source, rendered unmasked on success.
	Text string
	// Require names sources that need a present candidate for the template to
	// be eligible.
	Require []string
	// Applicable replaces the Require check when set. It still receives Require.
	Applicable Predicate
}

// Bare wraps text as an always applicable template.
func Bare(text string) TemplateSpec {
	return TemplateSpec{Text: text}
}

// IsApplicable evaluates the template against candidates.
func (t TemplateSpec) IsApplicable(candidates Candidates) bool {
	if t.Applicable != nil {
		return t.Applicable(candidates, t.Require)
	}
	for _, key := range t.Require {
		if !candidates.HasPresent(key) {
			return false
		}
	}
	return true
}

// ValueSource tells the orchestrator where candidate values for one name come
// from.
type ValueSource struct {
	// Paths are looked up against the data record in order; each hit becomes a
	// candidate.
	Paths []string
	// Transform, when set, converts every resolved value before it becomes a
	// candidate. A nil result marks the value absent.
	Transform transform.Func
}

// RenderConfig is the per call configuration of the orchestrator.
type RenderConfig struct {
	Templates    []TemplateSpec
	Sources      map[string]ValueSource
	Placeholders PlaceholderSpecs
}

// SourceNames returns the configured source names, sorted.
func (c RenderConfig) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
