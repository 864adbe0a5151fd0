// Package interpolate defines the seam used to render a chosen template with
// its final parameters, plus a delimiter driven implementation.
package interpolate

import (
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-tmplfit/pkg/placeholder"
)

// Interpolator fills template with params. Placeholders without a parameter
// are left to the implementation.
type Interpolator interface {
	Interpolate(template string, params map[string]any) (string, error)
}

// InterpolatorFunc adapts a function to the Interpolator interface.
type InterpolatorFunc func(template string, params map[string]any) (string, error)

// Interpolate calls f.
func (f InterpolatorFunc) Interpolate(template string, params map[string]any) (string, error) {
	return f(template, params)
}

// Replacer substitutes placeholders of the configured specs with the string
// form of the matching parameter in a single pass, so substituted values are
// never scanned again. Unknown names and absent values keep the placeholder
// text unchanged. When specs match at the same position the earlier spec wins.
type Replacer struct {
	pattern *regexp.Regexp
}

var _ Interpolator = (*Replacer)(nil)

// NewReplacer builds a Replacer for specs, defaulting to placeholder.Default.
func NewReplacer(specs ...placeholder.Spec) *Replacer {
	alternatives := make([]string, 0, len(specs))
	for _, spec := range specs {
		if spec.Valid() {
			alternatives = append(alternatives, "(?:"+spec.Pattern().String()+")")
		}
	}
	if len(alternatives) == 0 {
		alternatives = append(alternatives, placeholder.Default.Pattern().String())
	}
	return &Replacer{pattern: regexp.MustCompile(strings.Join(alternatives, "|"))}
}

// Interpolate implements Interpolator.
func (r *Replacer) Interpolate(template string, params map[string]any) (string, error) {
	if template == "" {
		return template, nil
	}
	var out strings.Builder
	last := 0
	for _, loc := range r.pattern.FindAllStringSubmatchIndex(template, -1) {
		out.WriteString(template[last:loc[0]])
		out.WriteString(r.value(template, loc, params))
		last = loc[1]
	}
	out.WriteString(template[last:])
	return out.String(), nil
}

// value renders one match. Each alternative contributes one capture group, so
// the first group that took part in the match holds the name.
func (r *Replacer) value(template string, loc []int, params map[string]any) string {
	match := template[loc[0]:loc[1]]
	for g := 2; g+1 < len(loc); g += 2 {
		if loc[g] < 0 {
			continue
		}
		value, ok := params[template[loc[g]:loc[g+1]]]
		if !ok || value == nil {
			return match
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return match
		}
		return s
	}
	return match
}
