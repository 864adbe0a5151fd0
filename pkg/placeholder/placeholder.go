package placeholder

import (
	"regexp"
	"sync"
)

// Spec is one placeholder syntax variant, delimited by Start and End.
type Spec struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Default is the double-brace syntax used when callers supply no spec.
var Default = Spec{Start: "{{", End: "}}"}

// nameToken covers identifiers plus the punctuation used by path expressions
// and helper calls: a.b[3], items['x'], sum(10,1), first-name.
const nameToken = `[\w.(),\[\]'\-]+`

var patternCache sync.Map

// Valid reports whether both delimiters are set.
func (s Spec) Valid() bool {
	return s.Start != "" && s.End != ""
}

// Pattern returns the compiled expression matching one occurrence of s.
// The first submatch is the placeholder name.
func (s Spec) Pattern() *regexp.Regexp {
	key := s.Start + "\x00" + s.End
	if cached, ok := patternCache.Load(key); ok {
		return cached.(*regexp.Regexp)
	}
	re := regexp.MustCompile(regexp.QuoteMeta(s.Start) + `\s*(` + nameToken + `)\s*` + regexp.QuoteMeta(s.End))
	actual, _ := patternCache.LoadOrStore(key, re)
	return actual.(*regexp.Regexp)
}

// Mask removes every occurrence of each spec, applying specs in order. Specs
// whose patterns overlap produce order dependent results.
func Mask(template string, specs ...Spec) string {
	if template == "" {
		return ""
	}
	out := template
	for _, spec := range specs {
		if !spec.Valid() {
			continue
		}
		out = spec.Pattern().ReplaceAllLiteralString(out, "")
	}
	return out
}

// Extract returns the placeholder names of spec in order of appearance.
// Duplicates are preserved.
func Extract(template string, spec Spec) []string {
	names := []string{}
	if template == "" || !spec.Valid() {
		return names
	}
	for _, match := range spec.Pattern().FindAllStringSubmatch(template, -1) {
		names = append(names, match[1])
	}
	return names
}

// ExtractAll concatenates Extract for every spec, in spec order.
func ExtractAll(template string, specs ...Spec) []string {
	names := []string{}
	for _, spec := range specs {
		names = append(names, Extract(template, spec)...)
	}
	return names
}

// Replace substitutes every occurrence of spec with the value returned by fn,
// which receives the placeholder name and the full matched text.
func Replace(template string, spec Spec, fn func(name, match string) string) string {
	if template == "" || !spec.Valid() || fn == nil {
		return template
	}
	re := spec.Pattern()
	return re.ReplaceAllStringFunc(template, func(match string) string {
		sub := re.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		return fn(sub[1], match)
	})
}
