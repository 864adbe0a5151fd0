package pongo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/flosch/pongo2/v6"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/goliatone/go-tmplfit/pkg/interpolate"
)

// DefaultCacheSize is the number of compiled templates an Engine keeps.
const DefaultCacheSize = 128

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	baseDir   string
	sprig     bool
	cacheSize int
}

// WithBaseDir resolves {% include %} and {% extends %} paths against dir.
func WithBaseDir(dir string) Option {
	return func(cfg *config) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithSprig exposes the sprig generic function map as callable globals.
func WithSprig() Option {
	return func(cfg *config) {
		cfg.sprig = true
	}
}

// WithCacheSize bounds the compiled template cache. Values <= 0 disable
// caching.
func WithCacheSize(n int) Option {
	return func(cfg *config) {
		cfg.cacheSize = n
	}
}

// Engine interpolates templates with pongo2. Output values are HTML escaped
// unless the template marks them safe.
type Engine struct {
	set      *pongo2.TemplateSet
	compiled *lru.Cache[string, *pongo2.Template]
}

var _ interpolate.Interpolator = (*Engine)(nil)

// New constructs an Engine.
func New(options ...Option) (*Engine, error) {
	cfg := &config{cacheSize: DefaultCacheSize}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
	if err != nil {
		return nil, fmt.Errorf("pongo: create loader: %w", err)
	}
	engine := &Engine{set: pongo2.NewSet("tmplfit", loader)}

	if cfg.cacheSize > 0 {
		engine.compiled, err = lru.New[string, *pongo2.Template](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("pongo: create cache: %w", err)
		}
	}

	if cfg.sprig {
		globals := make(pongo2.Context)
		for name, fn := range sprig.GenericFuncMap() {
			globals[name] = fn
		}
		engine.set.Globals = globals
	}
	return engine, nil
}

// Interpolate renders template with params. Dotted parameter names are
// expanded into nested maps so {{ a.b }} resolves a parameter named "a.b".
// Names pongo2 cannot address, such as "items[0]", are left out.
func (e *Engine) Interpolate(template string, params map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("pongo: engine is nil")
	}
	tmpl, err := e.compile(template)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(contextOf(params))
	if err != nil {
		return "", fmt.Errorf("pongo: execute template: %w", err)
	}
	return out, nil
}

func (e *Engine) compile(template string) (*pongo2.Template, error) {
	if e.compiled != nil {
		if tmpl, ok := e.compiled.Get(template); ok {
			return tmpl, nil
		}
	}
	tmpl, err := e.set.FromString(template)
	if err != nil {
		return nil, fmt.Errorf("pongo: parse template: %w", err)
	}
	if e.compiled != nil {
		e.compiled.Add(template, tmpl)
	}
	return tmpl, nil
}

// CachedTemplates reports how many compiled templates are held.
func (e *Engine) CachedTemplates() int {
	if e == nil || e.compiled == nil {
		return 0
	}
	return e.compiled.Len()
}

func contextOf(params map[string]any) pongo2.Context {
	expanded := ExpandDotted(params)
	ctx := make(pongo2.Context, len(expanded))
	for key, value := range expanded {
		if isIdentifier(key) {
			ctx[key] = value
		}
	}
	return ctx
}

func isIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if r != '_' && (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// ExpandDotted turns {"a.b": 1, "c": 2} into {"a": {"b": 1}, "c": 2}. Keys
// holding brackets are copied verbatim, and a dotted key never replaces a
// non-map value already stored at one of its prefixes.
func ExpandDotted(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for key, value := range params {
		if !strings.Contains(key, ".") {
			out[key] = value
		}
	}
	for key, value := range params {
		if !strings.Contains(key, ".") {
			continue
		}
		if strings.ContainsAny(key, "[]()'") {
			out[key] = value
			continue
		}
		setPath(out, strings.Split(key, "."), value)
	}
	return out
}

func setPath(dest map[string]any, parts []string, value any) {
	current := dest
	for i, part := range parts {
		if i == len(parts)-1 {
			if _, exists := current[part]; !exists {
				current[part] = value
			}
			return
		}
		next, exists := current[part]
		if !exists {
			child := make(map[string]any)
			current[part] = child
			current = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return
		}
		current = child
	}
}
