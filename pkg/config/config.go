// Package config loads render configurations from JSON or YAML documents.
//
// A document lists candidate templates in priority order, the value sources
// feeding their placeholders and the selection strategy:
//
//	templates:
//	  - text: "<a>{{title}}</a> by {{author}}"
//	    require: [author]
//	    when: len(author) < 20
//	  - "<a>{{title}}</a>"
//	sources:
//	  title:
//	    paths: [headline, title]
//	    transform: [striphtml, trim]
//	  author: byline.name
//	strategy: longest
//	maxLength: 80
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-tmplfit/pkg/model"
	"github.com/goliatone/go-tmplfit/pkg/rule"
	"github.com/goliatone/go-tmplfit/pkg/selector"
	"github.com/goliatone/go-tmplfit/pkg/transform"
)

// File is the decoded configuration document.
type File struct {
	Templates    []TemplateEntry        `json:"templates" yaml:"templates"`
	Sources      map[string]SourceEntry `json:"sources" yaml:"sources"`
	Placeholders model.PlaceholderSpecs `json:"placeholders" yaml:"placeholders"`
	Strategy     string                 `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	MaxLength    int                    `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Limit        int                    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// TemplateEntry is either a bare template string or an object with text,
// required source names and an optional applicability rule.
type TemplateEntry struct {
	Text    string   `json:"text" yaml:"text"`
	Require []string `json:"require,omitempty" yaml:"require,omitempty"`
	When    string   `json:"when,omitempty" yaml:"when,omitempty"`
}

// UnmarshalJSON accepts a plain string or an object.
func (t *TemplateEntry) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*t = TemplateEntry{Text: text}
		return nil
	}
	type entry TemplateEntry
	var raw entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = TemplateEntry(raw)
	return nil
}

// UnmarshalYAML accepts a plain string or a mapping.
func (t *TemplateEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*t = TemplateEntry{Text: node.Value}
		return nil
	}
	type entry TemplateEntry
	var raw entry
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*t = TemplateEntry(raw)
	return nil
}

// SourceEntry configures one value source. A bare string or list decodes as
// Paths.
type SourceEntry struct {
	Paths     StringList `json:"paths" yaml:"paths"`
	Transform StringList `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// UnmarshalJSON accepts a path, a path list or an object.
func (s *SourceEntry) UnmarshalJSON(data []byte) error {
	var paths StringList
	if err := json.Unmarshal(data, &paths); err == nil {
		*s = SourceEntry{Paths: paths}
		return nil
	}
	type entry SourceEntry
	var raw entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SourceEntry(raw)
	return nil
}

// UnmarshalYAML accepts a path, a path list or a mapping.
func (s *SourceEntry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		var paths StringList
		if err := node.Decode(&paths); err != nil {
			return err
		}
		*s = SourceEntry{Paths: paths}
		return nil
	}
	type entry SourceEntry
	var raw entry
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*s = SourceEntry(raw)
	return nil
}

// StringList decodes from a single string or a list of strings.
type StringList []string

// UnmarshalJSON accepts "a" or ["a", "b"].
func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = StringList{node.Value}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return err
	}
	*l = many
	return nil
}

// Parse decodes data as JSON, falling back to YAML, and validates the result.
// source names the document in error messages.
func Parse(data []byte, source string) (File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, fmt.Errorf("config: file %s is empty", source)
	}

	var file File
	jsonErr := json.Unmarshal(data, &file)
	if jsonErr != nil {
		file = File{}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return File{}, fmt.Errorf("config: parse %s: invalid JSON or YAML: %w", source, err)
		}
	}

	if err := file.Validate(); err != nil {
		return File{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return file, nil
}

// LoadFS reads and parses path from fsys.
func LoadFS(fsys fs.FS, path string) (File, error) {
	if fsys == nil {
		return File{}, errors.New("config: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return File{}, errors.New("config: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Validate checks the document for structural errors.
func (f File) Validate() error {
	if len(f.Templates) == 0 {
		return errors.New("at least one template is required")
	}
	for i, tmpl := range f.Templates {
		if tmpl.Text == "" {
			return fmt.Errorf("template %d is empty", i)
		}
		if _, err := rule.Compile(tmpl.When); err != nil {
			return fmt.Errorf("template %d: %w", i, err)
		}
	}
	for name, source := range f.Sources {
		if strings.TrimSpace(name) == "" {
			return errors.New("source name is required")
		}
		if len(source.Paths) == 0 {
			return fmt.Errorf("source %q has no paths", name)
		}
	}
	for _, spec := range f.Placeholders.All() {
		if !spec.Valid() {
			return fmt.Errorf("placeholder delimiters %q %q are invalid", spec.Start, spec.End)
		}
	}
	if f.MaxLength < 0 {
		return fmt.Errorf("maxLength %d is negative", f.MaxLength)
	}
	return nil
}

// RenderConfig converts the document into a model.RenderConfig, resolving
// transform names against transforms. A nil registry uses the built-ins.
func (f File) RenderConfig(transforms *transform.Registry) (model.RenderConfig, error) {
	if transforms == nil {
		transforms = transform.NewRegistry()
	}

	cfg := model.RenderConfig{
		Templates:    make([]model.TemplateSpec, 0, len(f.Templates)),
		Sources:      make(map[string]model.ValueSource, len(f.Sources)),
		Placeholders: f.Placeholders,
	}
	for i, tmpl := range f.Templates {
		spec := model.TemplateSpec{
			Text:    tmpl.Text,
			Require: append([]string(nil), tmpl.Require...),
		}
		if strings.TrimSpace(tmpl.When) != "" {
			r, err := rule.Compile(tmpl.When)
			if err != nil {
				return model.RenderConfig{}, fmt.Errorf("config: template %d: %w", i, err)
			}
			spec.Applicable = r.Predicate()
		}
		cfg.Templates = append(cfg.Templates, spec)
	}
	for name, source := range f.Sources {
		fn, err := transforms.Resolve(source.Transform...)
		if err != nil {
			return model.RenderConfig{}, fmt.Errorf("config: source %q: %w", name, err)
		}
		cfg.Sources[name] = model.ValueSource{
			Paths:     append([]string(nil), source.Paths...),
			Transform: fn,
		}
	}
	return cfg, nil
}

// StrategyName returns the configured strategy, defaulting to longest when a
// maxLength is set and fittest otherwise.
func (f File) StrategyName() string {
	if name := strings.ToLower(strings.TrimSpace(f.Strategy)); name != "" {
		return name
	}
	if f.MaxLength > 0 {
		return selector.StrategyLongest
	}
	return selector.StrategyFittest
}

// Selector builds the configured strategy from registry. A nil registry uses
// selector.DefaultRegistry.
func (f File) Selector(registry *selector.Registry) (selector.Selector, error) {
	if registry == nil {
		registry = selector.DefaultRegistry()
	}
	sel, err := registry.Build(f.StrategyName(), selector.Params{MaxLength: f.MaxLength, Limit: f.Limit})
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return sel, nil
}
