// Package tmplfit picks, from an ordered list of templates, the first one for
// which some combination of candidate values fits, and renders it.
//
// Quick start:
//
//	cfg := tmplfit.RenderConfig{
//		Templates: []tmplfit.TemplateSpec{
//			tmplfit.Bare("<h1>{{title}}</h1><p>{{summary}}</p>"),
//			tmplfit.Bare("<h1>{{title}}</h1>"),
//		},
//		Sources: map[string]tmplfit.ValueSource{
//			"title":   {Paths: []string{"headline", "title"}},
//			"summary": {Paths: []string{"lead", "body"}},
//		},
//	}
//	res, err := tmplfit.RenderLongest(ctx, cfg, record, 140)
package tmplfit

import (
	"context"

	"github.com/goliatone/go-tmplfit/pkg/model"
	"github.com/goliatone/go-tmplfit/pkg/orchestrator"
)

// RenderConfig aliases model.RenderConfig.
type RenderConfig = model.RenderConfig

// TemplateSpec aliases model.TemplateSpec.
type TemplateSpec = model.TemplateSpec

// ValueSource aliases model.ValueSource.
type ValueSource = model.ValueSource

// PlaceholderSpecs aliases model.PlaceholderSpecs.
type PlaceholderSpecs = model.PlaceholderSpecs

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// Bare wraps text as an always applicable template.
func Bare(text string) TemplateSpec {
	return model.Bare(text)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderFittest renders the first template whose largest combination has no
// absent values.
func RenderFittest(ctx context.Context, cfg RenderConfig, data any, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).RenderFittest(ctx, cfg, data)
}

// RenderLongest renders the first template with a combination no longer than
// maxLength, picking the longest such combination.
func RenderLongest(ctx context.Context, cfg RenderConfig, data any, maxLength int, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).RenderLongest(ctx, cfg, data, maxLength)
}
