package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-tmplfit/pkg/combinator"
	"github.com/goliatone/go-tmplfit/pkg/interpolate"
	"github.com/goliatone/go-tmplfit/pkg/lookup"
	"github.com/goliatone/go-tmplfit/pkg/model"
	"github.com/goliatone/go-tmplfit/pkg/placeholder"
	"github.com/goliatone/go-tmplfit/pkg/selector"
	"github.com/goliatone/go-tmplfit/pkg/size"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithResolver injects the path lookup used to resolve value sources.
func WithResolver(resolver lookup.Resolver) Option {
	return func(o *Orchestrator) {
		o.resolver = resolver
	}
}

// WithInterpolator injects the engine that renders the winning template. When
// omitted a placeholder Replacer covering the config's mask and extract specs
// is built per call.
func WithInterpolator(interpolator interpolate.Interpolator) Option {
	return func(o *Orchestrator) {
		o.interpolator = interpolator
	}
}

// WithSelector overrides the selector Render uses.
func WithSelector(sel selector.Selector) Option {
	return func(o *Orchestrator) {
		o.selector = sel
	}
}

// WithLogger attaches a structured logger. Records are emitted at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithIterationLimit caps the tuples enumerated per template by the built-in
// selectors. Values <= 0 disable the cap.
func WithIterationLimit(n int) Option {
	return func(o *Orchestrator) {
		o.limit = n
	}
}

// WithTransformer registers a hook that can rewrite candidates after sources
// are resolved and before templates are tried.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator walks an ordered template list and renders the first template
// for which the selector finds an acceptable combination of candidate values.
type Orchestrator struct {
	resolver     lookup.Resolver
	interpolator interpolate.Interpolator
	selector     selector.Selector
	transformer  Transformer
	logger       *slog.Logger
	limit        int
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Result describes the outcome of a render.
type Result struct {
	// Found reports whether a template produced output.
	Found bool
	// Text is the rendered template.
	Text string
	// Template is the index of the rendered template, -1 when none fit.
	Template int
	// Tuple is the winning selection: the masked skeleton followed by one
	// value per extracted placeholder.
	Tuple []any
	// Names lists the extracted placeholder names matching Tuple[1:].
	Names []string
	// Params is the mapping handed to the interpolator.
	Params map[string]any
	// Truncated is set when any template's enumeration hit the iteration limit.
	Truncated bool
}

// Render runs the configured selector over cfg's templates.
func (o *Orchestrator) Render(ctx context.Context, cfg model.RenderConfig, data any) (Result, error) {
	return o.render(ctx, cfg, data, o.selector)
}

// RenderFittest renders the first template whose combination with the greatest
// total size contains no absent values.
func (o *Orchestrator) RenderFittest(ctx context.Context, cfg model.RenderConfig, data any) (Result, error) {
	return o.render(ctx, cfg, data, selector.HighestRank(selector.WithLimit(o.limit)))
}

// RenderLongest renders the first template that has a combination whose total
// size, skeleton included, does not exceed maxLength. A maxLength <= 0 behaves
// like RenderFittest.
func (o *Orchestrator) RenderLongest(ctx context.Context, cfg model.RenderConfig, data any, maxLength int) (Result, error) {
	return o.render(ctx, cfg, data, selector.LongestWithin(maxLength, selector.WithLimit(o.limit)))
}

func (o *Orchestrator) render(ctx context.Context, cfg model.RenderConfig, data any, sel selector.Selector) (Result, error) {
	result := Result{Template: -1}
	if ctx == nil {
		return result, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	if sel == nil {
		return result, errors.New("orchestrator: selector is required")
	}

	candidates, err := o.resolveCandidates(cfg, data)
	if err != nil {
		return result, err
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, candidates); err != nil {
			return result, fmt.Errorf("orchestrator: transform candidates: %w", err)
		}
	}

	interpolator := o.interpolator
	if interpolator == nil {
		interpolator = interpolate.NewReplacer(cfg.Placeholders.All()...)
	}

	for index, tmpl := range cfg.Templates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if !tmpl.IsApplicable(candidates) {
			o.logger.Debug("template skipped", "template", index, "applicable", false)
			continue
		}

		names, seqs := o.sequences(cfg, tmpl.Text, candidates, data)
		selection, err := sel.Select(seqs)
		if err != nil {
			if errors.Is(err, combinator.ErrEmptySequence) {
				o.logger.Debug("template has no candidates", "template", index, "applicable", true)
				continue
			}
			return result, fmt.Errorf("orchestrator: select template %d: %w", index, err)
		}
		result.Truncated = result.Truncated || selection.Truncated
		o.logger.Debug("template evaluated",
			"template", index,
			"applicable", true,
			"tuples", selection.Considered,
			"truncated", selection.Truncated,
			"found", selection.Found,
		)
		if !selection.Found {
			continue
		}

		tuple := unwrapTuple(selection.Tuple)
		params := defaultParams(cfg, candidates)
		for i, name := range names {
			params[name] = tuple[i+1]
		}

		text, err := interpolator.Interpolate(tmpl.Text, params)
		if err != nil {
			return result, fmt.Errorf("orchestrator: interpolate template %d: %w", index, err)
		}

		result.Found = true
		result.Text = text
		result.Template = index
		result.Tuple = tuple
		result.Names = names
		result.Params = params
		return result, nil
	}

	o.logger.Debug("no template fits", "templates", len(cfg.Templates))
	return result, nil
}

func (o *Orchestrator) resolveCandidates(cfg model.RenderConfig, data any) (model.Candidates, error) {
	candidates := make(model.Candidates, len(cfg.Sources))
	for _, name := range cfg.SourceNames() {
		source := cfg.Sources[name]
		values := make([]any, 0, len(source.Paths))
		for _, path := range source.Paths {
			value, ok := o.resolver.Lookup(data, path)
			if !ok {
				value = nil
			}
			if source.Transform != nil && !size.IsAbsent(value) {
				transformed, err := source.Transform(value)
				if err != nil {
					return nil, fmt.Errorf("orchestrator: transform %q path %q: %w", name, path, err)
				}
				value = transformed
			}
			values = append(values, value)
		}
		candidates[name] = values
	}
	return candidates, nil
}

// sequences builds the selection input for one template: the masked skeleton
// followed by the present candidates of every distinct extracted name. Values of
// a name used more than once are wrapped in size.Repeated so the selector
// measures every rendered occurrence.
func (o *Orchestrator) sequences(cfg model.RenderConfig, text string, candidates model.Candidates, data any) ([]string, [][]any) {
	specs := cfg.Placeholders.ExtractSpecs()
	masked := placeholder.Mask(text, cfg.Placeholders.Mask...)
	skeleton := placeholder.Mask(masked, specs...)

	names, counts := uniqueNames(placeholder.ExtractAll(masked, specs...))
	seqs := make([][]any, 0, len(names)+1)
	seqs = append(seqs, []any{skeleton})
	for _, name := range names {
		values, configured := candidates[name]
		if !configured {
			values = nil
			if value, ok := o.resolver.Lookup(data, name); ok {
				values = []any{value}
			}
		}
		seqs = append(seqs, repeat(presentOnly(values), counts[name]))
	}
	return names, seqs
}

func defaultParams(cfg model.RenderConfig, candidates model.Candidates) map[string]any {
	params := make(map[string]any, len(cfg.Sources))
	for _, name := range cfg.SourceNames() {
		if value, ok := candidates.First(name); ok {
			params[name] = value
		}
	}
	return params
}

// uniqueNames returns names in first appearance order with their occurrence
// counts.
func uniqueNames(names []string) ([]string, map[string]int) {
	counts := make(map[string]int, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if counts[name] == 0 {
			out = append(out, name)
		}
		counts[name]++
	}
	return out, counts
}

func repeat(values []any, times int) []any {
	if times <= 1 {
		return values
	}
	for i, v := range values {
		values[i] = size.Repeated{Value: v, Times: times}
	}
	return values
}

func unwrapTuple(tuple []any) []any {
	out := make([]any, len(tuple))
	for i, v := range tuple {
		out[i] = size.Unwrap(v)
	}
	return out
}

func presentOnly(values []any) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		if !size.IsAbsent(v) {
			out = append(out, v)
		}
	}
	return out
}

func (o *Orchestrator) applyDefaults() {
	if o.resolver == nil {
		o.resolver = lookup.Default()
	}
	if o.selector == nil {
		o.selector = selector.HighestRank(selector.WithLimit(o.limit))
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
