package tmplfit

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-tmplfit/pkg/config"
	"github.com/goliatone/go-tmplfit/pkg/orchestrator"
	"github.com/goliatone/go-tmplfit/pkg/selector"
	"github.com/goliatone/go-tmplfit/pkg/transform"
)

// RenderFile loads a configuration document from fsys and renders data with the
// strategy it names. Custom transforms and strategies may be supplied through
// the registries; nil registries use the built-ins.
func RenderFile(ctx context.Context, fsys fs.FS, path string, data any, transforms *transform.Registry, strategies *selector.Registry, options ...orchestrator.Option) (Result, error) {
	file, err := config.LoadFS(fsys, path)
	if err != nil {
		return Result{Template: -1}, err
	}
	cfg, err := file.RenderConfig(transforms)
	if err != nil {
		return Result{Template: -1}, err
	}
	sel, err := file.Selector(strategies)
	if err != nil {
		return Result{Template: -1}, fmt.Errorf("tmplfit: %w", err)
	}
	opts := append([]orchestrator.Option{
		orchestrator.WithSelector(sel),
		orchestrator.WithIterationLimit(file.Limit),
	}, options...)
	return orchestrator.New(opts...).Render(ctx, cfg, data)
}
