package orchestrator

import (
	"context"

	"github.com/goliatone/go-tmplfit/pkg/model"
)

// Transformer mutates resolved candidates before templates are evaluated.
// Implementations can add, drop or reorder values per source name.
type Transformer interface {
	Transform(ctx context.Context, candidates model.Candidates) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, candidates model.Candidates) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, candidates model.Candidates) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, candidates)
}
