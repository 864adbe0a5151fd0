package selector

import (
	"github.com/goliatone/go-tmplfit/pkg/combinator"
	"github.com/goliatone/go-tmplfit/pkg/size"
)

// Selection is the outcome of one Select call.
type Selection struct {
	// Tuple holds one value per candidate sequence, in sequence order.
	Tuple []any
	// Rank is the score Tuple received.
	Rank float64
	// Considered counts the tuples enumerated.
	Considered int
	// Truncated is set when the iteration limit stopped enumeration early.
	Truncated bool
	// Found reports whether any tuple passed the filter.
	Found bool
}

// Selector picks one tuple from the cross product of candidate sequences.
type Selector interface {
	Select(seqs [][]any) (Selection, error)
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(seqs [][]any) (Selection, error)

// Select calls f.
func (f SelectorFunc) Select(seqs [][]any) (Selection, error) {
	return f(seqs)
}

// Option customises a Composite selector.
type Option func(*Composite)

// WithLimit caps the number of tuples a selector enumerates. Values <= 0
// disable the cap.
func WithLimit(n int) Option {
	return func(c *Composite) {
		c.limit = n
	}
}

// WithPrune registers a check run before enumeration. When it returns true the
// sequences cannot produce an acceptable tuple and enumeration is skipped.
func WithPrune(prune func(seqs [][]any) bool) Option {
	return func(c *Composite) {
		c.prune = prune
	}
}

// Composite couples the combinator with a rank and a filter. It streams tuples
// instead of materialising the cross product and applies the same tie rule as
// SelectBest.
type Composite struct {
	rank   RankFunc
	filter FilterFunc
	limit  int
	prune  func(seqs [][]any) bool
}

var _ Selector = (*Composite)(nil)

// New builds a Composite. A nil rank defaults to SumSize and a nil filter to
// NoAbsent.
func New(rank RankFunc, filter FilterFunc, options ...Option) *Composite {
	c := &Composite{rank: rank, filter: filter}
	if c.rank == nil {
		c.rank = SumSize
	}
	if c.filter == nil {
		c.filter = NoAbsent
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// Select returns the highest ranked tuple accepted by the filter. It returns
// combinator.ErrEmptySequence when a sequence is empty.
func (c *Composite) Select(seqs [][]any) (Selection, error) {
	var out Selection
	if len(seqs) == 0 {
		return out, nil
	}
	if count, ok := combinator.Count(seqs); ok && count == 0 {
		return out, combinator.ErrEmptySequence
	}
	if c.prune != nil && c.prune(seqs) {
		return out, nil
	}

	for tuple := range combinator.Tuples(seqs) {
		if c.limit > 0 && out.Considered >= c.limit {
			out.Truncated = true
			break
		}
		out.Considered++
		if !c.filter(tuple) {
			continue
		}
		rank := c.rank(tuple)
		if !out.Found || rank >= out.Rank {
			out.Tuple = tuple
			out.Rank = rank
			out.Found = true
		}
	}
	return out, nil
}

// HighestRank selects the tuple with the greatest total size, ignoring tuples
// with absent values.
func HighestRank(options ...Option) *Composite {
	return New(SumSize, NoAbsent, options...)
}

// LongestWithin selects the tuple with the greatest total size not exceeding
// limit. A limit <= 0 behaves like HighestRank.
func LongestWithin(limit int, options ...Option) *Composite {
	if limit <= 0 {
		return HighestRank(options...)
	}
	opts := append([]Option{WithPrune(func(seqs [][]any) bool {
		smallest, ok := size.MinTotal(seqs)
		return !ok || smallest > limit
	})}, options...)
	return New(SumSize, All(NoAbsent, TotalAtMost(limit)), opts...)
}

// Shortest selects the tuple with the smallest total size.
func Shortest(options ...Option) *Composite {
	return New(Negate(SumSize), NoAbsent, options...)
}
