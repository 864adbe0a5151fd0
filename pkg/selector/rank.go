package selector

import (
	"slices"

	"github.com/goliatone/go-tmplfit/pkg/size"
)

// RankFunc scores a tuple; higher ranks win.
type RankFunc func(tuple []any) float64

// FilterFunc reports whether a tuple may be selected at all.
type FilterFunc func(tuple []any) bool

// SumSize ranks a tuple by the total size of its values.
func SumSize(tuple []any) float64 {
	return float64(size.Sum(tuple))
}

// Negate inverts a rank so the lowest original score wins.
func Negate(rank RankFunc) RankFunc {
	return func(tuple []any) float64 {
		return -rank(tuple)
	}
}

// NoAbsent rejects tuples holding an absent value.
func NoAbsent(tuple []any) bool {
	for _, v := range tuple {
		if size.IsAbsent(v) {
			return false
		}
	}
	return true
}

// TotalAtMost rejects tuples whose total size exceeds limit.
func TotalAtMost(limit int) FilterFunc {
	return func(tuple []any) bool {
		return size.Sum(tuple) <= limit
	}
}

// All combines filters; a tuple passes when every filter accepts it.
func All(filters ...FilterFunc) FilterFunc {
	return func(tuple []any) bool {
		for _, filter := range filters {
			if filter != nil && !filter(tuple) {
				return false
			}
		}
		return true
	}
}

// SelectBest drops tuples rejected by filter, stable-sorts the rest by rank in
// ascending order and returns the last one. Among tuples sharing the maximum
// rank the one appearing last in the input wins. A nil rank defaults to SumSize
// and a nil filter to NoAbsent.
func SelectBest(tuples [][]any, rank RankFunc, filter FilterFunc) ([]any, bool) {
	if rank == nil {
		rank = SumSize
	}
	if filter == nil {
		filter = NoAbsent
	}

	type scored struct {
		tuple []any
		rank  float64
	}
	kept := make([]scored, 0, len(tuples))
	for _, tuple := range tuples {
		if !filter(tuple) {
			continue
		}
		kept = append(kept, scored{tuple: tuple, rank: rank(tuple)})
	}
	if len(kept) == 0 {
		return nil, false
	}

	slices.SortStableFunc(kept, func(a, b scored) int {
		switch {
		case a.rank < b.rank:
			return -1
		case a.rank > b.rank:
			return 1
		default:
			return 0
		}
	})
	return kept[len(kept)-1].tuple, true
}

// FirstSuccess calls each function with input in order and returns the first
// result reported as found.
func FirstSuccess[In, Out any](input In, fns ...func(In) (Out, bool)) (Out, bool) {
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		if out, ok := fn(input); ok {
			return out, true
		}
	}
	var zero Out
	return zero, false
}
