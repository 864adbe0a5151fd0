// Package combinator enumerates the cross product of candidate sequences with a
// mixed-radix counter.
//
// The index vector holds one digit per sequence. Digit 0 is the most
// significant and varies slowest; the last digit varies fastest. Enumeration
// starts at the max vector (every digit at len-1) and counts down until the
// leading digit reaches -1, the exhausted sentinel. The resulting order matches
// nested loops, first sequence outermost, each iterating from its last element
// to its first.
//
// Design:
//   - No logging, no panics on caller input; failures are sentinel errors.
//   - Index vectors are never mutated in place; Decrement returns a copy.
package combinator

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
)

var (
	// ErrShapeMismatch is returned when an index vector and the sequence list
	// differ in length.
	ErrShapeMismatch = errors.New("combinator: index vector and sequences differ in length")

	// ErrEmptySequence is returned when any candidate sequence has no elements,
	// in which case no combination exists.
	ErrEmptySequence = errors.New("combinator: empty candidate sequence")

	// ErrTruncated is returned alongside a partial result when enumeration hits
	// the configured limit. It is informational, not fatal.
	ErrTruncated = errors.New("combinator: enumeration truncated")
)

// preallocCap bounds the slice capacity reserved up front.
const preallocCap = 4096

// Exhausted is the value the leading digit takes once enumeration is done.
const Exhausted = -1

// Option configures Enumerate.
type Option func(*config)

type config struct {
	limit int
}

// WithLimit caps the number of tuples Enumerate produces. Values <= 0 disable
// the cap.
func WithLimit(n int) Option {
	return func(cfg *config) {
		cfg.limit = n
	}
}

// Lookup resolves one tuple: element i is seqs[i][indexes[i]]. It reports false
// when any index falls outside its sequence and returns ErrShapeMismatch when
// the vector and sequence list lengths differ.
func Lookup[T any](indexes []int, seqs [][]T) ([]T, bool, error) {
	if len(indexes) != len(seqs) {
		return nil, false, fmt.Errorf("%w: %d indexes, %d sequences", ErrShapeMismatch, len(indexes), len(seqs))
	}
	out := make([]T, len(seqs))
	for i, idx := range indexes {
		if idx < 0 || idx >= len(seqs[i]) {
			return nil, false, nil
		}
		out[i] = seqs[i][idx]
	}
	return out, true, nil
}

// MaxIndexes returns len(seq)-1 for every sequence.
func MaxIndexes[T any](seqs [][]T) []int {
	out := make([]int, len(seqs))
	for i, seq := range seqs {
		out[i] = len(seq) - 1
	}
	return out
}

// Decrement subtracts one from the counter. A digit that underflows resets to
// its max and borrows from the digit on its left. When the leading digit
// underflows it is left at Exhausted without further borrowing. The inputs are
// not modified; nil is returned when their lengths differ.
func Decrement(indexes, maxIndexes []int) []int {
	if len(indexes) != len(maxIndexes) {
		return nil
	}
	out := slices.Clone(indexes)
	if len(out) == 0 || out[0] < 0 {
		return out
	}
	for i := len(out) - 1; i >= 0; i-- {
		out[i]--
		if out[i] >= 0 || i == 0 {
			break
		}
		out[i] = maxIndexes[i]
	}
	return out
}

// Count returns the number of tuples the sequences produce. It reports false
// when the product overflows int.
func Count[T any](seqs [][]T) (int, bool) {
	if len(seqs) == 0 {
		return 0, true
	}
	total := 1
	for _, seq := range seqs {
		n := len(seq)
		if n == 0 {
			return 0, true
		}
		if total > math.MaxInt/n {
			return 0, false
		}
		total *= n
	}
	return total, true
}

// Tuples lazily yields every combination in enumeration order. Nothing is
// yielded when seqs is empty or any sequence is empty.
func Tuples[T any](seqs [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if len(seqs) == 0 || hasEmpty(seqs) {
			return
		}
		top := MaxIndexes(seqs)
		idx := slices.Clone(top)
		for idx[0] != Exhausted {
			tuple, ok, _ := Lookup(idx, seqs)
			if ok && !yield(tuple) {
				return
			}
			idx = Decrement(idx, top)
		}
	}
}

// Enumerate materializes every combination in enumeration order. It returns nil
// for an empty sequence list and ErrEmptySequence when any sequence is empty.
// With WithLimit, the tuples produced before the cap are returned together with
// ErrTruncated.
func Enumerate[T any](seqs [][]T, opts ...Option) ([][]T, error) {
	if len(seqs) == 0 {
		return nil, nil
	}
	if hasEmpty(seqs) {
		return nil, ErrEmptySequence
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	capacity, ok := Count(seqs)
	if !ok {
		capacity = preallocCap
	}
	if cfg.limit > 0 {
		capacity = min(capacity, cfg.limit)
	}
	out := make([][]T, 0, min(capacity, preallocCap))
	for tuple := range Tuples(seqs) {
		if cfg.limit > 0 && len(out) >= cfg.limit {
			return out, fmt.Errorf("%w after %d tuples", ErrTruncated, cfg.limit)
		}
		out = append(out, tuple)
	}
	return out, nil
}

func hasEmpty[T any](seqs [][]T) bool {
	for _, seq := range seqs {
		if len(seq) == 0 {
			return true
		}
	}
	return false
}
