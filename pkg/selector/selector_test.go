package selector_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-tmplfit/pkg/combinator"
	"github.com/goliatone/go-tmplfit/pkg/selector"
)

func sampleTuples() [][]any {
	return [][]any{
		{"aa", "bb", "cc"},
		{"aaa", "bbb", "ccccc"},
		{"a", "b", "c"},
		{"aaa", "bb", "c"},
	}
}

func TestSelectBestMaxAndMin(t *testing.T) {
	t.Parallel()

	best, ok := selector.SelectBest(sampleTuples(), selector.SumSize, nil)
	require.True(t, ok)
	require.Equal(t, []any{"aaa", "bbb", "ccccc"}, best)

	least, ok := selector.SelectBest(sampleTuples(), selector.Negate(selector.SumSize), nil)
	require.True(t, ok)
	require.Equal(t, []any{"a", "b", "c"}, least)
}

func TestSelectBestTiesPickLastInInputOrder(t *testing.T) {
	t.Parallel()

	tuples := [][]any{
		{"ab", "c"},
		{"x", "yz"},
		{"a"},
	}
	best, ok := selector.SelectBest(tuples, nil, nil)
	require.True(t, ok)
	require.Equal(t, []any{"x", "yz"}, best)
}

func TestSelectBestFiltersAbsent(t *testing.T) {
	t.Parallel()

	tuples := [][]any{
		{"long value", nil},
		{"short", "x"},
	}
	best, ok := selector.SelectBest(tuples, nil, nil)
	require.True(t, ok)
	require.Equal(t, []any{"short", "x"}, best)

	_, ok = selector.SelectBest([][]any{{nil}}, nil, nil)
	require.False(t, ok)

	_, ok = selector.SelectBest(nil, nil, nil)
	require.False(t, ok)
}

func TestFirstSuccess(t *testing.T) {
	t.Parallel()

	var calls []string
	miss := func(in string) (int, bool) {
		calls = append(calls, "miss")
		return 0, false
	}
	hit := func(in string) (int, bool) {
		calls = append(calls, "hit")
		return len(in), true
	}
	never := func(in string) (int, bool) {
		calls = append(calls, "never")
		return -1, true
	}

	got, ok := selector.FirstSuccess("abcd", miss, nil, hit, never)
	require.True(t, ok)
	require.Equal(t, 4, got)
	if diff := cmp.Diff([]string{"miss", "hit"}, calls); diff != "" {
		t.Fatalf("call order mismatch (-want +got):\n%s", diff)
	}

	_, ok = selector.FirstSuccess("x", miss)
	require.False(t, ok)
}

func TestCompositeAgreesWithSelectBest(t *testing.T) {
	t.Parallel()

	seqs := [][]any{
		{"<p></p>"},
		{"ab", "a", nil, "abc"},
		{"x", "yy", "zz"},
		{"1", "22"},
	}
	tuples, err := combinator.Enumerate(seqs)
	require.NoError(t, err)

	cases := map[string]struct {
		rank   selector.RankFunc
		filter selector.FilterFunc
	}{
		"sum":          {rank: selector.SumSize},
		"negated":      {rank: selector.Negate(selector.SumSize)},
		"within bound": {rank: selector.SumSize, filter: selector.All(selector.NoAbsent, selector.TotalAtMost(12))},
	}
	for name, tc := range cases {
		want, ok := selector.SelectBest(tuples, tc.rank, tc.filter)
		require.True(t, ok, name)

		got, err := selector.New(tc.rank, tc.filter).Select(seqs)
		require.NoError(t, err, name)
		require.True(t, got.Found, name)
		require.Equal(t, want, got.Tuple, name)
		require.Equal(t, len(tuples), got.Considered, name)
	}
}

func TestLongestWithin(t *testing.T) {
	t.Parallel()

	seqs := [][]any{
		{"12345"},
		{"aaaa", "aa", "a"},
		{"bbb", "b"},
	}

	got, err := selector.LongestWithin(9).Select(seqs)
	require.NoError(t, err)
	require.True(t, got.Found)
	require.Equal(t, []any{"12345", "a", "bbb"}, got.Tuple)
	require.Equal(t, float64(9), got.Rank)

	unbounded, err := selector.LongestWithin(0).Select(seqs)
	require.NoError(t, err)
	require.Equal(t, []any{"12345", "aaaa", "bbb"}, unbounded.Tuple)

	pruned, err := selector.LongestWithin(4).Select(seqs)
	require.NoError(t, err)
	require.False(t, pruned.Found)
	require.Zero(t, pruned.Considered, "bound below the smallest reachable size skips enumeration")
}

func TestShortest(t *testing.T) {
	t.Parallel()

	got, err := selector.Shortest().Select([][]any{{"ab", "a"}, {"xyz", nil, "xy"}})
	require.NoError(t, err)
	require.Equal(t, []any{"a", "xy"}, got.Tuple)
}

func TestCompositeEmptySequence(t *testing.T) {
	t.Parallel()

	_, err := selector.HighestRank().Select([][]any{{"a"}, {}})
	require.True(t, errors.Is(err, combinator.ErrEmptySequence))

	none, err := selector.HighestRank().Select(nil)
	require.NoError(t, err)
	require.False(t, none.Found)
}

func TestCompositeLimitReportsTruncation(t *testing.T) {
	t.Parallel()

	seqs := [][]any{{"a", "bb", "ccc"}, {"x", "yy"}}

	got, err := selector.HighestRank(selector.WithLimit(2)).Select(seqs)
	require.NoError(t, err)
	require.True(t, got.Truncated)
	require.Equal(t, 2, got.Considered)
	require.Equal(t, []any{"ccc", "yy"}, got.Tuple)

	full, err := selector.HighestRank(selector.WithLimit(6)).Select(seqs)
	require.NoError(t, err)
	require.False(t, full.Truncated)
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := selector.DefaultRegistry()
	require.Equal(t, []string{"fittest", "longest", "shortest"}, reg.List())

	sel, err := reg.Build("longest", selector.Params{MaxLength: 3})
	require.NoError(t, err)
	got, err := sel.Select([][]any{{"ab", "abcd"}, {"x"}})
	require.NoError(t, err)
	require.Equal(t, []any{"ab", "x"}, got.Tuple)

	_, err = reg.Build("unknown", selector.Params{})
	require.ErrorIs(t, err, selector.ErrUnknownStrategy)

	require.Error(t, reg.Register("fittest", func(selector.Params) selector.Selector { return selector.HighestRank() }))
	require.Error(t, reg.Register("", nil))
	require.True(t, reg.Has("shortest"))
}
