package size

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fixedSizer struct{ n int }

func (f fixedSizer) Size() int { return f.n }

func TestOf(t *testing.T) {
	t.Parallel()

	var nilMap map[string]any
	var nilPtr *string
	word := "héllo"

	cases := []struct {
		name  string
		value any
		want  int
	}{
		{name: "nil", value: nil, want: 0},
		{name: "string counts runes", value: "héllo", want: 5},
		{name: "bytes", value: []byte("abc"), want: 3},
		{name: "int slice", value: []int{1, 2, 3}, want: 3},
		{name: "array", value: [2]string{"a", "b"}, want: 2},
		{name: "map", value: map[string]string{"a": "A", "b": "B"}, want: 2},
		{name: "nil map", value: nilMap, want: 0},
		{name: "struct exported fields", value: struct {
			A string
			B int
			c bool
		}{}, want: 2},
		{name: "pointer", value: &word, want: 5},
		{name: "nil pointer", value: nilPtr, want: 0},
		{name: "sizer", value: fixedSizer{n: 42}, want: 42},
		{name: "number", value: 12345, want: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Of(tc.value); got != tc.want {
				t.Fatalf("Of(%#v) = %d, want %d", tc.value, got, tc.want)
			}
		})
	}
}

func TestIsAbsent(t *testing.T) {
	t.Parallel()

	var nilSlice []string
	if !IsAbsent(nil) || !IsAbsent(nilSlice) {
		t.Fatalf("expected nil values to be absent")
	}
	if IsAbsent("") || IsAbsent(0) || IsAbsent([]string{}) {
		t.Fatalf("expected zero but non-nil values to be present")
	}
}

func TestPickLongest(t *testing.T) {
	t.Parallel()

	if _, ok := PickLongest[string](nil); ok {
		t.Fatalf("expected no pick for nil list")
	}
	if _, ok := PickLongest([]string{}); ok {
		t.Fatalf("expected no pick for empty list")
	}

	cases := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "A", items: []string{"ab", "a", "abcd"}, want: "abcd"},
		{name: "B", items: []string{"abcde", "a", "ab"}, want: "abcde"},
		{name: "take first of equal", items: []string{"ab", "ab1", "ab2", "a"}, want: "ab1"},
	}
	for _, tc := range cases {
		got, ok := PickLongest(tc.items)
		if !ok || got != tc.want {
			t.Fatalf("%s: PickLongest(%v) = %q, %v; want %q", tc.name, tc.items, got, ok, tc.want)
		}
	}

	arrays, _ := PickLongest([][]int{{1, 2}, {1, 2, 3}, {1}})
	if diff := cmp.Diff([]int{1, 2, 3}, arrays); diff != "" {
		t.Fatalf("array of arrays mismatch (-want +got):\n%s", diff)
	}

	objects, _ := PickLongest([]map[string]string{
		{"a": "A", "b": "B"},
		{"a": "A", "b": "B", "c": "C"},
		{"a": "A"},
	})
	if diff := cmp.Diff(map[string]string{"a": "A", "b": "B", "c": "C"}, objects); diff != "" {
		t.Fatalf("array of objects mismatch (-want +got):\n%s", diff)
	}
}

func TestPickShortest(t *testing.T) {
	t.Parallel()

	if _, ok := PickShortest[any](nil); ok {
		t.Fatalf("expected no pick for nil list")
	}

	cases := []struct {
		items []string
		want  string
	}{
		{items: []string{"ab", "a", "abcd"}, want: "a"},
		{items: []string{"abcde", "a", "ab"}, want: "a"},
		{items: []string{"abd", "a1", "a2", "abc"}, want: "a1"},
	}
	for _, tc := range cases {
		got, ok := PickShortest(tc.items)
		if !ok || got != tc.want {
			t.Fatalf("PickShortest(%v) = %q, %v; want %q", tc.items, got, ok, tc.want)
		}
	}

	arrays, _ := PickShortest([][]int{{1, 2}, {1, 2, 3}, {1}})
	if diff := cmp.Diff([]int{1}, arrays); diff != "" {
		t.Fatalf("array of arrays mismatch (-want +got):\n%s", diff)
	}
}

func TestPickBySizeSkipsAbsentAndHonoursBound(t *testing.T) {
	t.Parallel()

	items := []any{nil, "ab", "abcdef", nil, "abcd"}

	if got := PickBySize(items, Longest, any("none"), Unbounded); got != "abcdef" {
		t.Fatalf("unbounded longest = %v", got)
	}
	if got := PickBySize(items, Longest, any("none"), Within(4)); got != "abcd" {
		t.Fatalf("longest within 4 = %v", got)
	}
	if got := PickBySize(items, Longest, any("none"), Within(1)); got != "none" {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := PickBySize(items, Shortest, any("none"), Within(3)); got != "abcd" {
		t.Fatalf("shortest with min 3 = %v", got)
	}
	if got := PickBySize([]any{nil, nil}, Shortest, any("none"), Unbounded); got != "none" {
		t.Fatalf("expected fallback for all absent, got %v", got)
	}
}

func TestSumMinMax(t *testing.T) {
	t.Parallel()

	if got := Sum([]string{"ab", "a", "abcd"}); got != 7 {
		t.Fatalf("Sum = %d, want 7", got)
	}
	if got := Sum[string](nil); got != 0 {
		t.Fatalf("Sum(nil) = %d, want 0", got)
	}
	if got := Sum([]any{"ab", nil, []int{1}}); got != 3 {
		t.Fatalf("Sum with absent = %d, want 3", got)
	}

	if got, ok := Min([]any{nil, "abc", "a", "ab"}); !ok || got != 1 {
		t.Fatalf("Min = %d, %v", got, ok)
	}
	if got, ok := Max([]any{nil, "abc", "a", "ab"}); !ok || got != 3 {
		t.Fatalf("Max = %d, %v", got, ok)
	}
	if _, ok := Max([]any{nil}); ok {
		t.Fatalf("expected Max to report absent")
	}
}

func TestTableAndTotals(t *testing.T) {
	t.Parallel()

	seqs := [][]any{
		{"skeleton"},
		{"a", "aaa", nil},
		{"bb", "b"},
	}

	want := []Span{
		{Min: 8, Max: 8, OK: true},
		{Min: 1, Max: 3, OK: true},
		{Min: 1, Max: 2, OK: true},
	}
	if diff := cmp.Diff(want, Table(seqs)); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}

	if got, ok := MinTotal(seqs); !ok || got != 10 {
		t.Fatalf("MinTotal = %d, %v", got, ok)
	}
	if got, ok := MaxTotal(seqs); !ok || got != 13 {
		t.Fatalf("MaxTotal = %d, %v", got, ok)
	}

	if _, ok := MinTotal([][]any{{"a"}, {nil}}); ok {
		t.Fatalf("expected MinTotal to fail for a sequence without present values")
	}
}

func TestRepeated(t *testing.T) {
	t.Parallel()

	if got := Of(Repeated{Value: "abc", Times: 2}); got != 6 {
		t.Fatalf("Of(Repeated) = %d, want 6", got)
	}
	if got := Of(Repeated{Value: "abc"}); got != 0 {
		t.Fatalf("zero times should size 0, got %d", got)
	}
	if got := Unwrap(Repeated{Value: "abc", Times: 3}); got != "abc" {
		t.Fatalf("Unwrap = %v", got)
	}
	if got := Unwrap(7); got != 7 {
		t.Fatalf("Unwrap passthrough = %v", got)
	}
	total, ok := MinTotal([][]any{{" "}, {Repeated{Value: "abc", Times: 2}, Repeated{Value: "a", Times: 2}}})
	if !ok || total != 3 {
		t.Fatalf("MinTotal = %d %v, want 3", total, ok)
	}
}
