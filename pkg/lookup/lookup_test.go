package lookup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type author struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases"`
	Email   *string
}

func record() map[string]any {
	return map[string]any{
		"user": "ada",
		"a": map[string]any{
			"b1": map[string]any{"c": "deep"},
			"b":  []any{"zero", "one", "two", "three"},
		},
		"cta.headline": "flattened",
		"author":       author{Name: "Grace", Aliases: []string{"gh", "amazing grace"}},
		"missing":      nil,
	}
}

func TestDefaultResolver(t *testing.T) {
	t.Parallel()

	resolver := Default()
	data := record()

	cases := []struct {
		path string
		want any
	}{
		{path: "user", want: "ada"},
		{path: "a.b1.c", want: "deep"},
		{path: "a.b[3]", want: "three"},
		{path: "a.b.1", want: "one"},
		{path: "a['b1']['c']", want: "deep"},
		{path: "cta.headline", want: "flattened"},
		{path: "/a/b1/c", want: "deep"},
		{path: "/a/b/2", want: "two"},
		{path: "author.name", want: "Grace"},
		{path: "author.aliases[1]", want: "amazing grace"},
	}
	for _, tc := range cases {
		got, ok := resolver.Lookup(data, tc.path)
		if !ok {
			t.Fatalf("Lookup(%q) reported missing", tc.path)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Lookup(%q) mismatch (-want +got):\n%s", tc.path, diff)
		}
	}
}

func TestDefaultResolverMissing(t *testing.T) {
	t.Parallel()

	resolver := Default()
	data := record()

	for _, path := range []string{"", "nope", "a.b[9]", "a.b[-1]", "missing", "author.Email", "user.name", "/a/zzz"} {
		if got, ok := resolver.Lookup(data, path); ok {
			t.Fatalf("Lookup(%q) = %v, expected missing", path, got)
		}
	}
	if _, ok := resolver.Lookup(nil, "user"); ok {
		t.Fatalf("expected nil record to resolve nothing")
	}
}

func TestWalkStructPointer(t *testing.T) {
	t.Parallel()

	email := "grace@example.com"
	got, ok := Walk(&author{Email: &email}, "email")
	if !ok {
		t.Fatalf("expected field lookup by name")
	}
	if s, _ := got.(*string); s == nil || *s != email {
		t.Fatalf("unexpected value %#v", got)
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"a", "b", "3"}, Segments("a.b[3]")); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"items", "x", "name"}, Segments(" $.items['x'].name ")); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	if Segments("  ") != nil {
		t.Fatalf("expected nil for blank path")
	}
}

func TestChainSkipsNil(t *testing.T) {
	t.Parallel()

	calls := 0
	counting := ResolverFunc(func(record any, path string) (any, bool) {
		calls++
		return "hit:" + path, true
	})
	got, ok := Chain(nil, counting, ResolverFunc(Exact)).Lookup(nil, "x")
	if !ok || got != "hit:x" || calls != 1 {
		t.Fatalf("unexpected chain result %v %v calls=%d", got, ok, calls)
	}
}
