package rule

import (
	"errors"
	"testing"

	"github.com/goliatone/go-tmplfit/pkg/model"
)

func TestRuleEval(t *testing.T) {
	t.Parallel()

	candidates := model.Candidates{
		"title":   {nil, "Hello world"},
		"author":  {"Ada"},
		"kind":    {"long"},
		"count":   {3},
		"draft":   {"false"},
		"tags":    {[]any{"go", "tmpl"}},
		"missing": {nil},
	}

	cases := []struct {
		rule string
		want bool
	}{
		{"", true},
		{"author", true},
		{"missing", false},
		{"unknown", false},
		{"draft", false},
		{"!draft", true},
		{"tags", true},
		{`kind == "long"`, true},
		{`kind == 'long'`, true},
		{"kind == long", true},
		{`kind != "long"`, false},
		{"count == 3", true},
		{"count > 2 && count <= 3", true},
		{"count < 3", false},
		{"len(title) >= 11", true},
		{"len(title) > 11", false},
		{"len(tags) == 2", true},
		{"len(missing) == 0", true},
		{"missing == null", true},
		{"author != nil", true},
		{"draft == false", true},
		{"author && (missing || kind == \"long\")", true},
		{"!(author && kind == \"short\")", true},
		{"missing || unknown", false},
	}
	for _, tc := range cases {
		r, err := Compile(tc.rule)
		if err != nil {
			t.Fatalf("compile %q: %v", tc.rule, err)
		}
		got, err := r.Eval(candidates)
		if err != nil {
			t.Fatalf("eval %q: %v", tc.rule, err)
		}
		if got != tc.want {
			t.Fatalf("%q = %v, want %v", tc.rule, got, tc.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{
		"a = 1",
		"a & b",
		"a | b",
		"(a",
		`a == "open`,
		"a ==",
		"a > \"x\"",
		"len(a",
		"len()",
		"a b",
		"&& a",
	} {
		if _, err := Compile(expr); !errors.Is(err, ErrSyntax) {
			t.Fatalf("Compile(%q) error = %v, want ErrSyntax", expr, err)
		}
	}
}

func TestPredicate(t *testing.T) {
	t.Parallel()

	pred := MustCompile("len(title) <= 5").Predicate()

	if !pred(model.Candidates{"title": {"short"}, "author": {"Ada"}}, []string{"author"}) {
		t.Fatalf("expected predicate to hold")
	}
	if pred(model.Candidates{"title": {"short"}}, []string{"author"}) {
		t.Fatalf("expected required key to be enforced")
	}
	if pred(model.Candidates{"title": {"too long"}}, nil) {
		t.Fatalf("expected length rule to fail")
	}

	spec := model.TemplateSpec{Text: "{{title}}", Applicable: pred}
	if !spec.IsApplicable(model.Candidates{"title": {"ok"}}) {
		t.Fatalf("expected template to be applicable")
	}
}

func TestMustCompilePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustCompile("a ==")
}
