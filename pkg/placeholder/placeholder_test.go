package placeholder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	got := Extract("12345{{user}}6{{a.b1.c}}7{{a.b[3]}}", Default)
	want := []string{"user", "a.b1.c", "a.b[3]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeepsDuplicatesAndTrimsWhitespace(t *testing.T) {
	t.Parallel()

	got := Extract("{{ a }} and {{a}} then {{ items['x'] }} {{first-name}}", Default)
	want := []string{"a", "a", "items['x']", "first-name"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractEmptyTemplate(t *testing.T) {
	t.Parallel()

	got := Extract("", Default)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestMask(t *testing.T) {
	t.Parallel()

	got := Mask("12345{{ user }}6{{a.b1.c}}7{{sum(10,1)}}", Default)
	if got != "1234567" {
		t.Fatalf("Mask = %q, want %q", got, "1234567")
	}
	if Mask("") != "" {
		t.Fatalf("expected empty template to stay empty")
	}
}

func TestMaskIsIdempotent(t *testing.T) {
	t.Parallel()

	keep := Spec{Start: "[[", End: "]]"}
	template := "<b>[[ title ]]</b> {{name}} [[x]]!"
	once := Mask(template, keep)
	twice := Mask(once, keep)
	if once != twice {
		t.Fatalf("mask not idempotent: %q vs %q", once, twice)
	}
	if once != "<b></b> {{name}} !" {
		t.Fatalf("unexpected masked text %q", once)
	}
	if names := Extract(once, keep); len(names) != 0 {
		t.Fatalf("expected no names in masked regions, got %v", names)
	}
	if diff := cmp.Diff([]string{"name"}, Extract(once, Default)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestMaskMultipleSpecs(t *testing.T) {
	t.Parallel()

	got := Mask("a{{x}}b<%y%>c", Default, Spec{Start: "<%", End: "%>"})
	if got != "abc" {
		t.Fatalf("Mask = %q", got)
	}
	if got := Mask("a{{x}}b", Spec{}); got != "a{{x}}b" {
		t.Fatalf("invalid spec should be ignored, got %q", got)
	}
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	alt := Spec{Start: "${", End: "}"}
	got := ExtractAll("${a} {{b}} ${c}", Default, alt)
	if diff := cmp.Diff([]string{"b", "a", "c"}, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	got := Replace("Hi {{ name }}, {{missing}}", Default, func(name, match string) string {
		if name == "name" {
			return strings.ToUpper(name)
		}
		return match
	})
	if got != "Hi NAME, {{missing}}" {
		t.Fatalf("Replace = %q", got)
	}
}
