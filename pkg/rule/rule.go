// Package rule compiles small boolean expressions that decide whether a
// template applies to the resolved candidates.
//
// Supported forms:
//   - truthiness: `author`
//   - comparisons: `kind == "long"`, `count != 3`, `len(title) <= 40`
//   - composition: `a && !(b || c)`
//
// Identifiers resolve to the first present candidate of the source with that
// name. len(x) is the size of that value as reported by size.Of.
package rule

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/goliatone/go-tmplfit/pkg/model"
	"github.com/goliatone/go-tmplfit/pkg/size"
)

// ErrSyntax wraps every compile error.
var ErrSyntax = errors.New("rule: syntax error")

// Rule is a compiled expression.
type Rule struct {
	source string
	root   node
}

// Compile parses expression. An empty expression always holds.
func Compile(expression string) (*Rule, error) {
	trimmed := strings.TrimSpace(expression)
	r := &Rule{source: trimmed}
	if trimmed == "" {
		return r, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, trimmed, err)
	}
	stream := &tokenStream{tokens: tokens}
	root, err := parseOr(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSyntax, trimmed, err)
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("%w: %q: unexpected token %q", ErrSyntax, trimmed, stream.tokens[stream.pos].raw)
	}
	r.root = root
	return r, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expression string) *Rule {
	r, err := Compile(expression)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the trimmed source expression.
func (r *Rule) String() string {
	return r.source
}

// Eval evaluates the rule against candidates.
func (r *Rule) Eval(candidates model.Candidates) (bool, error) {
	if r == nil || r.root == nil {
		return true, nil
	}
	return r.root.eval(candidates)
}

// Predicate adapts the rule to a template applicability check. Required keys
// must still have a present candidate; evaluation errors count as not
// applicable.
func (r *Rule) Predicate() model.Predicate {
	return func(candidates model.Candidates, keys []string) bool {
		for _, key := range keys {
			if !candidates.HasPresent(key) {
				return false
			}
		}
		ok, err := r.Eval(candidates)
		return err == nil && ok
	}
}

type node interface {
	eval(candidates model.Candidates) (bool, error)
}

type orNode struct{ left, right node }

func (n orNode) eval(c model.Candidates) (bool, error) {
	ok, err := n.left.eval(c)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(c)
}

type andNode struct{ left, right node }

func (n andNode) eval(c model.Candidates) (bool, error) {
	ok, err := n.left.eval(c)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(c)
}

type notNode struct{ inner node }

func (n notNode) eval(c model.Candidates) (bool, error) {
	ok, err := n.inner.eval(c)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// operand is an identifier, optionally wrapped in len().
type operand struct {
	name   string
	length bool
}

func (o operand) value(c model.Candidates) any {
	v, ok := c.First(o.name)
	if o.length {
		return size.Of(v)
	}
	if !ok {
		return nil
	}
	return v
}

type truthyNode struct{ operand operand }

func (n truthyNode) eval(c model.Candidates) (bool, error) {
	return truthy(n.operand.value(c)), nil
}

type compareNode struct {
	operand operand
	op      tokenKind
	literal token
}

func (n compareNode) eval(c model.Candidates) (bool, error) {
	value := n.operand.value(c)

	switch n.literal.kind {
	case tokenNull:
		switch n.op {
		case tokenEq:
			return size.IsAbsent(value), nil
		case tokenNeq:
			return !size.IsAbsent(value), nil
		}
	case tokenBool:
		want := n.literal.raw == "true"
		got := truthy(value)
		switch n.op {
		case tokenEq:
			return got == want, nil
		case tokenNeq:
			return got != want, nil
		}
	case tokenNumber:
		want, err := cast.ToFloat64E(n.literal.raw)
		if err != nil {
			return false, fmt.Errorf("rule: invalid number %q", n.literal.raw)
		}
		got, err := cast.ToFloat64E(value)
		if err != nil {
			got = 0
		}
		return compareNumbers(got, want, n.op), nil
	case tokenString:
		got := cast.ToString(value)
		switch n.op {
		case tokenEq:
			return got == n.literal.raw, nil
		case tokenNeq:
			return got != n.literal.raw, nil
		}
	}
	return false, fmt.Errorf("rule: operator %q is not supported for %q", n.op, n.literal.raw)
}

func compareNumbers(got, want float64, op tokenKind) bool {
	switch op {
	case tokenEq:
		return got == want
	case tokenNeq:
		return got != want
	case tokenLt:
		return got < want
	case tokenLte:
		return got <= want
	case tokenGt:
		return got > want
	case tokenGte:
		return got >= want
	default:
		return false
	}
}

func truthy(value any) bool {
	if size.IsAbsent(value) {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := cast.ToBoolE(strings.TrimSpace(v)); err == nil {
			return b
		}
		return strings.TrimSpace(v) != ""
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return cast.ToFloat64(v) != 0
	default:
		return size.Of(v) > 0
	}
}
