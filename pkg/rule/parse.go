package rule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenLt
	tokenLte
	tokenGt
	tokenGte
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

var tokenNames = map[tokenKind]string{
	tokenEq:     "==",
	tokenNeq:    "!=",
	tokenLt:     "<",
	tokenLte:    "<=",
	tokenGt:     ">",
	tokenGte:    ">=",
	tokenAnd:    "&&",
	tokenOr:     "||",
	tokenNot:    "!",
	tokenLParen: "(",
	tokenRParen: ")",
}

func (k tokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "operand"
}

type token struct {
	kind tokenKind
	raw  string
}

// operators maps operator text to its kind, longest first where prefixes
// overlap.
var operators = []struct {
	text string
	kind tokenKind
}{
	{"==", tokenEq},
	{"!=", tokenNeq},
	{"<=", tokenLte},
	{">=", tokenGte},
	{"&&", tokenAnd},
	{"||", tokenOr},
	{"<", tokenLt},
	{">", tokenGt},
	{"!", tokenNot},
	{"(", tokenLParen},
	{")", tokenRParen},
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

scan:
	for i < len(input) {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		for _, op := range operators {
			if strings.HasPrefix(input[i:], op.text) {
				tokens = append(tokens, token{kind: op.kind, raw: op.text})
				i += len(op.text)
				continue scan
			}
		}

		switch ch {
		case '=':
			return nil, errors.New("unexpected '='; use '=='")
		case '&':
			return nil, errors.New("unexpected '&'; use '&&'")
		case '|':
			return nil, errors.New("unexpected '|'; use '||'")
		case '"', '\'':
			end := closingQuote(input, i)
			if end < 0 {
				return nil, errors.New("unterminated string literal")
			}
			body := input[i+1 : end]
			if ch == '\'' {
				body = strings.ReplaceAll(body, `\'`, `'`)
				body = strings.ReplaceAll(body, `"`, `\"`)
			}
			value, err := strconv.Unquote(`"` + body + `"`)
			if err != nil {
				return nil, fmt.Errorf("invalid string literal: %w", err)
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i = end + 1
			continue
		}

		start := i
		for i < len(input) && !isSpace(input[i]) && !strings.ContainsRune("()!=<>&|\"'", rune(input[i])) {
			i++
		}
		raw := input[start:i]
		switch strings.ToLower(raw) {
		case "true", "false":
			tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
		case "null", "nil":
			tokens = append(tokens, token{kind: tokenNull, raw: "null"})
		default:
			if looksLikeNumber(raw) {
				tokens = append(tokens, token{kind: tokenNumber, raw: raw})
			} else {
				tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
			}
		}
	}
	return tokens, nil
}

func closingQuote(input string, open int) int {
	quote := input[open]
	for i := open + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseOr(s *tokenStream) (node, error) {
	left, err := parseAnd(s)
	if err != nil {
		return nil, err
	}
	for s.match(tokenOr) {
		right, err := parseAnd(s)
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func parseAnd(s *tokenStream) (node, error) {
	left, err := parseUnary(s)
	if err != nil {
		return nil, err
	}
	for s.match(tokenAnd) {
		right, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func parseUnary(s *tokenStream) (node, error) {
	if s.match(tokenNot) {
		inner, err := parseUnary(s)
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return parsePrimary(s)
}

func parsePrimary(s *tokenStream) (node, error) {
	if s.match(tokenLParen) {
		inner, err := parseOr(s)
		if err != nil {
			return nil, err
		}
		if !s.match(tokenRParen) {
			return nil, errors.New("missing closing ')'")
		}
		return inner, nil
	}

	target, err := parseOperand(s)
	if err != nil {
		return nil, err
	}

	for _, op := range []tokenKind{tokenEq, tokenNeq, tokenLt, tokenLte, tokenGt, tokenGte} {
		if !s.match(op) {
			continue
		}
		lit, err := s.literal()
		if err != nil {
			return nil, err
		}
		if op != tokenEq && op != tokenNeq && lit.kind != tokenNumber {
			return nil, fmt.Errorf("operator %s needs a number, got %q", op, lit.raw)
		}
		return compareNode{operand: target, op: op, literal: lit}, nil
	}
	return truthyNode{operand: target}, nil
}

func parseOperand(s *tokenStream) (operand, error) {
	ident, ok := s.consume(tokenIdentifier)
	if !ok {
		if s.pos >= len(s.tokens) {
			return operand{}, errors.New("empty expression")
		}
		return operand{}, fmt.Errorf("expected identifier, got %q", s.tokens[s.pos].raw)
	}
	if ident.raw != "len" || !s.match(tokenLParen) {
		return operand{name: ident.raw}, nil
	}
	inner, ok := s.consume(tokenIdentifier)
	if !ok {
		return operand{}, errors.New("len() needs an identifier")
	}
	if !s.match(tokenRParen) {
		return operand{}, errors.New("missing closing ')' after len")
	}
	return operand{name: inner.raw, length: true}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	_, ok := s.consume(kind)
	return ok
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) literal() (token, error) {
	if s.pos >= len(s.tokens) {
		return token{}, errors.New("missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString, tokenNumber, tokenBool, tokenNull:
		return tok, nil
	case tokenIdentifier:
		// bare words compare as strings
		return token{kind: tokenString, raw: tok.raw}, nil
	default:
		return token{}, fmt.Errorf("expected literal, got %q", tok.raw)
	}
}
