// Package lang implements the textual entry point of spec.md §4.2: a
// hand-written lexer and recursive-descent parser for the restricted
// boolean sub-grammar (comparisons, &&/||/!, parentheses, literals,
// in/includes, startsWith/endsWith/contains), so a predicate can be
// supplied as source text (query.Raw("age >= 18 && name == \"John\""))
// and compiled through the same normalize -> auto-parameterize -> emit
// pipeline as the typed builder path.
//
// Grounded on hashicorp/mql's lexer/parser/stack design — the one
// repository in the retrieval pack that already solves exactly this
// problem (compiling a restricted text query language into a
// parameterized SQL WHERE clause) — reduced to the single boolean
// sub-grammar spec.md names, since mql's own query language is richer
// than this module needs.
package lang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokTrue
	tokFalse
	tokNull
	tokIn
	tokAnd
	tokOr
	tokNot
	tokEq
	tokNeq
	tokGte
	tokGt
	tokLte
	tokLt
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokDot
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// identPattern excludes the reserved words via a negative lookahead, so
// the lexer never needs a separate keyword table lookup after matching —
// the regexp2 dependency's reason for being here, per SPEC_FULL.md.
var identPattern = regexp2.MustCompile(`(?!(?:true|false|null|in)\b)[A-Za-z_][A-Za-z0-9_]*`, regexp2.None)

var numberPattern = regexp2.MustCompile(`\d+(\.\d+)?`, regexp2.None)

type lexer struct {
	src    string
	pos    int
	tokens []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}

	for {
		l.skipSpace()

		if l.pos >= len(l.src) {
			l.tokens = append(l.tokens, token{kind: tokEOF, pos: l.pos})

			return l.tokens, nil
		}

		if err := l.next(); err != nil {
			return nil, err
		}
	}
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && (l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\n' || l.src[l.pos] == '\r') {
		l.pos++
	}
}

func (l *lexer) next() error {
	rest := l.src[l.pos:]

	switch {
	case strings.HasPrefix(rest, "&&"):
		return l.emit(tokAnd, "&&", 2)
	case strings.HasPrefix(rest, "||"):
		return l.emit(tokOr, "||", 2)
	case strings.HasPrefix(rest, "=="):
		return l.emit(tokEq, "==", 2)
	case strings.HasPrefix(rest, "!="):
		return l.emit(tokNeq, "!=", 2)
	case strings.HasPrefix(rest, ">="):
		return l.emit(tokGte, ">=", 2)
	case strings.HasPrefix(rest, "<="):
		return l.emit(tokLte, "<=", 2)
	case strings.HasPrefix(rest, "!"):
		return l.emit(tokNot, "!", 1)
	case strings.HasPrefix(rest, ">"):
		return l.emit(tokGt, ">", 1)
	case strings.HasPrefix(rest, "<"):
		return l.emit(tokLt, "<", 1)
	case strings.HasPrefix(rest, "("):
		return l.emit(tokLParen, "(", 1)
	case strings.HasPrefix(rest, ")"):
		return l.emit(tokRParen, ")", 1)
	case strings.HasPrefix(rest, "["):
		return l.emit(tokLBracket, "[", 1)
	case strings.HasPrefix(rest, "]"):
		return l.emit(tokRBracket, "]", 1)
	case strings.HasPrefix(rest, ","):
		return l.emit(tokComma, ",", 1)
	case strings.HasPrefix(rest, "."):
		return l.emit(tokDot, ".", 1)
	case rest[0] == '"' || rest[0] == '\'':
		return l.lexString(rest[0])
	default:
		return l.lexWord()
	}
}

func (l *lexer) emit(kind tokenKind, text string, width int) error {
	l.tokens = append(l.tokens, token{kind: kind, text: text, pos: l.pos})
	l.pos += width

	return nil
}

func (l *lexer) lexString(quote byte) error {
	start := l.pos
	i := l.pos + 1
	var b strings.Builder

	for i < len(l.src) && l.src[i] != quote {
		if l.src[i] == '\\' && i+1 < len(l.src) {
			i++
		}

		b.WriteByte(l.src[i])
		i++
	}

	if i >= len(l.src) {
		return fmt.Errorf("lang: unterminated string literal starting at %d", start)
	}

	l.tokens = append(l.tokens, token{kind: tokString, text: b.String(), pos: start})
	l.pos = i + 1

	return nil
}

func (l *lexer) lexWord() error {
	if m, _ := numberPattern.FindStringMatchStartingAt(l.src, l.pos); m != nil && m.Index == l.pos {
		text := m.String()
		l.tokens = append(l.tokens, token{kind: tokNumber, text: text, pos: l.pos})
		l.pos += len(text)

		return nil
	}

	if strings.HasPrefix(l.src[l.pos:], "true") && boundaryAfter(l.src, l.pos+4) {
		return l.emit(tokTrue, "true", 4)
	}

	if strings.HasPrefix(l.src[l.pos:], "false") && boundaryAfter(l.src, l.pos+5) {
		return l.emit(tokFalse, "false", 5)
	}

	if strings.HasPrefix(l.src[l.pos:], "null") && boundaryAfter(l.src, l.pos+4) {
		return l.emit(tokNull, "null", 4)
	}

	if strings.HasPrefix(l.src[l.pos:], "in") && boundaryAfter(l.src, l.pos+2) {
		return l.emit(tokIn, "in", 2)
	}

	if m, _ := identPattern.FindStringMatchStartingAt(l.src, l.pos); m != nil && m.Index == l.pos {
		text := m.String()
		l.tokens = append(l.tokens, token{kind: tokIdent, text: text, pos: l.pos})
		l.pos += len(text)

		return nil
	}

	return fmt.Errorf("lang: unexpected character %q at %d", l.src[l.pos], l.pos)
}

func boundaryAfter(src string, i int) bool {
	if i >= len(src) {
		return true
	}

	c := src[i]

	return !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'))
}

func parseNumberLiteral(text string) (any, error) {
	if strings.Contains(text, ".") {
		return strconv.ParseFloat(text, 64)
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return strconv.ParseFloat(text, 64)
	}

	return n, nil
}
