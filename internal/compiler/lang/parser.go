package lang

import (
	"fmt"
	"strings"

	"github.com/lambdaquery/lq/internal/compiler"
)

// Resolver binds a free identifier's first path segment to a declared
// query parameter; every other identifier is a column reference (the
// textual grammar has only one table in scope, so there is no row
// variable to prefix column names with — spec.md §4.2's examples write
// bare `age`, `name`, not `u.age`).
type Resolver struct {
	QueryParam map[string]bool
}

// Parse compiles src, the source text of a predicate, into a BoolExpr
// under the restricted grammar of spec.md §4.2. Any construct outside
// that grammar is a ParseFailure or UnsupportedConstruct, exactly as
// invariant 1 demands for the closure-parsing path this replaces.
func Parse(src string, r Resolver) (compiler.BoolExpr, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, &compiler.ParseFailure{Fragment: src, Reason: err.Error()}
	}

	p := &parser{tokens: tokens, resolver: r, src: src}

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.peek().kind != tokEOF {
		return nil, &compiler.ParseFailure{
			Fragment: p.peek().text,
			Reason:   "unexpected trailing input",
		}
	}

	return expr, nil
}

type parser struct {
	tokens   []token
	pos      int
	src      string
	resolver Resolver
}

func (p *parser) peek() token  { return p.tokens[p.pos] }
func (p *parser) advance() token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	return t
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	if p.peek().kind != kind {
		return token{}, &compiler.ParseFailure{Fragment: p.peek().text, Reason: "expected " + what}
	}

	return p.advance(), nil
}

// parseOr: andExpr ('||' andExpr)*
func (p *parser) parseOr() (compiler.BoolExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokOr {
		p.advance()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = compiler.Or(left, right)
	}

	return left, nil
}

// parseAnd: unary ('&&' unary)*
func (p *parser) parseAnd() (compiler.BoolExpr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokAnd {
		p.advance()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = compiler.And(left, right)
	}

	return left, nil
}

// parseUnary: '!' unary | '!!' unary (double negation) | atom
func (p *parser) parseUnary() (compiler.BoolExpr, error) {
	if p.peek().kind == tokNot {
		p.advance()

		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return compiler.Neg(inner), nil
	}

	return p.parseAtom()
}

// parseAtom: '(' orExpr ')' | predicate
func (p *parser) parseAtom() (compiler.BoolExpr, error) {
	if p.peek().kind == tokLParen {
		p.advance()

		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}

		return inner, nil
	}

	return p.parsePredicate()
}

// parsePredicate parses a comparison, an `in [...]` membership test, a
// startsWith/endsWith/contains call, or a bare boolean value — the leaf
// level of the grammar.
func (p *parser) parsePredicate() (compiler.BoolExpr, error) {
	if p.peek().kind == tokIdent {
		path, methodName, isCall, err := p.parsePath()
		if err != nil {
			return nil, err
		}

		if isCall {
			return p.finishMethodCall(path, methodName)
		}

		left, err := p.resolve(path)
		if err != nil {
			return nil, err
		}

		return p.finishPredicate(left)
	}

	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return p.finishPredicate(left)
}

// finishPredicate handles what follows a resolved value: a comparison
// operator, an `in [...]` test, or nothing (a bare boolean upcast).
func (p *parser) finishPredicate(left compiler.ValueExpr) (compiler.BoolExpr, error) {
	switch p.peek().kind {
	case tokEq, tokNeq, tokGt, tokGte, tokLt, tokLte:
		op := p.advance()

		right, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		return compareFor(op.kind, left, right), nil

	case tokIn:
		p.advance()

		list, err := p.parseArrayLiteral()
		if err != nil {
			return nil, err
		}

		return compiler.InList(left, list...), nil
	}

	return bareBoolean(left)
}

// parsePath consumes a dotted identifier chain. If the final segment is
// immediately followed by '(', it is a method call: path holds every
// segment up to but excluding the method name, methodName holds the
// method, and isCall is true.
func (p *parser) parsePath() (path []string, methodName string, isCall bool, err error) {
	path = append(path, p.advance().text)

	for p.peek().kind == tokDot {
		p.advance()

		seg, err := p.expect(tokIdent, "identifier after '.'")
		if err != nil {
			return nil, "", false, err
		}

		if p.peek().kind == tokLParen {
			return path, seg.text, true, nil
		}

		path = append(path, seg.text)
	}

	return path, "", false, nil
}

// finishMethodCall parses the `(<arg>)` half of a startsWith/endsWith/
// contains call and builds the corresponding BooleanMethodCall.
func (p *parser) finishMethodCall(path []string, method string) (compiler.BoolExpr, error) {
	object, err := p.resolve(path)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokLParen, "'('"); err != nil {
		return nil, err
	}

	arg, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}

	switch method {
	case "startsWith":
		return compiler.StartsWith(object, arg), nil
	case "endsWith":
		return compiler.EndsWith(object, arg), nil
	case "contains", "includes":
		return compiler.ContainsStr(object, arg), nil
	default:
		return nil, &compiler.UnsupportedConstruct{Construct: "method call", Detail: method}
	}
}

func compareFor(kind tokenKind, left, right compiler.ValueExpr) compiler.BoolExpr {
	switch kind {
	case tokEq:
		return compiler.Eq(left, right)
	case tokNeq:
		return compiler.Neq(left, right)
	case tokGt:
		return compiler.Gt(left, right)
	case tokGte:
		return compiler.Gte(left, right)
	case tokLt:
		return compiler.Lt(left, right)
	default:
		return compiler.Lte(left, right)
	}
}

// bareBoolean upcasts a bare column/parameter value to its boolean
// counterpart per invariant 7; any other value shape in predicate
// position is a SemanticViolation, not a silently-accepted no-op.
func bareBoolean(v compiler.ValueExpr) (compiler.BoolExpr, error) {
	switch n := v.(type) {
	case *compiler.Column:
		return compiler.BoolCol(n.Name), nil
	case *compiler.Parameter:
		if n.Property != "" {
			return nil, &compiler.UnsupportedConstruct{Construct: "bare boolean parameter property", Detail: n.Name + "." + n.Property}
		}

		return compiler.BoolParam(n.Name), nil
	case *compiler.Constant:
		b, ok := n.Value.(bool)
		if !ok {
			return nil, &compiler.UnsupportedConstruct{Construct: "non-boolean literal used as predicate", Detail: fmt.Sprintf("%v", n.Value)}
		}

		return compiler.BoolLiteral(b), nil
	default:
		return nil, &compiler.UnsupportedConstruct{Construct: "predicate", Detail: fmt.Sprintf("%T is not a valid bare predicate", v)}
	}
}

func (p *parser) parseArrayLiteral() ([]compiler.ValueExpr, error) {
	if _, err := p.expect(tokLBracket, "'['"); err != nil {
		return nil, err
	}

	var items []compiler.ValueExpr

	if p.peek().kind != tokRBracket {
		for {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}

			items = append(items, v)

			if p.peek().kind != tokComma {
				break
			}

			p.advance()
		}
	}

	if _, err := p.expect(tokRBracket, "']'"); err != nil {
		return nil, err
	}

	return items, nil
}

// parseValue parses a literal or a (possibly dotted) identifier resolved
// via Resolver. startsWith/endsWith/contains calls are rejected here:
// they only ever appear as a whole predicate, never nested inside a
// larger value expression.
func (p *parser) parseValue() (compiler.ValueExpr, error) {
	switch p.peek().kind {
	case tokNumber:
		t := p.advance()

		n, err := parseNumberLiteral(t.text)
		if err != nil {
			return nil, &compiler.ParseFailure{Fragment: t.text, Reason: "invalid number literal"}
		}

		return compiler.Val(n), nil

	case tokString:
		t := p.advance()

		return compiler.Val(t.text), nil

	case tokTrue:
		p.advance()

		return compiler.Val(true), nil

	case tokFalse:
		p.advance()

		return compiler.Val(false), nil

	case tokNull:
		p.advance()

		return compiler.Null(), nil

	case tokIdent:
		path, method, isCall, err := p.parsePath()
		if err != nil {
			return nil, err
		}

		if isCall {
			return nil, &compiler.UnsupportedConstruct{
				Construct: "method call in value position",
				Detail:    method + "(...) is only valid as a whole predicate",
			}
		}

		return p.resolve(path)

	default:
		return nil, &compiler.ParseFailure{Fragment: p.peek().text, Reason: "expected a value"}
	}
}

// resolve binds an identifier path: a declared query parameter's name
// (optionally one property level deep) resolves to a Parameter, anything
// else resolves to a Column, dotted segments quoted independently by the
// emitter (spec.md §4.3's Column/Parameter rules).
func (p *parser) resolve(path []string) (compiler.ValueExpr, error) {
	head := path[0]

	if p.resolver.QueryParam[head] {
		switch len(path) {
		case 1:
			return compiler.Param(head), nil
		case 2:
			return compiler.ParamProperty(head, path[1]), nil
		default:
			return nil, &compiler.UnsupportedConstruct{
				Construct: "nested parameter property path",
				Detail:    strings.Join(path, "."),
			}
		}
	}

	return compiler.Col(strings.Join(path, ".")), nil
}
