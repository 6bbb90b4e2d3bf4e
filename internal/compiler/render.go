package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// render formats a plan into canonical SQL: SELECT, FROM, JOIN, WHERE,
// GROUP BY, ORDER BY, LIMIT, OFFSET (spec.md §4.5).
func (e *emitter) render(p *plan) (string, error) {
	if p.unionOther != nil {
		left, err := e.renderOne(p)
		if err != nil {
			return "", err
		}

		right, err := e.render(p.unionOther)
		if err != nil {
			return "", err
		}

		return left + " UNION " + right, nil
	}

	return e.renderOne(p)
}

func (e *emitter) renderOne(p *plan) (string, error) {
	if p.terminal != nil {
		return e.renderTerminal(p)
	}

	var b strings.Builder

	proj, err := e.renderProjection(p)
	if err != nil {
		return "", err
	}

	b.WriteString("SELECT ")

	if p.distinct {
		b.WriteString("DISTINCT ")
	}

	b.WriteString(proj)
	b.WriteString(" FROM ")
	b.WriteString(e.renderFrom(p))

	if clause, err := e.renderWhere(p.where); err != nil {
		return "", err
	} else if clause != "" {
		b.WriteString(" WHERE ")
		b.WriteString(clause)
	}

	if p.groupBy != "" {
		b.WriteString(" GROUP BY ")
		b.WriteString(QuoteQualified(e.dialect, p.groupBy))
	}

	if len(p.order) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(e.renderOrder(p.order))
	}

	if p.literalLimit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *p.literalLimit)
	} else {
		limitOffset, err := e.renderLimitOffset(p.take, p.skip)
		if err != nil {
			return "", err
		}

		b.WriteString(limitOffset)
	}

	return b.String(), nil
}

func (e *emitter) renderFrom(p *plan) string {
	if p.join == nil {
		return QuoteQualified(e.dialect, p.table)
	}

	j := p.join

	return fmt.Sprintf(
		"%s AS %s INNER JOIN %s AS %s ON %s.%s = %s.%s",
		QuoteQualified(e.dialect, j.outerTable), e.dialect.QuoteIdent(j.outerAlias),
		QuoteQualified(e.dialect, j.innerTable), e.dialect.QuoteIdent(j.innerAlias),
		e.dialect.QuoteIdent(j.outerAlias), QuoteQualified(e.dialect, j.outerKey),
		e.dialect.QuoteIdent(j.innerAlias), QuoteQualified(e.dialect, j.innerKey),
	)
}

func (e *emitter) renderProjection(p *plan) (string, error) {
	if !p.hasProjection {
		return "*", nil
	}

	switch p.projKind {
	case ProjectValue:
		return e.renderValue(p.projValue)
	case ProjectObject:
		parts := make([]string, len(p.projFields))

		for i, f := range p.projFields {
			expr, err := e.renderValue(f.Expr)
			if err != nil {
				return "", err
			}

			parts[i] = expr + " AS " + e.dialect.QuoteIdent(f.Alias)
		}

		return strings.Join(parts, ", "), nil
	default:
		return "*", nil
	}
}

// renderWhere joins the accumulated WhereOp chain with AND, without
// extra parentheses between top-level conjuncts (spec.md §4.5, and
// testable property 6 "chained where conjunction").
func (e *emitter) renderWhere(conjuncts []BoolExpr) (string, error) {
	if len(conjuncts) == 0 {
		return "", nil
	}

	parts := make([]string, len(conjuncts))

	for i, c := range conjuncts {
		rendered, err := e.renderBool(c)
		if err != nil {
			return "", err
		}

		parts[i] = rendered
	}

	return strings.Join(parts, " AND "), nil
}

func (e *emitter) renderOrder(order []OrderKey) string {
	parts := make([]string, len(order))

	for i, k := range order {
		expr, err := e.renderValue(k.Key)
		if err != nil {
			expr = "?"
		}

		parts[i] = fmt.Sprintf("%s %s", expr, k.Direction)
	}

	return strings.Join(parts, ", ")
}

func (e *emitter) renderLimitOffset(take, skip ValueExpr) (string, error) {
	switch {
	case take != nil && skip != nil:
		limit, err := e.renderValue(take)
		if err != nil {
			return "", err
		}

		offset, err := e.renderValue(skip)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf(" LIMIT %s OFFSET %s", limit, offset), nil
	case take != nil:
		limit, err := e.renderValue(take)
		if err != nil {
			return "", err
		}

		return " LIMIT " + limit, nil
	case skip != nil:
		offset, err := e.renderValue(skip)
		if err != nil {
			return "", err
		}

		if e.dialect.RequiresOffsetSentinel() {
			return " LIMIT -1 OFFSET " + offset, nil
		}

		return " OFFSET " + offset, nil
	default:
		return "", nil
	}
}

// renderValue renders a ValueExpr already processed by prepareValue
// (every Constant has been lifted to a Parameter).
func (e *emitter) renderValue(v ValueExpr) (string, error) {
	switch n := v.(type) {
	case *Column:
		return QuoteQualified(e.dialect, n.Name), nil

	case *Parameter:
		if n.Property != "" {
			value, err := e.pc.resolve(n.Name, n.Property)
			if err != nil {
				return "", err
			}

			slot := e.pc.alloc(value)

			return e.dialect.Placeholder(slot), nil
		}

		if _, err := e.pc.resolve(n.Name, ""); err != nil {
			return "", err
		}

		return e.dialect.Placeholder(n.Name), nil

	case *NullValue:
		return "NULL", nil

	case ordinalRef:
		return strconv.Itoa(n.n), nil

	case *Arithmetic:
		left, err := e.renderValue(n.Left)
		if err != nil {
			return "", err
		}

		right, err := e.renderValue(n.Right)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("(%s %s %s)", left, n.Op, right), nil

	case *Concat:
		left, err := e.renderValue(n.Left)
		if err != nil {
			return "", err
		}

		right, err := e.renderValue(n.Right)
		if err != nil {
			return "", err
		}

		return e.dialect.ConcatExpr(left, right), nil

	case *Coalesce:
		value, err := e.renderValue(n.Value)
		if err != nil {
			return "", err
		}

		def, err := e.renderValue(n.Default)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("COALESCE(%s, %s)", value, def), nil

	case *StringMethodCall:
		obj, err := e.renderValue(n.Object)
		if err != nil {
			return "", err
		}

		switch n.Method {
		case StringToLower:
			return fmt.Sprintf("LOWER(%s)", obj), nil
		case StringToUpper:
			return fmt.Sprintf("UPPER(%s)", obj), nil
		case StringTrim:
			return fmt.Sprintf("TRIM(%s)", obj), nil
		default:
			return "", &UnsupportedConstruct{Construct: "string method", Detail: string(n.Method)}
		}

	case *WindowFunction:
		return e.renderWindow(n)

	default:
		return "", &UnsupportedConstruct{Construct: "value expression", Detail: fmt.Sprintf("%T", v)}
	}
}

func (e *emitter) renderWindow(n *WindowFunction) (string, error) {
	var fn string

	switch n.Func {
	case WindowRowNumber:
		fn = "ROW_NUMBER()"
	case WindowRank:
		fn = "RANK()"
	case WindowDenseRank:
		fn = "DENSE_RANK()"
	default:
		return "", &UnsupportedConstruct{Construct: "window function", Detail: string(n.Func)}
	}

	var b strings.Builder

	b.WriteString(fn)
	b.WriteString(" OVER (")

	if len(n.PartitionBy) > 0 {
		parts := make([]string, len(n.PartitionBy))

		for i, part := range n.PartitionBy {
			rendered, err := e.renderValue(part)
			if err != nil {
				return "", err
			}

			parts[i] = rendered
		}

		b.WriteString("PARTITION BY ")
		b.WriteString(strings.Join(parts, ", "))

		if len(n.OrderBy) > 0 {
			b.WriteString(" ")
		}
	}

	if len(n.OrderBy) > 0 {
		b.WriteString("ORDER BY ")
		b.WriteString(e.renderOrder(n.OrderBy))
	}

	b.WriteString(")")

	return b.String(), nil
}

// renderBool renders a BoolExpr already processed by prepareBool. A
// Logical node always parenthesizes fully; chained WhereOp conjuncts AND
// together without an extra wrapping layer because renderWhere joins
// them directly rather than folding them into one Logical node (spec.md
// example a vs. example b).
func (e *emitter) renderBool(b BoolExpr) (string, error) {
	switch n := b.(type) {
	case *Comparison:
		left, err := e.renderValue(n.Left)
		if err != nil {
			return "", err
		}

		right, err := e.renderValue(n.Right)
		if err != nil {
			return "", err
		}

		op := map[CompareOp]string{
			CompareEq: "=", CompareNeq: "!=", CompareGt: ">",
			CompareGte: ">=", CompareLt: "<", CompareLte: "<=",
		}[n.Op]

		return fmt.Sprintf("%s %s %s", left, op, right), nil

	case *Logical:
		left, err := e.renderBool(n.Left)
		if err != nil {
			return "", err
		}

		right, err := e.renderBool(n.Right)
		if err != nil {
			return "", err
		}

		connective := "AND"
		if n.Op == LogicalOr {
			connective = "OR"
		}

		rendered := fmt.Sprintf("%s %s %s", left, connective, right)

		return "(" + rendered + ")", nil

	case *Not:
		expr, err := e.renderBool(n.Expr)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("NOT (%s)", expr), nil

	case *BooleanColumn:
		return QuoteQualified(e.dialect, n.Name), nil

	case *BooleanConstant:
		if n.Value {
			return "TRUE", nil
		}

		return "FALSE", nil

	case *BooleanParam:
		value, err := e.pc.resolve(n.Name, n.Property)
		if err != nil {
			return "", err
		}

		slot := e.pc.alloc(value)

		return e.dialect.Placeholder(slot), nil

	case *BooleanMethodCall:
		obj, err := e.renderValue(n.Object)
		if err != nil {
			return "", err
		}

		arg, err := e.renderValue(n.Arg)
		if err != nil {
			return "", err
		}

		switch n.Method {
		case BoolStartsWith:
			return fmt.Sprintf("%s LIKE %s || '%%'", obj, arg), nil
		case BoolEndsWith:
			return fmt.Sprintf("%s LIKE '%%' || %s", obj, arg), nil
		case BoolContains:
			return fmt.Sprintf("%s LIKE '%%' || %s || '%%'", obj, arg), nil
		default:
			return "", &UnsupportedConstruct{Construct: "boolean method", Detail: string(n.Method)}
		}

	case *In:
		return e.renderIn(n)

	case *IsNull:
		value, err := e.renderValue(n.Value)
		if err != nil {
			return "", err
		}

		if n.Negated {
			return value + " IS NOT NULL", nil
		}

		return value + " IS NULL", nil

	default:
		return "", &UnsupportedConstruct{Construct: "boolean expression", Detail: fmt.Sprintf("%T", b)}
	}
}

func (e *emitter) renderIn(n *In) (string, error) {
	value, err := e.renderValue(n.Value)
	if err != nil {
		return "", err
	}

	var placeholders []string

	if n.ListParam != "" {
		names, err := e.pc.expandArrayParam(n.ListParam)
		if err != nil {
			return "", err
		}

		placeholders = make([]string, len(names))
		for i, name := range names {
			placeholders[i] = e.dialect.Placeholder(name)
		}
	} else {
		placeholders = make([]string, len(n.List))

		for i, item := range n.List {
			rendered, err := e.renderValue(item)
			if err != nil {
				return "", err
			}

			placeholders[i] = rendered
		}
	}

	rendered := fmt.Sprintf("%s IN (%s)", value, strings.Join(placeholders, ", "))
	if n.Negated {
		return "NOT (" + rendered + ")", nil
	}

	return rendered, nil
}
