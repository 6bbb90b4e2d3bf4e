package compiler

import "fmt"

// renderTerminal renders the SQL shape dictated by a TerminalOp. The
// aggregate, Any/All and Contains terminals override the stage's own
// projection (spec.md §4.5 "Aggregate terminals override the
// projection"); First, Single, Last and ToArray keep it.
func (e *emitter) renderTerminal(p *plan) (string, error) {
	t := p.terminal
	base := *p
	base.terminal = nil

	switch t.Kind {
	case TermFirst, TermFirstOrDefault:
		return e.renderLimitN(&base, t.Pred, 1)
	case TermSingle, TermSingleOrDefault:
		return e.renderLimitN(&base, t.Pred, 2)
	case TermLast, TermLastOrDefault:
		return e.renderLast(&base, t.Pred)
	case TermCount:
		return e.renderAggregate(&base, t.Pred, "COUNT(*)")
	case TermAny:
		return e.renderExists(&base, t.Pred, false)
	case TermAll:
		return e.renderExists(&base, t.Pred, true)
	case TermSum:
		return e.renderScalarAggregate(&base, "SUM", t.Selector)
	case TermAverage:
		return e.renderScalarAggregate(&base, "AVG", t.Selector)
	case TermMin:
		return e.renderScalarAggregate(&base, "MIN", t.Selector)
	case TermMax:
		return e.renderScalarAggregate(&base, "MAX", t.Selector)
	case TermContains:
		return e.renderContains(&base, t.Selector)
	case TermToArray:
		return e.renderOne(&base)
	default:
		return "", &UnsupportedConstruct{Construct: "terminal operator", Detail: fmt.Sprintf("%v", t.Kind)}
	}
}

func (e *emitter) renderLimitN(base *plan, pred BoolExpr, n int) (string, error) {
	if pred != nil {
		base.where = append(base.where, pred)
	}

	base.take, base.skip = nil, nil
	base.literalLimit = &n

	return e.renderOne(base)
}

// renderLast implements testable property 7: reverse the established
// ordering (or default to "ORDER BY 1 DESC" with none established) and
// emit LIMIT 1.
func (e *emitter) renderLast(base *plan, pred BoolExpr) (string, error) {
	if pred != nil {
		base.where = append(base.where, pred)
	}

	if len(base.order) == 0 {
		base.order = []OrderKey{{Key: ordinalRef{n: 1}, Direction: Desc}}
	} else {
		base.order = reverseOrder(base.order)
	}

	base.take, base.skip = nil, nil
	one := 1
	base.literalLimit = &one

	return e.renderOne(base)
}

func (e *emitter) renderAggregate(base *plan, pred BoolExpr, selectExpr string) (string, error) {
	if pred != nil {
		base.where = append(base.where, pred)
	}

	clause, err := e.renderWhere(base.where)
	if err != nil {
		return "", err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s", selectExpr, e.renderFrom(base))
	if clause != "" {
		sql += " WHERE " + clause
	}

	return sql, nil
}

func (e *emitter) renderScalarAggregate(base *plan, fn string, selector ValueExpr) (string, error) {
	expr, err := e.renderValue(selector)
	if err != nil {
		return "", err
	}

	return e.renderAggregate(base, nil, fmt.Sprintf("%s(%s)", fn, expr))
}

// renderExists implements Any/All as a CASE WHEN [NOT] EXISTS(...) wrapper
// (spec.md §4.5 and seed examples c/d).
func (e *emitter) renderExists(base *plan, pred BoolExpr, negateAll bool) (string, error) {
	inner := *base

	if negateAll {
		if pred == nil {
			return "", &SemanticViolation{Rule: "all without predicate", Detail: "all() requires a predicate"}
		}

		inner.where = append(append([]BoolExpr{}, inner.where...), &Not{Expr: pred})
	} else if pred != nil {
		inner.where = append(append([]BoolExpr{}, inner.where...), pred)
	}

	clause, err := e.renderWhere(inner.where)
	if err != nil {
		return "", err
	}

	existsSQL := fmt.Sprintf("SELECT 1 FROM %s", e.renderFrom(&inner))
	if clause != "" {
		existsSQL += " WHERE " + clause
	}

	if negateAll {
		return fmt.Sprintf("SELECT CASE WHEN NOT EXISTS(%s) THEN 1 ELSE 0 END", existsSQL), nil
	}

	return fmt.Sprintf("SELECT CASE WHEN EXISTS(%s) THEN 1 ELSE 0 END", existsSQL), nil
}

func (e *emitter) renderContains(base *plan, value ValueExpr) (string, error) {
	if !base.hasProjection {
		return "", &SemanticViolation{Rule: "contains without selector column", Detail: "contains() requires a preceding select() establishing the compared column"}
	}

	var col ValueExpr

	switch base.projKind {
	case ProjectValue:
		col = base.projValue
	default:
		return "", &SemanticViolation{Rule: "contains on object projection", Detail: "contains() requires a single-column select()"}
	}

	inner := *base
	inner.hasProjection = false
	inner.where = append(append([]BoolExpr{}, inner.where...), &Comparison{Op: CompareEq, Left: col, Right: value})

	return e.renderExists(&inner, nil, false)
}
