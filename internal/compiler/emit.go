package compiler

import (
	"fmt"
	"strings"

	"github.com/lambdaquery/lq/schema"
)

// ordinalRef renders as a bare, unquoted SQL positional ordinal — used
// only for the synthetic "ORDER BY 1 DESC" fallback renderLast installs
// when a Last()/LastOrDefault() chain established no prior ordering.
type ordinalRef struct{ n int }

func (ordinalRef) isValueExpr() {}

// joinInfo records the alias assignment and key columns of a single Join
// stage, active for the remainder of the chain once encountered — this
// is what lets OuterCol/InnerCol (and bare columns, which resolve to the
// outer side) qualify correctly in any clause built after the join.
type joinInfo struct {
	outerTable, outerAlias string
	innerTable, innerAlias string
	outerKey, innerKey     string
}

// plan is the flattened, already-normalized-and-parameterized shape of a
// single SELECT stage, built by a single leaf-to-root walk of the
// operation tree. Rendering (render.go) never re-walks the tree; it only
// formats plan fields in canonical clause order.
type plan struct {
	table         string
	join          *joinInfo
	where         []BoolExpr
	hasProjection bool
	projKind      ProjectionKind
	projValue     ValueExpr
	projFields    []SelectField
	distinct      bool
	groupBy       string
	order         []OrderKey
	literalLimit  *int
	take, skip    ValueExpr
	unionOther    *plan
	terminal      *TerminalOp
}

// emitter carries the shared state of a single top-level compile: the
// target dialect, the auto-parameterization context (whose counter is
// shared across nested subqueries per spec.md §9 "Auto-parameter counter
// scope"), the optional schema for type-driven string promotion, and the
// currently active join (if any) for column qualification.
type emitter struct {
	dialect Dialect
	pc      *paramCtx
	sch     *schema.Schema
	joinCtx *joinInfo
	table   string
}

func collectChain(root Op) []Op {
	var chain []Op
	for n := root; n != nil; n = n.source() {
		chain = append(chain, n)
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain
}

// build flattens an operation tree into a plan, applying normalization
// and auto-parameterization to every expression payload in the exact
// order its owning node appears in the chain — leaf (From) to root —
// which is the order spec.md §8's seed examples number __p slots in.
func (e *emitter) build(root Op) (*plan, error) {
	p := &plan{}

	for _, node := range collectChain(root) {
		switch n := node.(type) {
		case *FromOp:
			p.table = n.Table
			e.table = n.Table

		case *WhereOp:
			pred, err := e.prepareBool(n.Pred)
			if err != nil {
				return nil, err
			}

			p.where = append(p.where, pred)

		case *SelectOp:
			p.hasProjection = true
			p.projKind = n.Kind

			switch n.Kind {
			case ProjectValue:
				v, err := e.prepareValue(n.Value)
				if err != nil {
					return nil, err
				}

				p.projValue = v
				p.projFields = nil
			case ProjectObject:
				fields, err := e.prepareFields(n.Fields)
				if err != nil {
					return nil, err
				}

				p.projFields = fields
				p.projValue = nil
			}

		case *OrderOp:
			key, err := e.prepareValue(n.Key.Key)
			if err != nil {
				return nil, err
			}

			p.order = []OrderKey{{Key: key, Direction: n.Key.Direction}}

		case *ThenOp:
			if len(p.order) == 0 {
				return nil, &SemanticViolation{
					Rule:   "thenBy without orderBy",
					Detail: "an ordering continuation appeared with no established ordering",
				}
			}

			key, err := e.prepareValue(n.Key.Key)
			if err != nil {
				return nil, err
			}

			p.order = append(p.order, OrderKey{Key: key, Direction: n.Key.Direction})

		case *GroupByOp:
			p.groupBy = n.Column

		case *JoinOp:
			if err := e.applyJoin(p, n); err != nil {
				return nil, err
			}

		case *TakeOp:
			v, err := e.prepareValue(n.Count)
			if err != nil {
				return nil, err
			}

			p.take = v

		case *SkipOp:
			v, err := e.prepareValue(n.Count)
			if err != nil {
				return nil, err
			}

			p.skip = v

		case *DistinctOp:
			p.distinct = true

		case *UnionOp:
			other, err := e.build(n.Other)
			if err != nil {
				return nil, err
			}

			p.unionOther = other

		case *ReverseOp:
			p.order = reverseOrder(p.order)

		case *TerminalOp:
			pred, err := e.prepareOptionalBool(n.Pred)
			if err != nil {
				return nil, err
			}

			selector, err := e.prepareOptionalValue(n.Selector)
			if err != nil {
				return nil, err
			}

			p.terminal = &TerminalOp{Kind: n.Kind, Pred: pred, Selector: selector}
		}
	}

	return p, nil
}

func reverseOrder(order []OrderKey) []OrderKey {
	flipped := make([]OrderKey, len(order))
	for i, k := range order {
		dir := Asc
		if k.Direction == Asc {
			dir = Desc
		}

		flipped[i] = OrderKey{Key: k.Key, Direction: dir}
	}

	return flipped
}

// applyJoin resolves the inner operation subtree's table, assigns chain-
// order aliases (spec.md §4.5 "t0, t1, t2 assigned in chain order"),
// and — if the Join call carried its own result projection — qualifies
// it. The key selectors are plain column-name strings by construction
// (invariant 2), so no further check is made on them here.
func (e *emitter) applyJoin(p *plan, n *JoinOp) error {
	inner, err := e.build(n.Inner)
	if err != nil {
		return err
	}

	if inner.hasProjection || len(inner.where) > 0 {
		return &UnsupportedConstruct{
			Construct: "join",
			Detail:    "inner side of a join must be a plain table source; filtered/projected subqueries are not supported",
		}
	}

	info := &joinInfo{
		outerTable: p.table,
		outerAlias: "t0",
		innerTable: inner.table,
		innerAlias: "t1",
		outerKey:   n.OuterKey,
		innerKey:   n.InnerKey,
	}
	p.join = info
	e.joinCtx = info

	if n.Result != nil {
		fields, err := e.prepareFields(n.Result)
		if err != nil {
			return err
		}

		p.hasProjection = true
		p.projKind = ProjectObject
		p.projFields = fields
	}

	return nil
}

func (e *emitter) prepareFields(fields []SelectField) ([]SelectField, error) {
	out := make([]SelectField, len(fields))

	for i, f := range fields {
		v, err := e.prepareValue(f.Expr)
		if err != nil {
			return nil, err
		}

		out[i] = SelectField{Alias: f.Alias, Expr: v}
	}

	return out, nil
}

func (e *emitter) prepareOptionalBool(b BoolExpr) (BoolExpr, error) {
	if b == nil {
		return nil, nil
	}

	return e.prepareBool(b)
}

func (e *emitter) prepareOptionalValue(v ValueExpr) (ValueExpr, error) {
	if v == nil {
		return nil, nil
	}

	return e.prepareValue(v)
}

// qualifyColumnName prefixes a bare column with the active join's outer
// alias (spec.md §4.5 "bare column references after a join resolve to
// the outer side"); a no-op with no active join.
func (e *emitter) qualifyColumnName(name string) string {
	if e.joinCtx == nil {
		return name
	}

	return e.joinCtx.outerAlias + "." + name
}

// validateColumn checks a bare column reference against the declared
// Schema, when one is set and the owning table is known. Dotted names
// (JSON-path or already-qualified references) and unknown tables are
// left unchecked — the schema is advisory, not exhaustive.
func (e *emitter) validateColumn(name string) error {
	if e.sch == nil || name == "*" || strings.Contains(name, ".") {
		return nil
	}

	table := e.table
	if e.joinCtx != nil {
		table = e.joinCtx.outerTable
	}

	if table == "" {
		return nil
	}

	if _, ok := e.sch.Table(table); !ok {
		return nil
	}

	if _, ok := e.sch.ColumnKind(table, name); ok {
		return nil
	}

	return &SemanticViolation{
		Rule:       "unknown column",
		Detail:     fmt.Sprintf("column %q is not declared on table %q", name, table),
		Suggestion: suggestColumn(name, e.sch.ColumnNames(table)),
	}
}

func (e *emitter) schemaStringCol() func(string) bool {
	table := e.table
	if e.joinCtx != nil {
		table = e.joinCtx.outerTable
	}

	if e.sch == nil || table == "" {
		return nil
	}

	return func(col string) bool {
		kind, ok := e.sch.ColumnKind(table, col)

		return ok && kind == schema.KindString
	}
}

// prepareValue applies string-promotion normalization, then
// auto-parameterizes every literal constant it finds, in left-to-right
// order within the expression.
func (e *emitter) prepareValue(v ValueExpr) (ValueExpr, error) {
	normalized := normalizeValue(v, e.schemaStringCol())

	return e.paramValue(normalized)
}

func (e *emitter) paramValue(v ValueExpr) (ValueExpr, error) {
	switch n := v.(type) {
	case *Column:
		if err := e.validateColumn(n.Name); err != nil {
			return nil, err
		}

		return &Column{Name: e.qualifyColumnName(n.Name)}, nil

	case *JoinColumn:
		if e.joinCtx == nil {
			return nil, &SemanticViolation{
				Rule:   "join column reference outside a join",
				Detail: "OuterCol/InnerCol may only be used after a Join stage",
			}
		}

		alias := e.joinCtx.outerAlias
		if n.Side == InnerSide {
			alias = e.joinCtx.innerAlias
		}

		return &Column{Name: alias + "." + n.Name}, nil

	case *Constant:
		return &Parameter{Name: e.pc.alloc(n.Value)}, nil

	case *Parameter:
		e.pc.usedNames[n.Name] = true

		return n, nil

	case *NullValue:
		return n, nil

	case *Arithmetic:
		left, err := e.paramValue(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := e.paramValue(n.Right)
		if err != nil {
			return nil, err
		}

		return &Arithmetic{Op: n.Op, Left: left, Right: right}, nil

	case *Concat:
		left, err := e.paramValue(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := e.paramValue(n.Right)
		if err != nil {
			return nil, err
		}

		return &Concat{Left: left, Right: right}, nil

	case *Coalesce:
		value, err := e.paramValue(n.Value)
		if err != nil {
			return nil, err
		}

		def, err := e.paramValue(n.Default)
		if err != nil {
			return nil, err
		}

		return &Coalesce{Value: value, Default: def}, nil

	case *StringMethodCall:
		obj, err := e.paramValue(n.Object)
		if err != nil {
			return nil, err
		}

		return &StringMethodCall{Object: obj, Method: n.Method}, nil

	case *WindowFunction:
		return e.paramWindow(n)

	default:
		return v, nil
	}
}

func (e *emitter) paramWindow(n *WindowFunction) (ValueExpr, error) {
	partition := make([]ValueExpr, len(n.PartitionBy))

	for i, part := range n.PartitionBy {
		v, err := e.paramValue(part)
		if err != nil {
			return nil, err
		}

		partition[i] = v
	}

	order := make([]OrderKey, len(n.OrderBy))

	for i, k := range n.OrderBy {
		v, err := e.paramValue(k.Key)
		if err != nil {
			return nil, err
		}

		order[i] = OrderKey{Key: v, Direction: k.Direction}
	}

	return &WindowFunction{Func: n.Func, PartitionBy: partition, OrderBy: order}, nil
}

// prepareBool mirrors prepareValue for the boolean algebra: it lowers
// null comparisons and empty-IN predicates before parameterizing, since
// both rewrites change whether a child literal is parameterized at all.
func (e *emitter) prepareBool(b BoolExpr) (BoolExpr, error) {
	switch n := b.(type) {
	case *Comparison:
		left := normalizeValue(n.Left, e.schemaStringCol())
		right := normalizeValue(n.Right, e.schemaStringCol())

		if isNull := lowerNullComparison(&Comparison{Op: n.Op, Left: left, Right: right}); isNull != nil {
			operand, err := e.paramValue(isNull.Value)
			if err != nil {
				return nil, err
			}

			return &IsNull{Value: operand, Negated: isNull.Negated}, nil
		}

		paramLeft, err := e.paramValue(left)
		if err != nil {
			return nil, err
		}

		paramRight, err := e.paramValue(right)
		if err != nil {
			return nil, err
		}

		return &Comparison{Op: n.Op, Left: paramLeft, Right: paramRight}, nil

	case *Logical:
		left, err := e.prepareBool(n.Left)
		if err != nil {
			return nil, err
		}

		right, err := e.prepareBool(n.Right)
		if err != nil {
			return nil, err
		}

		return &Logical{Op: n.Op, Left: left, Right: right}, nil

	case *Not:
		expr, err := e.prepareBool(n.Expr)
		if err != nil {
			return nil, err
		}

		return &Not{Expr: expr}, nil

	case *BooleanColumn:
		if err := e.validateColumn(n.Name); err != nil {
			return nil, err
		}

		return &BooleanColumn{Name: e.qualifyColumnName(n.Name)}, nil

	case *BooleanConstant:
		return n, nil

	case *BooleanParam:
		e.pc.usedNames[n.Name] = true

		return n, nil

	case *BooleanMethodCall:
		obj, err := e.paramValue(n.Object)
		if err != nil {
			return nil, err
		}

		arg, err := e.paramValue(n.Arg)
		if err != nil {
			return nil, err
		}

		return &BooleanMethodCall{Object: obj, Method: n.Method, Arg: arg}, nil

	case *In:
		if lowered, ok := lowerEmptyIn(n); ok {
			return lowered, nil
		}

		value, err := e.paramValue(n.Value)
		if err != nil {
			return nil, err
		}

		if n.ListParam != "" {
			return &In{Value: value, ListParam: n.ListParam, Negated: n.Negated}, nil
		}

		list := make([]ValueExpr, len(n.List))

		for i, item := range n.List {
			v, err := e.paramValue(item)
			if err != nil {
				return nil, err
			}

			list[i] = v
		}

		return &In{Value: value, List: list, Negated: n.Negated}, nil

	case *IsNull:
		operand, err := e.paramValue(n.Value)
		if err != nil {
			return nil, err
		}

		return &IsNull{Value: operand, Negated: n.Negated}, nil

	default:
		return b, nil
	}
}
