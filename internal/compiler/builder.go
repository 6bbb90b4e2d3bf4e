package compiler

import (
	"reflect"

	"github.com/jinzhu/copier"
)

// Queryable is the fluent builder surface of spec.md §4.1: every method
// wraps its receiver's Op in a new node and returns a fresh Queryable,
// so a partially-built chain can be safely shared and extended from
// multiple call sites (spec.md §3 "Lifecycles").
type Queryable struct {
	op  Op
	err error
}

// From starts a new Queryable rooted at the given table.
func From(table string) *Queryable {
	return &Queryable{op: &FromOp{Table: table}}
}

// deepCopyValue and deepCopyBool defensively copy a caller-supplied
// expression-tree payload via jinzhu/copier before a builder method
// stores it, so a caller that keeps and later mutates the *Column/
// *Comparison/... value it passed in cannot retroactively change a
// node the builder already returned — the "builder call returns a
// fresh node" immutability invariant of spec.md §3, enforced at the
// expression-payload level rather than by re-copying the whole prior
// operation chain on every call.
func deepCopyValue(v ValueExpr) ValueExpr {
	if v == nil {
		return nil
	}

	dup, ok := deepCopyAny(v).(ValueExpr)
	if !ok {
		return v
	}

	return dup
}

func deepCopyBool(b BoolExpr) BoolExpr {
	if b == nil {
		return nil
	}

	dup, ok := deepCopyAny(b).(BoolExpr)
	if !ok {
		return b
	}

	return dup
}

func deepCopyAny(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return v
	}

	dst := reflect.New(rv.Type().Elem()).Interface()
	if err := copier.CopyWithOption(dst, v, copier.Option{DeepCopy: true}); err != nil {
		return v
	}

	return dst
}

// Where adds a conjunctive predicate. Predicates accumulate: a chain of
// N Where calls produces N WhereOp nodes ANDed together.
func (q *Queryable) Where(pred BoolExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &WhereOp{Src: q.op, Pred: deepCopyBool(pred)}}
}

// Select sets a single-column value projection.
func (q *Queryable) Select(value ValueExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &SelectOp{Src: q.op, Kind: ProjectValue, Value: deepCopyValue(value)}}
}

// SelectObject sets an object projection; fields render in the order
// given, preserving caller insertion order per spec.md §4.5.
func (q *Queryable) SelectObject(fields ...SelectField) *Queryable {
	if q.err != nil {
		return q
	}

	copied := make([]SelectField, len(fields))
	for i, f := range fields {
		copied[i] = SelectField{Alias: f.Alias, Expr: deepCopyValue(f.Expr)}
	}

	return &Queryable{op: &SelectOp{Src: q.op, Kind: ProjectObject, Fields: copied}}
}

// OrderBy starts an ascending ordering.
func (q *Queryable) OrderBy(key ValueExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &OrderOp{Src: q.op, Key: OrderKey{Key: key, Direction: Asc}}}
}

// OrderByDescending starts a descending ordering.
func (q *Queryable) OrderByDescending(key ValueExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &OrderOp{Src: q.op, Key: OrderKey{Key: key, Direction: Desc}}}
}

// ThenBy continues an established ordering ascending. Calling it
// without a prior OrderBy/OrderByDescending/ThenBy is a SemanticViolation,
// surfaced at ToSQL (spec.md §4.1 "runtime chains that violate ordering
// are rejected by the converter").
func (q *Queryable) ThenBy(key ValueExpr) *Queryable {
	return q.thenBy(key, Asc)
}

// ThenByDescending continues an established ordering descending.
func (q *Queryable) ThenByDescending(key ValueExpr) *Queryable {
	return q.thenBy(key, Desc)
}

func (q *Queryable) thenBy(key ValueExpr, dir Direction) *Queryable {
	if q.err != nil {
		return q
	}

	if !hasOrdering(q.op) {
		return &Queryable{err: &SemanticViolation{
			Rule:   "thenBy without orderBy",
			Detail: "ThenBy/ThenByDescending is only legal after an OrderBy/OrderByDescending at the same ordering scope",
		}}
	}

	return &Queryable{op: &ThenOp{Src: q.op, Key: OrderKey{Key: key, Direction: dir}}}
}

// hasOrdering reports whether op's chain already established an
// ordering scope (an OrderOp/ThenOp not separated by an intervening
// From/Join boundary).
func hasOrdering(op Op) bool {
	for o := op; o != nil; o = o.source() {
		switch o.(type) {
		case *OrderOp, *ThenOp:
			return true
		case *FromOp, *JoinOp:
			return false
		}
	}

	return false
}

// GroupBy groups by a simple column reference. column must name a
// Column expression; spec.md invariant 3 rejects computed group keys.
func (q *Queryable) GroupBy(column string) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &GroupByOp{Src: q.op, Column: column}}
}

// Join performs an inner join against a nested Queryable, keyed by
// simple column references on each side (spec.md invariant 2).
func (q *Queryable) Join(inner *Queryable, outerKey, innerKey string, result ...SelectField) *Queryable {
	if q.err != nil {
		return q
	}

	if inner.err != nil {
		return inner
	}

	return &Queryable{op: &JoinOp{Src: q.op, Inner: inner.op, OuterKey: outerKey, InnerKey: innerKey, Result: result}}
}

// Take renders LIMIT count.
func (q *Queryable) Take(count ValueExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &TakeOp{Src: q.op, Count: count}}
}

// Skip renders OFFSET count.
func (q *Queryable) Skip(count ValueExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &SkipOp{Src: q.op, Count: count}}
}

// Distinct marks SELECT DISTINCT; idempotent.
func (q *Queryable) Distinct() *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &DistinctOp{Src: q.op}}
}

// Union combines this Queryable with another via UNION.
func (q *Queryable) Union(other *Queryable) *Queryable {
	if q.err != nil {
		return q
	}

	if other.err != nil {
		return other
	}

	return &Queryable{op: &UnionOp{Src: q.op, Other: other.op}}
}

// Reverse flips the direction of every ORDER BY clause established so
// far.
func (q *Queryable) Reverse() *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &ReverseOp{Src: q.op}}
}

func (q *Queryable) terminal(kind TerminalKind, pred BoolExpr, selector ValueExpr) *Queryable {
	if q.err != nil {
		return q
	}

	return &Queryable{op: &TerminalOp{Src: q.op, Kind: kind, Pred: deepCopyBool(pred), Selector: deepCopyValue(selector)}}
}

func (q *Queryable) First(pred ...BoolExpr) *Queryable {
	return q.terminal(TermFirst, firstOf(pred), nil)
}

func (q *Queryable) FirstOrDefault(pred ...BoolExpr) *Queryable {
	return q.terminal(TermFirstOrDefault, firstOf(pred), nil)
}

func (q *Queryable) Single(pred ...BoolExpr) *Queryable {
	return q.terminal(TermSingle, firstOf(pred), nil)
}

func (q *Queryable) SingleOrDefault(pred ...BoolExpr) *Queryable {
	return q.terminal(TermSingleOrDefault, firstOf(pred), nil)
}

func (q *Queryable) Last(pred ...BoolExpr) *Queryable {
	return q.terminal(TermLast, firstOf(pred), nil)
}

func (q *Queryable) LastOrDefault(pred ...BoolExpr) *Queryable {
	return q.terminal(TermLastOrDefault, firstOf(pred), nil)
}

func (q *Queryable) Count(pred ...BoolExpr) *Queryable {
	return q.terminal(TermCount, firstOf(pred), nil)
}

func (q *Queryable) Any(pred ...BoolExpr) *Queryable {
	return q.terminal(TermAny, firstOf(pred), nil)
}

func (q *Queryable) All(pred BoolExpr) *Queryable {
	return q.terminal(TermAll, pred, nil)
}

func (q *Queryable) Sum(selector ValueExpr) *Queryable {
	return q.terminal(TermSum, nil, selector)
}

func (q *Queryable) Average(selector ValueExpr) *Queryable {
	return q.terminal(TermAverage, nil, selector)
}

func (q *Queryable) Min(selector ValueExpr) *Queryable {
	return q.terminal(TermMin, nil, selector)
}

func (q *Queryable) Max(selector ValueExpr) *Queryable {
	return q.terminal(TermMax, nil, selector)
}

func (q *Queryable) Contains(value ValueExpr) *Queryable {
	return q.terminal(TermContains, nil, value)
}

func (q *Queryable) ToArray() *Queryable {
	return q.terminal(TermToArray, nil, nil)
}

func firstOf(preds []BoolExpr) BoolExpr {
	if len(preds) == 0 {
		return nil
	}

	return preds[0]
}

// --- Expression-builder helpers (the Go-native replacement for a
// parsed closure body, spec.md §0) ---

// Col references a column on the enclosing table.
func Col(name string) *Column { return &Column{Name: name} }

// OuterCol and InnerCol reference a column on a specific side of a
// Join's result projection; a bare Col in that position resolves to the
// outer side (spec.md §4.5 "bare column references after a join
// resolve to the outer side").
func OuterCol(name string) *JoinColumn { return &JoinColumn{Side: OuterSide, Name: name} }
func InnerCol(name string) *JoinColumn { return &JoinColumn{Side: InnerSide, Name: name} }

// BoolCol references a boolean column used directly as a predicate.
func BoolCol(name string) *BooleanColumn { return &BooleanColumn{Name: name} }

// BoolParam references a declared boolean query parameter used directly
// as a predicate.
func BoolParam(name string) *BooleanParam { return &BooleanParam{Name: name} }

// BoolLiteral builds a literal TRUE/FALSE predicate.
func BoolLiteral(value bool) *BooleanConstant { return &BooleanConstant{Value: value} }

// Val wraps a literal value; auto-parameterization lifts it into a
// named slot during emission (spec.md §4.4) unless it participates in a
// null-equality comparison, which lowers to IS [NOT] NULL instead.
func Val(value any) *Constant { return &Constant{Value: value} }

// Null is the explicit NULL literal value.
func Null() *NullValue { return &NullValue{} }

// Param references a declared query parameter by name.
func Param(name string) *Parameter { return &Parameter{Name: name} }

// ParamProperty references a single-level property path into a
// declared query parameter's bound value (p.min).
func ParamProperty(name, property string) *Parameter {
	return &Parameter{Name: name, Property: property}
}

// Eq, Neq, Gt, Gte, Lt, Lte build a Comparison.
func Eq(left, right ValueExpr) *Comparison  { return &Comparison{Op: CompareEq, Left: left, Right: right} }
func Neq(left, right ValueExpr) *Comparison { return &Comparison{Op: CompareNeq, Left: left, Right: right} }
func Gt(left, right ValueExpr) *Comparison  { return &Comparison{Op: CompareGt, Left: left, Right: right} }
func Gte(left, right ValueExpr) *Comparison { return &Comparison{Op: CompareGte, Left: left, Right: right} }
func Lt(left, right ValueExpr) *Comparison  { return &Comparison{Op: CompareLt, Left: left, Right: right} }
func Lte(left, right ValueExpr) *Comparison { return &Comparison{Op: CompareLte, Left: left, Right: right} }

// And, Or build a Logical connective.
func And(left, right BoolExpr) *Logical { return &Logical{Op: LogicalAnd, Left: left, Right: right} }
func Or(left, right BoolExpr) *Logical  { return &Logical{Op: LogicalOr, Left: left, Right: right} }

// Neg negates a boolean expression.
func Neg(expr BoolExpr) *Not { return &Not{Expr: expr} }

// Add, Sub, Mul, Div, Mod build an Arithmetic expression (promoted to
// Concat during normalization when either operand is known-string).
func Add(left, right ValueExpr) *Arithmetic { return &Arithmetic{Op: ArithAdd, Left: left, Right: right} }
func Sub(left, right ValueExpr) *Arithmetic { return &Arithmetic{Op: ArithSub, Left: left, Right: right} }
func Mul(left, right ValueExpr) *Arithmetic { return &Arithmetic{Op: ArithMul, Left: left, Right: right} }
func Div(left, right ValueExpr) *Arithmetic { return &Arithmetic{Op: ArithDiv, Left: left, Right: right} }
func Mod(left, right ValueExpr) *Arithmetic { return &Arithmetic{Op: ArithMod, Left: left, Right: right} }

// CoalesceOf builds a COALESCE(value, default) expression.
func CoalesceOf(value, def ValueExpr) *Coalesce { return &Coalesce{Value: value, Default: def} }

// IsNullOf / IsNotNullOf build an explicit IS [NOT] NULL predicate,
// equivalent to what Eq/Neq against Null() lower to during normalization.
func IsNullOf(value ValueExpr) *IsNull    { return &IsNull{Value: value} }
func IsNotNullOf(value ValueExpr) *IsNull { return &IsNull{Value: value, Negated: true} }

// InList builds a membership test against a literal, builder-time list.
func InList(value ValueExpr, list ...ValueExpr) *In { return &In{Value: value, List: list} }

// InParam builds a membership test against a caller-supplied parameter
// array, expanded element-by-element at emit time.
func InParam(value ValueExpr, paramName string) *In {
	return &In{Value: value, ListParam: paramName}
}

// StartsWith, EndsWith, Contains build a predicate-producing string
// helper call.
func StartsWith(object ValueExpr, arg ValueExpr) *BooleanMethodCall {
	return &BooleanMethodCall{Object: object, Method: BoolStartsWith, Arg: arg}
}

func EndsWith(object ValueExpr, arg ValueExpr) *BooleanMethodCall {
	return &BooleanMethodCall{Object: object, Method: BoolEndsWith, Arg: arg}
}

func ContainsStr(object ValueExpr, arg ValueExpr) *BooleanMethodCall {
	return &BooleanMethodCall{Object: object, Method: BoolContains, Arg: arg}
}

// ToLower, ToUpper, Trim build a value-producing string helper call.
func ToLower(object ValueExpr) *StringMethodCall {
	return &StringMethodCall{Object: object, Method: StringToLower}
}

func ToUpper(object ValueExpr) *StringMethodCall {
	return &StringMethodCall{Object: object, Method: StringToUpper}
}

func Trim(object ValueExpr) *StringMethodCall {
	return &StringMethodCall{Object: object, Method: StringTrim}
}

// RowNumber, Rank, DenseRank build a ranking WindowFunction.
func RowNumber(partitionBy []ValueExpr, orderBy ...OrderKey) *WindowFunction {
	return &WindowFunction{Func: WindowRowNumber, PartitionBy: partitionBy, OrderBy: orderBy}
}

func Rank(partitionBy []ValueExpr, orderBy ...OrderKey) *WindowFunction {
	return &WindowFunction{Func: WindowRank, PartitionBy: partitionBy, OrderBy: orderBy}
}

func DenseRank(partitionBy []ValueExpr, orderBy ...OrderKey) *WindowFunction {
	return &WindowFunction{Func: WindowDenseRank, PartitionBy: partitionBy, OrderBy: orderBy}
}
