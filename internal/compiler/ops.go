package compiler

// Op is a node in the query-operation tree: a linked list of operations,
// leaves first. Every builder method wraps its receiver's Op in a new
// node; the tree is immutable once built.
type Op interface {
	source() Op
}

// FromOp is the leaf of every operation tree: the table being queried.
type FromOp struct {
	Table string
}

func (*FromOp) source() Op { return nil }

// WhereOp accumulates conjunctively: a chain of N Where calls is N
// WhereOp nodes, each wrapping the previous, and the emitter ANDs them
// without extra parentheses between top-level conjuncts.
type WhereOp struct {
	Src  Op
	Pred BoolExpr
}

func (w *WhereOp) source() Op { return w.Src }

// ProjectionKind distinguishes the two SELECT projection shapes.
type ProjectionKind int

const (
	ProjectValue ProjectionKind = iota
	ProjectObject
)

// SelectField is one property of an object projection, in caller
// insertion order.
type SelectField struct {
	Alias string
	Expr  ValueExpr
}

// SelectOp is a projection stage. A bare-column ProjectValue renders
// without an alias; an object projection renders one `expr AS "alias"`
// per field.
type SelectOp struct {
	Src    Op
	Kind   ProjectionKind
	Value  ValueExpr
	Fields []SelectField
}

func (s *SelectOp) source() Op { return s.Src }

// OrderOp starts an ordering; ThenOp may only follow an OrderOp (or
// another ThenOp) at the same ordering scope — builder.go's thenBy and
// emit.go's build enforce this as a SemanticViolation, not merely a
// parse rule.
type OrderOp struct {
	Src Op
	Key OrderKey
}

func (o *OrderOp) source() Op { return o.Src }

// ThenOp continues an established ordering.
type ThenOp struct {
	Src Op
	Key OrderKey
}

func (t *ThenOp) source() Op { return t.Src }

// GroupByOp groups by a single simple column reference.
type GroupByOp struct {
	Src    Op
	Column string
}

func (g *GroupByOp) source() Op { return g.Src }

// JoinOp is an inner join against a nested operation subtree, keyed by
// simple column references on each side. Result is the projection
// lambda's object expression over the (outer, inner) pair.
type JoinOp struct {
	Src      Op
	Inner    Op
	OuterKey string
	InnerKey string
	Result   []SelectField
}

func (j *JoinOp) source() Op { return j.Src }

// TakeOp renders LIMIT; Count may be a literal or a parameter reference.
type TakeOp struct {
	Src   Op
	Count ValueExpr
}

func (t *TakeOp) source() Op { return t.Src }

// SkipOp renders OFFSET; Count may be a literal, a parameter, or an
// arithmetic expression over parameters.
type SkipOp struct {
	Src   Op
	Count ValueExpr
}

func (s *SkipOp) source() Op { return s.Src }

// DistinctOp is an idempotent SELECT DISTINCT marker.
type DistinctOp struct {
	Src Op
}

func (d *DistinctOp) source() Op { return d.Src }

// UnionOp combines two operation subtrees with UNION.
type UnionOp struct {
	Src   Op
	Other Op
}

func (u *UnionOp) source() Op { return u.Src }

// ReverseOp flips the direction of every ORDER BY clause established so
// far.
type ReverseOp struct {
	Src Op
}

func (r *ReverseOp) source() Op { return r.Src }

// TerminalKind enumerates the operators that convert a Queryable into a
// scalar, a row, or an array and dictate the final SQL shape.
type TerminalKind int

const (
	TermFirst TerminalKind = iota
	TermFirstOrDefault
	TermSingle
	TermSingleOrDefault
	TermLast
	TermLastOrDefault
	TermCount
	TermAny
	TermAll
	TermSum
	TermAverage
	TermMin
	TermMax
	TermContains
	TermToArray
)

// TerminalOp is the root of a compiled operation tree; exactly one
// terminal may appear, and it must be the root.
type TerminalOp struct {
	Src      Op
	Kind     TerminalKind
	Pred     BoolExpr  // First/Single/Last/Count/Any (optional), All (required)
	Selector ValueExpr // Sum/Average/Min/Max (required), Contains (the value expression)
}

func (t *TerminalOp) source() Op { return t.Src }
