// Package compiler implements the operation-tree and expression-tree
// intermediate representation, auto-parameterization, and per-dialect SQL
// emission at the heart of lq.
package compiler

// ValueExpr is any expression tree node that produces a scalar. The
// value/boolean split is enforced by the type system: a Where body is
// typed BoolExpr, a Select column is typed ValueExpr.
type ValueExpr interface {
	isValueExpr()
}

// BoolExpr is any expression tree node that produces a truth value.
type BoolExpr interface {
	isBoolExpr()
}

// ArithOp is an arithmetic operator.
type ArithOp string

const (
	ArithAdd ArithOp = "+"
	ArithSub ArithOp = "-"
	ArithMul ArithOp = "*"
	ArithDiv ArithOp = "/"
	ArithMod ArithOp = "%"
)

// CompareOp is a comparison operator.
type CompareOp string

const (
	CompareEq  CompareOp = "=="
	CompareNeq CompareOp = "!="
	CompareGt  CompareOp = ">"
	CompareGte CompareOp = ">="
	CompareLt  CompareOp = "<"
	CompareLte CompareOp = "<="
)

// LogicalOp is a boolean connective.
type LogicalOp string

const (
	LogicalAnd LogicalOp = "and"
	LogicalOr  LogicalOp = "or"
)

// StringMethod is one of the allowlisted value-producing string helpers.
type StringMethod string

const (
	StringToLower StringMethod = "toLowerCase"
	StringToUpper StringMethod = "toUpperCase"
	StringTrim    StringMethod = "trim"
)

// BoolMethod is one of the allowlisted predicate-producing string helpers.
type BoolMethod string

const (
	BoolStartsWith BoolMethod = "startsWith"
	BoolEndsWith   BoolMethod = "endsWith"
	BoolContains   BoolMethod = "contains"
)

// WindowFunc is one of the supported ranking window functions.
type WindowFunc string

const (
	WindowRowNumber WindowFunc = "rowNumber"
	WindowRank      WindowFunc = "rank"
	WindowDenseRank WindowFunc = "denseRank"
)

// Direction is an ordering direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// OrderKey pairs a key expression with its direction, used both by the
// operation tree's OrderOp/ThenOp chain and by a WindowFunction's own
// ORDER BY clause.
type OrderKey struct {
	Key       ValueExpr
	Direction Direction
}

// Column is a reference to a column on the enclosing table parameter.
// Dotted names (produced by nested member access, e.g. x.a.b) are stored
// verbatim; the emitter quotes each dot-separated segment independently.
type Column struct {
	Name string
}

func (Column) isValueExpr() {}

// Constant is a literal value discovered while building an expression
// tree. Every Constant is replaced by a Parameter during auto-parameterization
// unless normalize.go has already lowered it to IsNull.
type Constant struct {
	Value any
}

func (Constant) isValueExpr() {}

// Parameter is a reference to a caller-supplied or auto-generated named
// parameter slot. Property, when non-empty, is a single-level property
// path into the named parameter's bound value (e.g. p.min).
type Parameter struct {
	Name     string
	Property string
}

func (Parameter) isValueExpr() {}

// NullValue is an explicit NULL literal used where a value position
// (not an equality comparison) requires the literal NULL token, e.g. an
// INSERT column explicitly bound to null.
type NullValue struct{}

func (NullValue) isValueExpr() {}

// Arithmetic is a binary arithmetic expression.
type Arithmetic struct {
	Op          ArithOp
	Left, Right ValueExpr
}

func (Arithmetic) isValueExpr() {}

// Concat is string concatenation, promoted from Arithmetic{+} by
// normalize.go's string-promotion rule.
type Concat struct {
	Left, Right ValueExpr
}

func (Concat) isValueExpr() {}

// Coalesce renders COALESCE(value, default).
type Coalesce struct {
	Value, Default ValueExpr
}

func (Coalesce) isValueExpr() {}

// StringMethodCall is a value-producing string helper call.
type StringMethodCall struct {
	Object ValueExpr
	Method StringMethod
}

func (StringMethodCall) isValueExpr() {}

// WindowFunction is a ranking window function with its partition and
// ordering keys.
type WindowFunction struct {
	Func        WindowFunc
	PartitionBy []ValueExpr
	OrderBy     []OrderKey
}

func (WindowFunction) isValueExpr() {}

// Comparison is a binary comparison; == / != against a null operand is
// lowered to IsNull by normalize.go's lowerNullComparison, which the
// emitter applies before rendering.
type Comparison struct {
	Op          CompareOp
	Left, Right ValueExpr
}

func (Comparison) isBoolExpr() {}

// Logical is a binary boolean connective, always rendered fully
// parenthesized.
type Logical struct {
	Op          LogicalOp
	Left, Right BoolExpr
}

func (Logical) isBoolExpr() {}

// Not negates a boolean expression.
type Not struct {
	Expr BoolExpr
}

func (Not) isBoolExpr() {}

// BooleanColumn is a bare boolean-column reference used directly as a
// predicate (e.g. the entire Where body is u => u.isActive).
type BooleanColumn struct {
	Name string
}

func (BooleanColumn) isBoolExpr() {}

// BooleanConstant is a literal boolean predicate. It is never
// auto-parameterized: it renders the literal TRUE/FALSE token, used by
// the empty-IN lowering rule and by a bare true/false Where body.
type BooleanConstant struct {
	Value bool
}

func (BooleanConstant) isBoolExpr() {}

// BooleanParam is a query-parameter reference used directly as a
// predicate.
type BooleanParam struct {
	Name     string
	Property string
}

func (BooleanParam) isBoolExpr() {}

// BooleanMethodCall is a predicate-producing string helper call.
type BooleanMethodCall struct {
	Object ValueExpr
	Method BoolMethod
	Arg    ValueExpr
}

func (BooleanMethodCall) isBoolExpr() {}

// In renders a membership test. Exactly one of List or ListParam is
// set: List for a literal array lowered element-by-element, ListParam
// for a caller-supplied parameter array expanded into name_0, name_1, …
// placeholders at emit time (the original array is retained in the
// final bag under ListParam unexpanded).
type In struct {
	Value     ValueExpr
	List      []ValueExpr
	ListParam string
	Negated   bool
}

func (In) isBoolExpr() {}

// IsNull renders IS [NOT] NULL, materialized from == / != against a
// null literal.
type IsNull struct {
	Value   ValueExpr
	Negated bool
}

func (IsNull) isBoolExpr() {}

// JoinSide disambiguates which side of a Join a JoinColumn names, since
// the outer/inner table aliases (t0, t1, …) are only assigned during
// emission, once the full chain's table order is known.
type JoinSide int

const (
	OuterSide JoinSide = iota
	InnerSide
)

// JoinColumn is a column reference qualified by join side, used only
// within a JoinOp's Result projection fields.
type JoinColumn struct {
	Side JoinSide
	Name string
}

func (JoinColumn) isValueExpr() {}
