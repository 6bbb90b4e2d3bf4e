// Package query is the public surface of the query compiler: a thin
// re-export of internal/compiler's types plus the four statement
// constructors (defineSelect/defineInsert/defineUpdate/defineDelete of
// spec.md §6) and the ToSQL entry point.
package query

import (
	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/internal/compiler"
	"github.com/lambdaquery/lq/internal/compiler/lang"
	"github.com/lambdaquery/lq/log"
	"github.com/lambdaquery/lq/schema"
)

type (
	// Queryable is the fluent SELECT builder surface.
	Queryable = compiler.Queryable
	// ValueExpr and BoolExpr are the two expression-tree kinds.
	ValueExpr = compiler.ValueExpr
	BoolExpr  = compiler.BoolExpr
	// SelectField is one projection/RETURNING field.
	SelectField = compiler.SelectField
	OrderKey    = compiler.OrderKey

	Schema    = schema.Schema
	TableDef  = schema.TableDef
	ColumnDef = schema.ColumnDef
	Kind      = schema.Kind

	ParseFailure         = compiler.ParseFailure
	UnsupportedConstruct = compiler.UnsupportedConstruct
	SemanticViolation    = compiler.SemanticViolation

	Dialect = constants.Dialect
)

const (
	Postgres = constants.Postgres
	MySQL    = constants.MySQL
	SQLite   = constants.SQLite

	KindString  = schema.KindString
	KindNumber  = schema.KindNumber
	KindBool    = schema.KindBool
	KindTime    = schema.KindTime
	KindJSON    = schema.KindJSON
	KindDecimal = schema.KindDecimal
)

var (
	ErrParseFailure         = compiler.ErrParseFailure
	ErrUnsupportedConstruct = compiler.ErrUnsupportedConstruct
	ErrSemanticViolation    = compiler.ErrSemanticViolation
)

// Undefined marks an INSERT/UPDATE column as "no value supplied": the
// column is skipped entirely rather than bound to NULL (spec.md
// invariant 10). Use Null() for an explicit NULL.
func Undefined() ValueExpr { return compiler.Undefined{} }

// From starts a new query rooted at table (spec.md §4.1 builder
// surface's entry point, reached here without a schema/lambda-parsing
// stage — see SPEC_FULL.md §0).
func From(table string) *Queryable { return compiler.From(table) }

// NewSchema declares the table shapes builder calls may be checked
// against.
func NewSchema(tables ...TableDef) *Schema { return schema.NewSchema(tables...) }

// NewSchemaValidated is NewSchema with struct-tag validation of every
// TableDef/ColumnDef up front, so a malformed declaration (missing
// name, empty column list, unrecognized Kind) is rejected at
// construction time rather than surfacing later as a confusing
// "unknown column" error mid-compile.
func NewSchemaValidated(tables ...TableDef) (*Schema, error) { return schema.NewSchemaValidated(tables...) }

// Expression-builder free functions, re-exported so callers never
// import internal/compiler directly.
var (
	Col         = compiler.Col
	OuterCol    = compiler.OuterCol
	InnerCol    = compiler.InnerCol
	BoolCol     = compiler.BoolCol
	Val         = compiler.Val
	Null        = compiler.Null
	Param       = compiler.Param
	ParamProp   = compiler.ParamProperty
	Eq          = compiler.Eq
	Neq         = compiler.Neq
	Gt          = compiler.Gt
	Gte         = compiler.Gte
	Lt          = compiler.Lt
	Lte         = compiler.Lte
	And         = compiler.And
	Or          = compiler.Or
	Not         = compiler.Neg
	Add         = compiler.Add
	Sub         = compiler.Sub
	Mul         = compiler.Mul
	Div         = compiler.Div
	Mod         = compiler.Mod
	Coalesce    = compiler.CoalesceOf
	IsNull      = compiler.IsNullOf
	IsNotNull   = compiler.IsNotNullOf
	In          = compiler.InList
	InParam     = compiler.InParam
	StartsWith  = compiler.StartsWith
	EndsWith    = compiler.EndsWith
	Contains    = compiler.ContainsStr
	Lower       = compiler.ToLower
	Upper       = compiler.ToUpper
	Trim        = compiler.Trim
	RowNumber   = compiler.RowNumber
	Rank        = compiler.Rank
	DenseRank   = compiler.DenseRank
)

// Raw compiles predicate source text under the restricted grammar of
// spec.md §4.2 (comparisons, &&/||/!, parentheses, literals, in/includes,
// startsWith/endsWith/contains) into a BoolExpr usable anywhere a builder
// closure's return value would be, e.g. q.Where(query.Raw("age >= 18 &&
// name == \"John\"")). queryParams names any identifiers that should
// resolve against declared query parameters rather than columns.
func Raw(src string, queryParams ...string) (BoolExpr, error) {
	return lang.Compile(src, queryParams...)
}

// Options configures dialect, schema, and the caller's parameter bag for
// a single ToSQL/compile call.
type Options = compiler.Options

// Guard is the optional sql-guard defense-in-depth pass, set on
// Options.Guard to check emitted SQL before it is returned.
type Guard = compiler.Guard

// NewGuard re-exports compiler.NewGuard so callers never import
// internal/compiler directly.
func NewGuard(logger log.Logger) *Guard { return compiler.NewGuard(logger) }

// Cache is the optional concurrent compile cache of spec.md §5.
type Cache = compiler.Cache

// NewCache constructs an empty compile cache.
func NewCache() *Cache { return compiler.NewCache() }

// ToSQL compiles a Queryable built via the fluent surface above into
// {sql, params} for the requested dialect (spec.md §6 toSql). It is a
// pure function: no I/O, no driver interaction (spec.md §5).
func ToSQL(q *Queryable, opts Options) (string, map[string]any, error) {
	return compiler.CompileSelect(q, opts)
}

// Insert, Update, and Delete are the sibling builders of spec.md §4.6.
type (
	Insert = compiler.Insertable
	Update = compiler.Updatable
	Delete = compiler.Deletable
)
type InsertField = compiler.InsertField

// ReturningValue builds an Insert.Returning projection of a single
// value expression, e.g. ReturningValue(Col("id")) for RETURNING "id".
func ReturningValue(expr ValueExpr) *compiler.SelectOp {
	return &compiler.SelectOp{Kind: compiler.ProjectValue, Value: expr}
}

// ReturningObject builds an Insert.Returning projection of named
// fields, e.g. RETURNING "id" AS "id", "name" AS "name".
func ReturningObject(fields ...SelectField) *compiler.SelectOp {
	return &compiler.SelectOp{Kind: compiler.ProjectObject, Fields: fields}
}

// ReturningAll builds RETURNING *.
func ReturningAll() *compiler.SelectOp {
	return &compiler.SelectOp{Kind: compiler.ProjectValue, Value: Col("*")}
}

// DefineInsert builds an INSERT statement over table, binding column ->
// value pairs in the given order (spec.md §6 defineInsert). Attach a
// RETURNING clause by setting the returned value's Returning field
// directly: query.Col("*") for the whole row via a single-value
// projection, or SelectField entries for an object projection.
func DefineInsert(table string, fields ...InsertField) *Insert {
	return &Insert{Table: table, Fields: fields}
}

// DefineUpdate builds an UPDATE statement; set the returned value's
// Where field, or AllowNoWhere for an explicit unconditional update
// (invariant 9's update-side counterpart).
func DefineUpdate(table string, fields ...InsertField) *Update {
	return &Update{Table: table, Fields: fields}
}

// DefineDelete builds a DELETE statement; set the returned value's Where
// field, or AllowNoWhere (exposed here as AllowFullTableDelete) for an
// explicit unconditional delete (invariant 9).
func DefineDelete(table string) *Delete {
	return &Delete{Table: table}
}

// AllowFullTableDelete opts a Delete into an unconditional DELETE with
// no WHERE clause.
func AllowFullTableDelete(d *Delete) *Delete {
	d.AllowNoWhere = true

	return d
}

func ToInsertSQL(ins *Insert, opts Options) (string, map[string]any, error) {
	return compiler.CompileInsert(ins, opts)
}

func ToUpdateSQL(upd *Update, opts Options) (string, map[string]any, error) {
	return compiler.CompileUpdate(upd, opts)
}

func ToDeleteSQL(del *Delete, opts Options) (string, map[string]any, error) {
	return compiler.CompileDelete(del, opts)
}
