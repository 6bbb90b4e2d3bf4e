package compiler

import (
	"fmt"
	"reflect"
	"strings"
)

// Undefined is the sentinel for an INSERT column that was never bound —
// distinct from NullValue, it is skipped entirely rather than rendered
// as NULL (spec.md invariant 10). The public query façade re-exports
// this as the value callers pass for "no value supplied".
type Undefined struct{}

func (Undefined) isValueExpr() {}

// InsertField is one column binding of an Insertable, in caller
// insertion order.
type InsertField struct {
	Column string
	Value  ValueExpr
}

// Insertable is the operation payload of a defineInsert chain.
type Insertable struct {
	Table     string
	Fields    []InsertField
	Returning *SelectOp // Kind/Value/Fields reused verbatim; Src is unused
}

// Updatable is the operation payload of a defineUpdate chain.
type Updatable struct {
	Table        string
	Fields       []InsertField
	Where        BoolExpr
	AllowNoWhere bool
}

// Deletable is the operation payload of a defineDelete chain.
type Deletable struct {
	Table        string
	Where        BoolExpr
	AllowNoWhere bool
}

// CompileInsert renders INSERT INTO "t" (cols...) VALUES (placeholders...)
// [RETURNING ...]. Columns bound to Undefined are skipped entirely;
// columns bound to NullValue render the literal NULL token (spec.md §4.6,
// invariant 10).
func CompileInsert(ins *Insertable, opts Options) (string, map[string]any, error) {
	dialect, err := dialectFor(opts.Dialect)
	if err != nil {
		return "", nil, err
	}

	pc, err := newParamCtx(opts.Params)
	if err != nil {
		return "", nil, err
	}

	e := &emitter{dialect: dialect, pc: pc, sch: opts.Schema}

	var (
		cols   []string
		values []string
	)

	for _, f := range ins.Fields {
		if _, skip := f.Value.(Undefined); skip {
			continue
		}

		f.Value = e.resolveNullableField(f.Value)

		if err := e.coerceFieldValue(ins.Table, f); err != nil {
			return "", nil, err
		}

		rendered, err := e.paramValue(f.Value)
		if err != nil {
			return "", nil, err
		}

		sql, err := e.renderValue(rendered)
		if err != nil {
			return "", nil, err
		}

		cols = append(cols, dialect.QuoteIdent(f.Column))
		values = append(values, sql)
	}

	if len(cols) == 0 {
		return "", nil, &SemanticViolation{
			Rule:   "insert with no bound values",
			Detail: fmt.Sprintf("every value bound for %q resolved to undefined", ins.Table),
		}
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		QuoteQualified(dialect, ins.Table),
		strings.Join(cols, ", "),
		strings.Join(values, ", "),
	)

	if ins.Returning != nil {
		returning, err := e.renderReturning(ins.Returning)
		if err != nil {
			return "", nil, err
		}

		sql += " RETURNING " + returning
	}

	if err := runGuard(opts.Guard, sql); err != nil {
		return "", nil, err
	}

	return sql, pc.finalBag(), nil
}

func (e *emitter) renderReturning(s *SelectOp) (string, error) {
	switch s.Kind {
	case ProjectValue:
		if col, ok := s.Value.(*Column); ok && col.Name == "*" {
			return "*", nil
		}

		return e.renderValue(s.Value)
	case ProjectObject:
		fields, err := e.prepareFields(s.Fields)
		if err != nil {
			return "", err
		}

		parts := make([]string, len(fields))

		for i, f := range fields {
			rendered, err := e.renderValue(f.Expr)
			if err != nil {
				return "", err
			}

			parts[i] = rendered + " AS " + e.dialect.QuoteIdent(f.Alias)
		}

		return strings.Join(parts, ", "), nil
	default:
		return "*", nil
	}
}

// CompileUpdate renders UPDATE "t" SET "c" = ... [, ...] WHERE ...
// (spec.md §4.6). Missing WHERE without AllowNoWhere is a
// SemanticViolation (invariant 9's update-side counterpart).
func CompileUpdate(upd *Updatable, opts Options) (string, map[string]any, error) {
	dialect, err := dialectFor(opts.Dialect)
	if err != nil {
		return "", nil, err
	}

	if upd.Where == nil && !upd.AllowNoWhere {
		return "", nil, &SemanticViolation{
			Rule:   "update without where",
			Detail: fmt.Sprintf("update on %q has no WHERE clause and did not opt into AllowNoWhere", upd.Table),
		}
	}

	pc, err := newParamCtx(opts.Params)
	if err != nil {
		return "", nil, err
	}

	e := &emitter{dialect: dialect, pc: pc, sch: opts.Schema}

	var assignments []string

	for _, f := range upd.Fields {
		if _, skip := f.Value.(Undefined); skip {
			continue
		}

		f.Value = e.resolveNullableField(f.Value)

		if err := e.coerceFieldValue(upd.Table, f); err != nil {
			return "", nil, err
		}

		rendered, err := e.paramValue(f.Value)
		if err != nil {
			return "", nil, err
		}

		sql, err := e.renderValue(rendered)
		if err != nil {
			return "", nil, err
		}

		assignments = append(assignments, fmt.Sprintf("%s = %s", dialect.QuoteIdent(f.Column), sql))
	}

	if len(assignments) == 0 {
		return "", nil, &SemanticViolation{
			Rule:   "update with no bound values",
			Detail: fmt.Sprintf("every value bound for %q resolved to undefined", upd.Table),
		}
	}

	sql := fmt.Sprintf("UPDATE %s SET %s", QuoteQualified(dialect, upd.Table), strings.Join(assignments, ", "))

	if upd.Where != nil {
		prepared, err := e.prepareBool(upd.Where)
		if err != nil {
			return "", nil, err
		}

		clause, err := e.renderBool(prepared)
		if err != nil {
			return "", nil, err
		}

		sql += " WHERE " + clause
	}

	if err := runGuard(opts.Guard, sql); err != nil {
		return "", nil, err
	}

	return sql, pc.finalBag(), nil
}

// CompileDelete renders DELETE FROM "t" [WHERE ...]. Missing WHERE
// without AllowNoWhere is rejected (invariant 9).
func CompileDelete(del *Deletable, opts Options) (string, map[string]any, error) {
	dialect, err := dialectFor(opts.Dialect)
	if err != nil {
		return "", nil, err
	}

	if del.Where == nil && !del.AllowNoWhere {
		return "", nil, &SemanticViolation{
			Rule:   "delete without where",
			Detail: fmt.Sprintf("delete on %q has no WHERE clause and did not opt into AllowFullTableDelete", del.Table),
		}
	}

	pc, err := newParamCtx(opts.Params)
	if err != nil {
		return "", nil, err
	}

	e := &emitter{dialect: dialect, pc: pc, sch: opts.Schema}

	sql := "DELETE FROM " + QuoteQualified(dialect, del.Table)

	if del.Where != nil {
		prepared, err := e.prepareBool(del.Where)
		if err != nil {
			return "", nil, err
		}

		clause, err := e.renderBool(prepared)
		if err != nil {
			return "", nil, err
		}

		sql += " WHERE " + clause
	}

	if err := runGuard(opts.Guard, sql); err != nil {
		return "", nil, err
	}

	return sql, pc.finalBag(), nil
}

// coerceFieldValue rewrites a field bound directly to a caller parameter
// (no property path) in place toward the column's declared schema kind,
// using spf13/cast's flexible conversion (spec.md §1 "schema-typed
// parameter coercion"). A no-op with no schema, no parameter binding, or
// no declared column.
func (e *emitter) coerceFieldValue(table string, f InsertField) error {
	if e.sch == nil {
		return nil
	}

	param, ok := f.Value.(*Parameter)
	if !ok || param.Property != "" {
		return nil
	}

	kind, ok := e.sch.ColumnKind(table, f.Column)
	if !ok {
		return nil
	}

	raw, ok := e.pc.caller[param.Name]
	if !ok {
		return nil
	}

	coerced, err := coerce(raw, kind)
	if err != nil {
		return &SemanticViolation{
			Rule:   "parameter value does not match column type",
			Detail: fmt.Sprintf("%q bound for column %q: %v", param.Name, f.Column, err),
		}
	}

	e.pc.caller[param.Name] = coerced

	return nil
}

// resolveNullableField swaps a field bound directly to a caller
// parameter (no property path) for an explicit NullValue node when the
// caller's bound value is a guregu/null-shaped struct — null.String,
// null.Int, the generic null.Value[T], and friends — left at its
// invalid/unset zero value. Left alone, coerceFieldValue would try to
// cast an empty struct to the column's declared kind; callers binding
// a null.Value with Valid: false mean the same thing as binding Go's
// nil, i.e. render NULL (spec.md invariant 10's NULL side of the
// Undefined/NULL split). A no-op for any other value shape.
func (e *emitter) resolveNullableField(value ValueExpr) ValueExpr {
	param, ok := value.(*Parameter)
	if !ok || param.Property != "" {
		return value
	}

	raw, ok := e.pc.caller[param.Name]
	if !ok || !isNullableZero(raw) {
		return value
	}

	return &NullValue{}
}

// isNullableZero reports whether v is shaped like a guregu/null value
// type bound to its invalid state: any struct exposing a boolean
// "Valid" field set to false. guregu/null's specific types (String,
// Int, Int16, Int32, Float, Byte), its generic Value[T] and this
// module's null.Decimal all share this shape, so matching on the field
// avoids depending on any one of their concrete layouts.
func isNullableZero(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Struct {
		return false
	}

	field := rv.FieldByName("Valid")
	if !field.IsValid() || field.Kind() != reflect.Bool {
		return false
	}

	return !field.Bool()
}
