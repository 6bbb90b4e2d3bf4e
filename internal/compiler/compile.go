package compiler

import (
	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/schema"
)

// Options configures a single top-level compile.
type Options struct {
	Dialect constants.Dialect
	Schema  *schema.Schema
	Params  map[string]any
	// Guard, when non-nil, runs the sql-guard defense-in-depth pass
	// against the emitted SQL before it is returned (see guard.go).
	Guard *Guard
}

// CompileSelect is the pure `toSql` entry point for a query built via
// the Queryable builder (spec.md §4.5): it flattens the operation tree,
// normalizes and auto-parameterizes every expression, and renders final
// SQL for the requested dialect. The returned parameter bag is the union
// of the caller's bag and every auto-generated slot.
func CompileSelect(q *Queryable, opts Options) (string, map[string]any, error) {
	if q.err != nil {
		return "", nil, q.err
	}

	dialect, err := dialectFor(opts.Dialect)
	if err != nil {
		return "", nil, err
	}

	pc, err := newParamCtx(opts.Params)
	if err != nil {
		return "", nil, err
	}

	e := &emitter{dialect: dialect, pc: pc, sch: opts.Schema}

	p, err := e.build(q.op)
	if err != nil {
		return "", nil, err
	}

	sql, err := e.render(p)
	if err != nil {
		return "", nil, err
	}

	if err := runGuard(opts.Guard, sql); err != nil {
		return "", nil, err
	}

	return sql, pc.finalBag(), nil
}
