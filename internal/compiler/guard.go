package compiler

import (
	"github.com/lambdaquery/lq/internal/database/sqlguard"
	"github.com/lambdaquery/lq/log"
)

// Guard runs the same DROP/TRUNCATE/DELETE-without-WHERE rule set the
// database layer uses against live traffic, but against the SQL this
// compiler just emitted — a defense-in-depth check, not a substitute for
// the invariants CompileDelete/CompileUpdate already enforce (spec.md §7
// "no recovery is attempted"; this never alters or retries, it only
// returns an additional SemanticViolation).
//
// Opt in by setting Options.Guard; a nil Guard (the default) skips the
// pass entirely, matching the compiler's pure-function contract.
type Guard = sqlguard.Guard

// NewGuard constructs a Guard with the database layer's default rule
// set (no DROP, no TRUNCATE, no DELETE/UPDATE without WHERE).
func NewGuard(logger log.Logger) *Guard {
	return sqlguard.NewGuard(logger)
}

// runGuard checks emitted SQL against g, when non-nil, wrapping a
// detected violation as a SemanticViolation so callers only ever observe
// the compiler's own error taxonomy (spec.md §7).
func runGuard(g *Guard, sql string) error {
	if g == nil {
		return nil
	}

	if err := g.Check(sql); err != nil {
		return &SemanticViolation{
			Rule:   "sql guard violation",
			Detail: err.Error(),
		}
	}

	return nil
}
