package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lambdaquery/lq/constants"
)

// Dialect renders the SQL-syntax differences spec.md §4.5/§4.6 leave
// dialect-specific: identifier quoting, placeholder style, string
// concatenation, and the SQLite OFFSET-only sentinel.
type Dialect interface {
	Name() constants.Dialect
	// QuoteIdent quotes a single (non dot-qualified) identifier segment.
	QuoteIdent(name string) string
	// Placeholder renders a named parameter reference.
	Placeholder(name string) string
	// ConcatExpr renders a Concat node's two already-rendered operands.
	ConcatExpr(left, right string) string
	// RequiresOffsetSentinel reports whether an OFFSET-without-LIMIT
	// query needs a sentinel LIMIT emitted ahead of it (SQLite).
	RequiresOffsetSentinel() bool
}

// QuoteQualified splits a dotted column name (schema.table.col, or a
// nested member-access path a.b) and quotes each segment independently,
// per spec.md §4.5 "Schema-qualified names ... are split at the dot".
func QuoteQualified(d Dialect, name string) string {
	segments := strings.Split(name, constants.Dot)
	for i, seg := range segments {
		segments[i] = d.QuoteIdent(seg)
	}

	return strings.Join(segments, constants.Dot)
}

type postgresDialect struct{}

func (postgresDialect) Name() constants.Dialect { return constants.Postgres }
func (postgresDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
func (postgresDialect) Placeholder(name string) string       { return "$(" + name + ")" }
func (postgresDialect) ConcatExpr(left, right string) string { return left + " || " + right }
func (postgresDialect) RequiresOffsetSentinel() bool         { return false }

// mysqlDialect quotes identifiers with backticks instead of double
// quotes — this module's own dialect extension (pg/sqlite follow the
// ANSI double-quote convention; MySQL's default sql_mode does not
// accept double-quoted identifiers).
type mysqlDialect struct{}

func (mysqlDialect) Name() constants.Dialect { return constants.MySQL }
func (mysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
func (mysqlDialect) Placeholder(name string) string       { return "$(" + name + ")" }
func (mysqlDialect) ConcatExpr(left, right string) string { return fmt.Sprintf("CONCAT(%s, %s)", left, right) }
func (mysqlDialect) RequiresOffsetSentinel() bool         { return false }

type sqliteDialect struct{}

func (sqliteDialect) Name() constants.Dialect { return constants.SQLite }
func (sqliteDialect) QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
func (sqliteDialect) Placeholder(name string) string       { return "@" + name }
func (sqliteDialect) ConcatExpr(left, right string) string { return left + " || " + right }
func (sqliteDialect) RequiresOffsetSentinel() bool         { return true }

// dialectFor resolves a Dialect implementation by name.
func dialectFor(name constants.Dialect) (Dialect, error) {
	switch name {
	case constants.Postgres:
		return postgresDialect{}, nil
	case constants.MySQL:
		return mysqlDialect{}, nil
	case constants.SQLite:
		return sqliteDialect{}, nil
	default:
		return nil, &UnsupportedConstruct{Construct: "dialect", Detail: strconv.Quote(string(name))}
	}
}
