package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/log"
	"github.com/lambdaquery/lq/schema"
)

// nopLogger discards everything; the guard's Check logs at Debug on a
// parse failure and at Warn on a violation, so tests need a real Logger,
// not a nil interface value.
type nopLogger struct{}

func (nopLogger) Named(string) log.Logger          { return nopLogger{} }
func (nopLogger) WithCallerSkip(int) log.Logger     { return nopLogger{} }
func (nopLogger) Enabled(log.Level) bool            { return false }
func (nopLogger) Sync()                             {}
func (nopLogger) Debug(string)                      {}
func (nopLogger) Debugf(string, ...any)              {}
func (nopLogger) Info(string)                       {}
func (nopLogger) Infof(string, ...any)               {}
func (nopLogger) Warn(string)                       {}
func (nopLogger) Warnf(string, ...any)               {}
func (nopLogger) Error(string)                      {}
func (nopLogger) Errorf(string, ...any)              {}
func (nopLogger) Panic(string)                      {}
func (nopLogger) Panicf(string, ...any)              {}

func TestCompileSelect_SimpleWhere(t *testing.T) {
	q := From("users").Where(Eq(Col("age"), Val(18)))

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "age" = $(__p1)`, sql)
	assert.Equal(t, map[string]any{"__p1": 18}, params)
}

func TestCompileSelect_DialectPlaceholdersAndQuoting(t *testing.T) {
	q := From("users").Where(Eq(Col("age"), Val(18)))

	tests := []struct {
		dialect constants.Dialect
		want    string
	}{
		{constants.Postgres, `SELECT * FROM "users" WHERE "age" = $(__p1)`},
		{constants.MySQL, "SELECT * FROM `users` WHERE `age` = $(__p1)"},
		{constants.SQLite, `SELECT * FROM "users" WHERE "age" = @__p1`},
	}

	for _, tt := range tests {
		sql, _, err := CompileSelect(q, Options{Dialect: tt.dialect})
		require.NoError(t, err)
		assert.Equal(t, tt.want, sql)
	}
}

func TestCompileSelect_AndOrPredicates(t *testing.T) {
	q := From("users").Where(
		And(
			Gte(Col("age"), Val(18)),
			Or(Eq(Col("status"), Val("active")), Eq(Col("status"), Val("pending"))),
		),
	)

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT * FROM "users" WHERE ("age" >= $(__p1) AND ("status" = $(__p2) OR "status" = $(__p3)))`,
		sql,
	)
	assert.Equal(t, map[string]any{"__p1": 18, "__p2": "active", "__p3": "pending"}, params)
}

func TestCompileSelect_ChainedWhereIsConjunctive(t *testing.T) {
	q := From("users").
		Where(Eq(Col("status"), Val("active"))).
		Where(Gte(Col("age"), Val(18)))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, `"status" = $(__p1)`)
	assert.Contains(t, sql, `"age" >= $(__p2)`)
	assert.Contains(t, sql, " AND ")
}

func TestCompileSelect_NullEqualityLowersToIsNull(t *testing.T) {
	q := From("users").Where(Eq(Col("deletedAt"), Null()))

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "deletedAt" IS NULL`, sql)
	assert.Empty(t, params)
}

func TestCompileSelect_NotNullEqualityLowersToIsNotNull(t *testing.T) {
	q := From("users").Where(Neq(Col("deletedAt"), Null()))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "deletedAt" IS NOT NULL`, sql)
}

func TestCompileSelect_EmptyInLowersToFalse(t *testing.T) {
	q := From("users").Where(InList(Col("status"), []ValueExpr{}...))

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE FALSE`, sql)
	assert.Empty(t, params)
}

func TestCompileSelect_BareEmptyInLowersToFalse(t *testing.T) {
	q := From("users").Where(InList(Col("status")))

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE FALSE`, sql)
	assert.Empty(t, params)
}

func TestCompileSelect_UnboundParameterIsSemanticViolation(t *testing.T) {
	q := From("users").Where(Gte(Col("age"), Param("minAge")))

	_, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.Error(t, err)

	var violation *SemanticViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "unbound query parameter", violation.Rule)
}

func TestCompileSelect_InListParameterizesEachElement(t *testing.T) {
	q := From("users").Where(InList(Col("status"), Val("open"), Val("closed")))

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "status" IN ($(__p1), $(__p2))`, sql)
	assert.Equal(t, map[string]any{"__p1": "open", "__p2": "closed"}, params)
}

func TestCompileSelect_BareBooleanColumn(t *testing.T) {
	q := From("users").Where(BoolCol("isActive"))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "isActive"`, sql)
}

func TestCompileSelect_NegatedPredicate(t *testing.T) {
	q := From("users").Where(Neg(BoolCol("isActive")))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE NOT ("isActive")`, sql)
}

func TestCompileSelect_StringConcatPromotion(t *testing.T) {
	q := From("users").Select(Add(Col("firstName"), Add(Val(" "), Col("lastName"))))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "firstName" || $(__p1) || "lastName" FROM "users"`, sql)
}

func TestCompileSelect_StringConcatPromotion_MySQLUsesConcatFunc(t *testing.T) {
	q := From("users").Select(Add(Col("firstName"), Col("lastName")))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.MySQL})
	require.NoError(t, err)
	assert.Equal(t, "SELECT CONCAT(`firstName`, `lastName`) FROM `users`", sql)
}

func TestCompileSelect_NumericArithmeticNotPromoted(t *testing.T) {
	q := From("orders").Select(Add(Col("quantity"), Val(1)))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT ("quantity" + $(__p1)) FROM "orders"`, sql)
}

func TestCompileSelect_SelectObjectPreservesFieldOrder(t *testing.T) {
	q := From("users").SelectObject(
		SelectField{Alias: "id", Expr: Col("id")},
		SelectField{Alias: "fullName", Expr: Col("name")},
	)

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" AS "id", "name" AS "fullName" FROM "users"`, sql)
}

func TestCompileSelect_OrderByThenBy(t *testing.T) {
	q := From("users").
		OrderBy(Col("age")).
		ThenByDescending(Col("name"))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" ORDER BY "age" ASC, "name" DESC`, sql)
}

func TestCompileSelect_ThenByWithoutOrderByIsSemanticViolation(t *testing.T) {
	q := From("users").ThenBy(Col("age"))

	_, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.Error(t, err)

	var violation *SemanticViolation
	require.ErrorAs(t, err, &violation)
}

func TestCompileSelect_TakeAndSkip(t *testing.T) {
	// Skip is called first, so its literal is allocated __p1; Take's
	// literal, allocated second, becomes __p2 — allocation order follows
	// call order, not clause order in the rendered SQL.
	q := From("users").Skip(Val(20)).Take(Val(10))

	sql, params, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" LIMIT $(__p2) OFFSET $(__p1)`, sql)
	assert.Equal(t, map[string]any{"__p1": 20, "__p2": 10}, params)
}

func TestCompileSelect_SkipOnlySQLiteNeedsOffsetSentinel(t *testing.T) {
	q := From("users").Skip(Val(20))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.SQLite})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" LIMIT -1 OFFSET @__p1`, sql)
}

func TestCompileSelect_SkipOnlyPostgresNoSentinel(t *testing.T) {
	q := From("users").Skip(Val(20))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" OFFSET $(__p1)`, sql)
}

func TestCompileSelect_DistinctUnion(t *testing.T) {
	left := From("users").OrderBy(Col("age")).Distinct()
	right := From("archivedUsers")

	sql, _, err := CompileSelect(left.Union(right), Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "SELECT DISTINCT *")
	assert.Contains(t, sql, " UNION ")
}

func TestCompileSelect_ReverseFlipsOrderDirection(t *testing.T) {
	q := From("users").OrderBy(Col("age")).Reverse()

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" ORDER BY "age" DESC`, sql)
}

func TestCompileSelect_GroupByAggregate(t *testing.T) {
	q := From("orders").GroupBy("customerId").Select(Col("customerId"))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, `GROUP BY "customerId"`)
}

func TestCompileSelect_Join(t *testing.T) {
	inner := From("orders")
	outer := From("users").Join(inner, "id", "userId",
		SelectField{Alias: "name", Expr: OuterCol("name")},
		SelectField{Alias: "total", Expr: InnerCol("total")},
	)

	sql, _, err := CompileSelect(outer, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "INNER JOIN")
	assert.Contains(t, sql, `"t0"."id" = "t1"."userId"`)
}

func TestCompileSelect_WindowFunctions(t *testing.T) {
	q := From("employees").Select(
		RowNumber([]ValueExpr{Col("department")}, OrderKey{Key: Col("salary"), Direction: Desc}),
	)

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "ROW_NUMBER() OVER (PARTITION BY")
	assert.Contains(t, sql, `ORDER BY "salary" DESC`)
}

func TestCompileSelect_TerminalFirst(t *testing.T) {
	q := From("users").Where(Eq(Col("id"), Val(1))).First()

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 1")
}

func TestCompileSelect_TerminalSingleUsesLimitTwo(t *testing.T) {
	q := From("users").Single()

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 2")
}

func TestCompileSelect_TerminalCount(t *testing.T) {
	q := From("users").Count()

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "COUNT(")
}

func TestCompileSelect_TerminalAnyRendersExists(t *testing.T) {
	q := From("users").Any(Eq(Col("status"), Val("active")))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "EXISTS")
	assert.NotContains(t, sql, "NOT EXISTS")
}

func TestCompileSelect_TerminalAllRendersNotExists(t *testing.T) {
	q := From("users").All(Eq(Col("status"), Val("active")))

	sql, _, err := CompileSelect(q, Options{Dialect: constants.Postgres})
	require.NoError(t, err)
	assert.Contains(t, sql, "NOT EXISTS")
}

func TestCompileSelect_TerminalAggregates(t *testing.T) {
	tests := []struct {
		name string
		q    *Queryable
		want string
	}{
		{"sum", From("orders").Sum(Col("total")), "SUM("},
		{"average", From("orders").Average(Col("total")), "AVG("},
		{"min", From("orders").Min(Col("total")), "MIN("},
		{"max", From("orders").Max(Col("total")), "MAX("},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := CompileSelect(tt.q, Options{Dialect: constants.Postgres})
			require.NoError(t, err)
			assert.Contains(t, sql, tt.want)
		})
	}
}

func TestCompileSelect_UnknownDialectIsUnsupportedConstruct(t *testing.T) {
	q := From("users")

	_, _, err := CompileSelect(q, Options{Dialect: constants.Dialect("oracle")})
	require.Error(t, err)

	var unsupported *UnsupportedConstruct
	require.ErrorAs(t, err, &unsupported)
}

func TestCompileSelect_CallerParameterReused(t *testing.T) {
	q := From("users").Where(Gte(Col("age"), Param("minAge")))

	sql, params, err := CompileSelect(q, Options{
		Dialect: constants.Postgres,
		Params:  map[string]any{"minAge": 21},
	})
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "users" WHERE "age" >= $(minAge)`, sql)
	assert.Equal(t, map[string]any{"minAge": 21}, params)
}

func TestCompileSelect_ReservedParamPrefixRejected(t *testing.T) {
	q := From("users")

	_, _, err := CompileSelect(q, Options{
		Dialect: constants.Postgres,
		Params:  map[string]any{"__p1": 1},
	})
	require.Error(t, err)
}

func TestCompileSelect_GuardAllowsWellFormedSQL(t *testing.T) {
	// The typed builder can never itself produce a DROP/TRUNCATE
	// statement or an unconditional DELETE (invariant 9 already rejects
	// that at CompileDelete), so the guard's pass over a SELECT it emits
	// is pure defense-in-depth: it must never reject sound SQL.
	q := From("users").Where(Eq(Col("id"), Val(1)))

	guard := NewGuard(nopLogger{})

	_, _, err := CompileSelect(q, Options{Dialect: constants.Postgres, Guard: guard})
	require.NoError(t, err)
}

func TestGuard_RejectsDropTable(t *testing.T) {
	guard := NewGuard(nopLogger{})

	err := guard.Check("DROP TABLE users")
	require.Error(t, err)
}

func TestCompileSelect_UnknownColumnAgainstSchemaIsSemanticViolation(t *testing.T) {
	sch := schema.NewSchema(schema.TableDef{
		Name: "users",
		Columns: []schema.ColumnDef{
			{Name: "age", Kind: schema.KindNumber},
		},
	})

	q := From("users").Where(Eq(Col("aeg"), Val(18)))

	_, _, err := CompileSelect(q, Options{Dialect: constants.Postgres, Schema: sch})
	require.Error(t, err)

	var violation *SemanticViolation
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "age", violation.Suggestion)
}

func TestCompileSelect_KnownColumnAgainstSchemaPasses(t *testing.T) {
	sch := schema.NewSchema(schema.TableDef{
		Name: "users",
		Columns: []schema.ColumnDef{
			{Name: "age", Kind: schema.KindNumber},
		},
	})

	q := From("users").Where(Eq(Col("age"), Val(18)))

	_, _, err := CompileSelect(q, Options{Dialect: constants.Postgres, Schema: sch})
	require.NoError(t, err)
}

func TestCompileSelect_UndeclaredTableSkipsColumnValidation(t *testing.T) {
	sch := schema.NewSchema(schema.TableDef{
		Name: "users",
		Columns: []schema.ColumnDef{
			{Name: "age", Kind: schema.KindNumber},
		},
	})

	q := From("orders").Where(Eq(Col("total"), Val(100)))

	_, _, err := CompileSelect(q, Options{Dialect: constants.Postgres, Schema: sch})
	require.NoError(t, err)
}
