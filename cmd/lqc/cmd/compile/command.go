// Package compile implements `lqc compile`, a thin CLI wrapper around
// query.ToSQL for trying a textual predicate against a table without
// writing a Go program.
package compile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/query"
)

var errBadParam = fmt.Errorf("param must be in name=value form")

// Command returns the `compile` cobra command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a textual predicate against a table to SQL",
		Long: `Compile parses a restricted boolean-expression predicate (the same grammar
Raw() accepts: comparisons, &&/||/!, parentheses, literals, in/includes,
startsWith/endsWith/contains) and renders the resulting SELECT statement
for the requested dialect.

Example:
  lqc compile --table users --where "age >= minAge && status != \"banned\"" \
    --param minAge --dialect postgres --value minAge=18 --take 10`,
		RunE: runCompile,
	}

	cmd.Flags().String("table", "", "table name the query is rooted at")
	cmd.Flags().String("where", "", "predicate source text, empty for an unfiltered SELECT")
	cmd.Flags().StringSlice("param", nil, "identifier(s) in --where that name query parameters rather than columns")
	cmd.Flags().StringSlice("value", nil, "name=value binding for a declared --param, repeatable")
	cmd.Flags().String("dialect", string(constants.Postgres), "target dialect: postgres, mysql, or sqlite")
	cmd.Flags().Int("take", 0, "LIMIT count, 0 for none")
	cmd.Flags().Int("skip", 0, "OFFSET count, 0 for none")

	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runCompile(cmd *cobra.Command, _ []string) error {
	table, _ := cmd.Flags().GetString("table")
	where, _ := cmd.Flags().GetString("where")
	params, _ := cmd.Flags().GetStringSlice("param")
	values, _ := cmd.Flags().GetStringSlice("value")
	dialect, _ := cmd.Flags().GetString("dialect")
	take, _ := cmd.Flags().GetInt("take")
	skip, _ := cmd.Flags().GetInt("skip")

	out := termenv.DefaultOutput()

	bindings, err := parseValues(values)
	if err != nil {
		fail(out, err)

		return err
	}

	q := query.From(table)

	if where != "" {
		pred, err := query.Raw(where, params...)
		if err != nil {
			fail(out, err)

			return err
		}

		q = q.Where(pred)
	}

	if take > 0 {
		q = q.Take(query.Val(take))
	}

	if skip > 0 {
		q = q.Skip(query.Val(skip))
	}

	sql, boundParams, err := query.ToSQL(q, query.Options{
		Dialect: constants.Dialect(dialect),
		Params:  bindings,
	})
	if err != nil {
		fail(out, err)

		return err
	}

	printSQL(out, sql, boundParams)

	return nil
}

func parseValues(values []string) (map[string]any, error) {
	bindings := make(map[string]any, len(values))

	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", errBadParam, v)
		}

		bindings[name] = value
	}

	return bindings, nil
}

func printSQL(out *termenv.Output, sql string, params map[string]any) {
	fmt.Println(out.String(sql).Foreground(termenv.ANSICyan).Bold())

	if len(params) == 0 {
		return
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		label := out.String(fmt.Sprintf("  %s", name)).Foreground(termenv.ANSIBrightBlack)
		fmt.Printf("%s = %v\n", label, params[name])
	}
}

func fail(out *termenv.Output, err error) {
	fmt.Println(out.String("✗ " + err.Error()).Foreground(termenv.ANSIRed))
}
