// Package demo implements `lqc demo`, which prints a handful of
// DefineInsert statements against fabricated rows so a reader can see
// the Undefined/NULL split and generated primary keys without a live
// database.
package demo

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/lambdaquery/lq/constants"
	"github.com/lambdaquery/lq/id"
	"github.com/lambdaquery/lq/query"
	lqsql "github.com/lambdaquery/lq/sql"
)

// Command returns the `demo` cobra command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print sample INSERT statements illustrating Undefined vs NULL",
		RunE:  runDemo,
	}

	cmd.Flags().String("dialect", string(constants.Postgres), "target dialect: postgres, mysql, or sqlite")

	return cmd
}

func runDemo(cmd *cobra.Command, _ []string) error {
	dialect, _ := cmd.Flags().GetString("dialect")
	out := termenv.DefaultOutput()

	rows := []query.Insert{
		{
			Table: "users",
			Fields: []query.InsertField{
				{Column: "id", Value: query.Val(id.Generate())},
				{Column: "name", Value: query.Val("Ada Lovelace")},
				{Column: "nickname", Value: query.Undefined()},
			},
		},
		{
			Table: "users",
			Fields: []query.InsertField{
				{Column: "id", Value: query.Val(id.Generate())},
				{Column: "name", Value: query.Val("Grace Hopper")},
				{Column: "nickname", Value: query.Null()},
			},
		},
		{
			Table: "accounts",
			Fields: []query.InsertField{
				{Column: "id", Value: query.Val(id.Generate())},
				// verified is stored as int16 on dialects without a native
				// boolean column; sql.Bool's driver.Valuer handles the
				// conversion at bind time.
				{Column: "verified", Value: query.Val(lqsql.Bool(true))},
			},
		},
	}

	for i := range rows {
		sql, params, err := query.ToInsertSQL(&rows[i], query.Options{Dialect: constants.Dialect(dialect)})
		if err != nil {
			return err
		}

		fmt.Println(out.String(sql).Foreground(termenv.ANSICyan).Bold())

		for name, value := range params {
			fmt.Printf("%s = %v\n", out.String("  "+name).Foreground(termenv.ANSIBrightBlack), value)
		}
	}

	return nil
}
