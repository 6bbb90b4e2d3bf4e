// Package schema implements `lqc schema`, a command group for
// self-documenting the TableDef/ColumnDef shape and for inspecting a
// live database through the execute-wrapper's fx module graph.
package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/lambdaquery/lq/internal/config"
	"github.com/lambdaquery/lq/internal/database"
	internalschema "github.com/lambdaquery/lq/internal/schema"
	pkgschema "github.com/lambdaquery/lq/schema"
)

// Command returns the `schema` command group.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Describe the schema shape, or inspect a live database",
	}

	cmd.AddCommand(describeCommand())
	cmd.AddCommand(inspectCommand())

	return cmd
}

func describeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the JSON Schema for a TableDef/ColumnDef declaration",
		RunE: func(_ *cobra.Command, _ []string) error {
			encoded, err := json.MarshalIndent(pkgschema.JSONSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal json schema: %w", err)
			}

			fmt.Println(string(encoded))

			return nil
		},
	}
}

func inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect TABLE",
		Short: "Inspect a table's structure on the configured datasource",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	table := args[0]
	out := termenv.DefaultOutput()

	var tableSchema *pkgschema.TableSchema

	app := fx.New(
		fx.NopLogger,
		config.Module,
		database.Module,
		internalschema.Module,
		fx.Invoke(func(lc fx.Lifecycle, svc pkgschema.Service) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					result, err := svc.GetTableSchema(ctx, table)
					if err != nil {
						return err
					}

					tableSchema = result

					return nil
				},
			})
		}),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Println(out.String("✗ " + err.Error()).Foreground(termenv.ANSIRed))

		return err
	}

	defer func() { _ = app.Stop(ctx) }()

	printTableSchema(out, tableSchema)

	return nil
}

func printTableSchema(out *termenv.Output, t *pkgschema.TableSchema) {
	fmt.Println(out.String(t.Name).Foreground(termenv.ANSIGreen).Bold())

	for _, col := range t.Columns {
		marker := "  "
		if col.IsPrimaryKey {
			marker = "PK"
		}

		line := fmt.Sprintf("  %s  %-24s %s", marker, col.Name, col.Type)
		fmt.Println(out.String(line).Foreground(termenv.ANSIBrightBlack))
	}
}
