package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lambdaquery/lq/cmd/lqc/cmd/compile"
	"github.com/lambdaquery/lq/cmd/lqc/cmd/demo"
	"github.com/lambdaquery/lq/cmd/lqc/cmd/schema"
)

var (
	Version string
	Commit  string
)

var rootCmd = &cobra.Command{
	Use:   "lqc",
	Short: "lambdaquery compiler CLI",
	Long:  `lqc compiles lambdaquery statements to SQL and inspects live schemas from the command line.`,
}

// Execute runs the root command.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(compile.Command())
	rootCmd.AddCommand(schema.Command())
	rootCmd.AddCommand(demo.Command())
}
