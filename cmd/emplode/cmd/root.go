package cmd

import (
	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "emplode",
	Short: "Emplode configuration-script interpreter",
	Long: `emplode is a standalone interpreter for the Emplode configuration
scripting language used by MABE2 to wire up and parameterize evolutionary
simulations.

It is the same lexer/parser/evaluator this module embeds as
pkg/emplode, exposed here as a command-line tool for inspecting and
running scripts without a host simulation attached.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
