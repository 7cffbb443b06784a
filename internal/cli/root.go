// Package cli implements the Moneta command-line interface using Cobra.
// Each subcommand maps to a progress or budgeting capability (status,
// record, goals, periods, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "moneta",
	Short: "Moneta — Personal budgeting with progress tracking",
	Long: `Moneta is a local-first personal budgeting tool.
Track income, expenses, and savings; earn points, ranks, and
achievements as your financial habits improve.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
