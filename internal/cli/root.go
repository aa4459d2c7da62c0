// Package cli provides the Cobra command structure for chktex-action.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/j2kun/chktex-action/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root chktex-action command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "chktex-action",
		Short: "Lint LaTeX sources with ChkTeX in GitHub Actions",
		Long: `chktex-action runs ChkTeX over the LaTeX sources of a repository.

In GitHub Actions it lints the files changed by a pull request or push,
appends a Markdown report to the job summary, annotates the offending lines
and reviews the pull request. Locally it lints the working directory and
prints a report.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newRunCommand(flags))
	rootCmd.AddCommand(newParseCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	NewHelpFormatter(flags.color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
