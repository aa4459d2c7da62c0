package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
	"github.com/j2kun/chktex-action/pkg/fsutil"
	"github.com/j2kun/chktex-action/pkg/reporter"
)

const stdinArg = "-"

type parseFlags struct {
	format      string
	noContext   bool
	compact     bool
	stepSummary string
}

func newParseCommand(global *globalFlags) *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Report on saved chktex output",
		Long: `Parse output previously produced by "chktex -q" and print a report.

Reads standard input when no file or "-" is given. Exit status is 1 when the
output contains diagnostics and 65 when it cannot be parsed.

Examples:
  chktex -q paper.tex | chktex-action parse
  chktex-action parse --format markdown chktex.log`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "markdown", "report format: text, markdown, json")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide context lines in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use minified JSON")
	cmd.Flags().StringVar(&flags.stepSummary, "step-summary", "", "append the Markdown report to this file")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, global *globalFlags, flags *parseFlags) error {
	ctx := cmd.Context()

	raw, err := readParseInput(cmd, args)
	if err != nil {
		return err
	}

	diags, err := chktex.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse chktex output: %w", err)
	}

	an := analysis.Analyze(diags)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       global.color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if err := rep.Report(ctx, diags, an); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if flags.stepSummary != "" {
		summary := reporter.RenderMarkdown(diags, an)
		if err := fsutil.AppendFile(ctx, flags.stepSummary, []byte(summary)); err != nil {
			return fmt.Errorf("write step summary: %w", err)
		}
	}

	if an.HasIssues() {
		return ErrDiagnosticsFound
	}

	return nil
}

func readParseInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == stdinArg {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}

	raw, err := fsutil.ReadFile(cmd.Context(), args[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", args[0], err)
	}
	return raw, nil
}
