package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/j2kun/chktex-action/internal/configloader"
	"github.com/j2kun/chktex-action/internal/logging"
	"github.com/j2kun/chktex-action/pkg/action"
	"github.com/j2kun/chktex-action/pkg/config"
)

type runFlags struct {
	workspace        string
	format           string
	output           string
	binary           string
	chktexrc         string
	timeout          time.Duration
	ignore           []string
	lintAll          bool
	annotate         bool
	onlyChangedLines bool
	event            string
	stepSummary      string
	noEnv            bool
}

func newRunCommand(global *globalFlags) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lint LaTeX files and report the results",
		Long:  runLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, global, flags)
		},
	}

	addRunFlags(cmd, flags)

	return cmd
}

const runLongDescription = `Lint the LaTeX files of the workspace with ChkTeX.

Inside GitHub Actions the files come from the triggering event: the files
changed by a pull request or by the pushed commit. Other events, and
--lint-all, lint every matching file in the workspace. The Markdown report is
appended to the job summary, and pull requests are annotated and reviewed.

Exit status is 0 without diagnostics, 1 with diagnostics, 65 for invalid
configuration and 70 for any other failure.

Examples:
  chktex-action run                       # Lint the current directory
  chktex-action run --lint-all            # Ignore the event, lint everything
  chktex-action run --format markdown     # Print the job summary Markdown
  chktex-action run --output report.json --format json`

func runAction(cmd *cobra.Command, global *globalFlags, flags *runFlags) error {
	ctx := cmd.Context()
	logger := logging.Default()

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   flags.workspace,
		ExplicitPath: global.configPath,
		IgnoreEnv:    flags.noEnv,
		CLIConfig:    cliConfig(cmd, global, flags),
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	cfg := loadResult.Config
	if cfg.Debug {
		logging.SetLevel("debug")
	}

	console := logging.NewConsole(cmd.OutOrStdout(), logger, cfg.GitHub.InActions, cfg.Debug)

	for _, warning := range loadResult.Warnings {
		console.Warning(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldWorkspace, cfg.GitHub.Workspace,
		logging.FieldEvent, cfg.GitHub.EventName,
		logging.FieldRepository, cfg.GitHub.Repository,
		logging.FieldFormat, cfg.Format,
		logging.FieldBinary, cfg.ChkTeX.Binary,
		logging.FieldChkTeXRC, cfg.ChkTeX.Config,
	)

	outcome, err := action.Run(logging.WithLogger(ctx, logger), action.Options{
		Config:  cfg,
		Console: console,
		Stdout:  cmd.OutOrStdout(),
	})
	if err != nil {
		return fmt.Errorf("run chktex: %w", err)
	}

	if outcome.HasIssues() {
		return ErrDiagnosticsFound
	}

	return nil
}

// cliConfig maps the flags that were explicitly set onto a Config.
func cliConfig(cmd *cobra.Command, global *globalFlags, flags *runFlags) *config.Config {
	cfg := &config.Config{
		Color: global.color,
		Debug: global.debug,
	}

	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = flags.format
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("chktex") {
		cfg.ChkTeX.Binary = flags.binary
	}
	if changed("chktexrc") {
		cfg.ChkTeX.Config = flags.chktexrc
	}
	if changed("timeout") {
		cfg.ChkTeX.Timeout = flags.timeout
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("lint-all") {
		cfg.LintAll = config.Bool(flags.lintAll)
	}
	if changed("annotate") {
		cfg.Annotate = config.Bool(flags.annotate)
	}
	if changed("only-changed-lines") {
		cfg.OnlyChangedLines = config.Bool(flags.onlyChangedLines)
	}
	if changed("event") {
		cfg.GitHub.EventName = flags.event
	}
	if changed("step-summary") {
		cfg.GitHub.StepSummary = flags.stepSummary
	}

	return cfg
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.workspace, "workspace", "", "directory to lint (default: $GITHUB_WORKSPACE or the current directory)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, markdown, json")
	cmd.Flags().StringVar(&flags.output, "output", "", "also write the report to this file")
	cmd.Flags().StringVar(&flags.binary, "chktex", "chktex", "chktex executable")
	cmd.Flags().StringVar(&flags.chktexrc, "chktexrc", "", "chktexrc passed to chktex with -l (default: <workspace>/.chktexrc)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", time.Minute, "timeout for a single chktex run")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns of files to ignore")
	cmd.Flags().BoolVar(&flags.lintAll, "lint-all", false, "lint every file in the workspace regardless of the event")
	cmd.Flags().BoolVar(&flags.annotate, "annotate", true, "annotate and review pull requests, annotate pushed commits")
	cmd.Flags().BoolVar(&flags.onlyChangedLines, "only-changed-lines", false,
		"only annotate lines added by the pull request")
	cmd.Flags().StringVar(&flags.event, "event", "", "override the triggering event name")
	cmd.Flags().StringVar(&flags.stepSummary, "step-summary", "", "append the Markdown report to this file")
	cmd.Flags().BoolVar(&flags.noEnv, "no-env", false, "ignore GITHUB_*, INPUT_*, RUNNER_DEBUG and CHKTEX_ACTION_* variables")
}
