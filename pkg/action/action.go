package action

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/j2kun/chktex-action/internal/logging"
	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
	"github.com/j2kun/chktex-action/pkg/config"
	"github.com/j2kun/chktex-action/pkg/fsutil"
	"github.com/j2kun/chktex-action/pkg/pullrequest"
	"github.com/j2kun/chktex-action/pkg/reporter"
	"github.com/j2kun/chktex-action/pkg/runner"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNoConfig is returned when Options.Config is nil.
	ErrNoConfig = errors.New("no configuration")

	// ErrNoToken is returned when changed files must come from the API but
	// no token is configured.
	ErrNoToken = errors.New("a GitHub token is required to list changed files")
)

// CleanMessage is the notice emitted when a run finds no diagnostics.
const CleanMessage = "No errors or warnings found."

// Outcome is the result of one action run.
type Outcome struct {
	// Files are the workspace-relative paths selected for linting.
	Files []string

	// Result is the lint result. Nil when no files were selected.
	Result *runner.Result

	// Analysis holds the totals of Result.Diagnostics.
	Analysis analysis.Analysis

	// Summary is the Markdown appended to the step summary.
	Summary string
}

// HasIssues reports whether any diagnostics were found.
func (o *Outcome) HasIssues() bool {
	return o != nil && o.Result.HasIssues()
}

// Diagnostics returns all diagnostics of the run.
func (o *Outcome) Diagnostics() []chktex.Diagnostic {
	if o == nil || o.Result == nil {
		return nil
	}
	return o.Result.Diagnostics
}

// Run executes the action once.
//
// Files are selected by trigger: the files of the pull request or pushed
// commit, or a walk of the workspace for lint-all and other events. Each
// file is linted, the Markdown summary appended to the step summary and the
// report printed. Pull requests then get check-run annotations and a review;
// pushes get workflow annotations.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	if opts.Config == nil {
		return nil, ErrNoConfig
	}

	logger := logging.FromContext(ctx)

	console := opts.Console
	if console == nil {
		console = logging.NewConsole(opts.stdout(), logger, opts.Config.GitHub.InActions, opts.Config.Debug)
	}

	api, err := opts.api()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     opts.Config,
		opts:    &opts,
		logger:  logger,
		console: console,
		api:     api,
		files:   runner.OptionsFromConfig(opts.Config),
	}

	return s.execute(ctx)
}

// session carries the state of one run.
type session struct {
	cfg     *config.Config
	opts    *Options
	logger  *log.Logger
	console *logging.Console
	api     pullrequest.API
	files   runner.Options

	event   *pullrequest.Event
	changed []pullrequest.ChangedFile
}

func (s *session) execute(ctx context.Context) (*Outcome, error) {
	s.logger.Debug("starting run",
		logging.FieldEvent, s.cfg.GitHub.EventName,
		logging.FieldLintAll, s.cfg.LintAllEnabled(),
		logging.FieldWorkspace, s.cfg.GitHub.Workspace,
		logging.FieldChkTeXRC, s.cfg.ChkTeX.Config,
	)

	files, err := s.selectFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("select files: %w", err)
	}

	outcome := &Outcome{Files: files}

	if len(files) == 0 {
		s.console.Notice(reporter.NoFilesMessage)
		outcome.Summary = reporter.RenderEmpty()
		if err := s.writeStepSummary(ctx, outcome.Summary); err != nil {
			return outcome, err
		}
		return outcome, nil
	}

	s.logger.Info("linting files", logging.FieldFiles, len(files))
	s.logger.Debug("selected files", logging.FieldPaths, files)
	s.announceChkTeXRC()

	start := time.Now()
	linter := &consoleLinter{Linter: s.opts.linter(), console: s.console, workspace: s.cfg.GitHub.Workspace}
	result, err := runner.New(linter).Run(ctx, s.files, files)
	if err != nil {
		return outcome, fmt.Errorf("lint files: %w", err)
	}
	outcome.Result = result

	for _, skipped := range result.Errored() {
		s.console.Warning(fmt.Sprintf("Skipped %s: %v", skipped.Path, skipped.Error))
		if skipped.Stderr != "" {
			s.logger.Debug("chktex stderr", logging.FieldPath, skipped.Path, logging.FieldStderr, skipped.Stderr)
		}
	}

	outcome.Analysis = analysis.Analyze(result.Diagnostics)
	outcome.Summary = reporter.RenderMarkdown(result.Diagnostics, outcome.Analysis)

	s.logger.Info(outcome.Analysis.String(),
		logging.FieldFilesLinted, result.Stats.FilesLinted,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldDuration, time.Since(start),
	)

	if outcome.HasIssues() {
		s.console.Error(outcome.Analysis.String())
	} else {
		s.console.Notice(CleanMessage)
	}

	if err := s.writeStepSummary(ctx, outcome.Summary); err != nil {
		return outcome, err
	}

	if err := s.report(ctx, outcome); err != nil {
		return outcome, err
	}

	if err := s.annotate(ctx, outcome); err != nil {
		return outcome, err
	}

	return outcome, nil
}

// announceChkTeXRC tells which chktexrc the runs use.
func (s *session) announceChkTeXRC() {
	rc := s.cfg.ChkTeX.Config
	switch {
	case rc == "":
		s.console.Notice("Using global chktexrc file.")
	case rc == filepath.Join(s.cfg.GitHub.Workspace, config.ChkTeXRCFile):
		s.console.Notice("Using local .chktexrc file.")
	default:
		s.console.Notice(fmt.Sprintf("Using chktexrc file %s.", rc))
	}
}

func (s *session) selectFiles(ctx context.Context) ([]string, error) {
	if !s.cfg.NeedsAPI() {
		if !s.cfg.LintAllEnabled() && s.cfg.GitHub.EventName != "" {
			s.logger.Debug("event has no changed-file source, walking workspace", logging.FieldEvent, s.cfg.GitHub.EventName)
		}
		return runner.Discover(ctx, s.files)
	}

	if s.api == nil {
		return nil, ErrNoToken
	}

	switch s.cfg.GitHub.Trigger() {
	case config.TriggerPullRequest:
		event, err := s.pullRequestEvent(ctx)
		if err != nil {
			return nil, err
		}
		if s.changed, err = s.api.PullRequestFiles(ctx, event.Number); err != nil {
			return nil, err
		}
	case config.TriggerPush:
		var err error
		if s.changed, err = s.api.CommitFiles(ctx, s.cfg.GitHub.SHA); err != nil {
			return nil, err
		}
	case config.TriggerNone:
	}

	return runner.FilterPaths(ctx, s.files, pullrequest.Paths(s.changed))
}

func (s *session) pullRequestEvent(ctx context.Context) (*pullrequest.Event, error) {
	if s.event != nil {
		return s.event, nil
	}

	event, err := pullrequest.ReadEvent(ctx, s.cfg.GitHub.EventPath)
	if err != nil {
		return nil, err
	}

	s.event = event
	s.logger.Debug("read pull request event", logging.FieldPullRequest, event.Number)
	return event, nil
}

func (s *session) writeStepSummary(ctx context.Context, summary string) error {
	path := s.cfg.GitHub.StepSummary
	if path == "" {
		return nil
	}

	if err := fsutil.AppendFile(ctx, path, []byte(summary)); err != nil {
		return fmt.Errorf("write step summary: %w", err)
	}

	s.logger.Debug("wrote step summary", logging.FieldPath, path)
	return nil
}

func (s *session) report(ctx context.Context, outcome *Outcome) error {
	if err := s.writeReport(ctx, s.opts.stdout(), s.cfg.Color, 0, outcome); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if s.cfg.Output == "" {
		return nil
	}

	var buf bytes.Buffer
	if err := s.writeReport(ctx, &buf, "never", -1, outcome); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, s.cfg.Output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s.logger.Debug("wrote report", logging.FieldOutput, s.cfg.Output)
	return nil
}

// writeReport renders the configured format to w. width follows
// reporter.Options.Width.
func (s *session) writeReport(ctx context.Context, w io.Writer, color string, width int, outcome *Outcome) error {
	format, err := reporter.ParseFormat(s.cfg.Format)
	if err != nil {
		return err
	}

	opts := reporter.DefaultOptions()
	opts.Writer = w
	opts.Format = format
	opts.Color = color
	opts.Width = width
	opts.FilesChecked = outcome.Result.Stats.FilesLinted

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	return rep.Report(ctx, outcome.Result.Diagnostics, outcome.Analysis)
}

func (s *session) annotate(ctx context.Context, outcome *Outcome) error {
	if !s.cfg.AnnotateEnabled() {
		return nil
	}

	switch s.cfg.GitHub.Trigger() {
	case config.TriggerPullRequest:
		return s.annotatePullRequest(ctx, outcome)
	case config.TriggerPush:
		s.annotateCommit(outcome)
	case config.TriggerNone:
	}

	return nil
}

// annotateCommit emits one workflow annotation per diagnostic. Outside
// Actions the report already lists every diagnostic.
func (s *session) annotateCommit(outcome *Outcome) {
	if !s.cfg.GitHub.InActions {
		return
	}

	for _, annotation := range pullrequest.BuildAnnotations(outcome.Result.Diagnostics) {
		level := logging.CommandWarning
		if annotation.Level == pullrequest.LevelFailure {
			level = logging.CommandError
		}
		s.console.Annotate(level, &logging.Location{File: annotation.Path, Line: annotation.StartLine}, annotation.Message)
	}
}

func (s *session) annotatePullRequest(ctx context.Context, outcome *Outcome) error {
	if s.api == nil {
		s.console.Warning("No GitHub token configured, skipping pull request annotations and review")
		return nil
	}

	event, err := s.pullRequestEvent(ctx)
	if err != nil {
		return err
	}

	annotations := pullrequest.BuildAnnotations(outcome.Result.Diagnostics)

	if s.cfg.OnlyChangedLinesEnabled() {
		annotations, err = s.filterToChangedLines(ctx, event, annotations)
		if err != nil {
			return err
		}
	}

	ref := event.HeadRef
	if ref == "" {
		ref = s.cfg.GitHub.HeadRef
	}

	run, err := s.api.FindCheckRun(ctx, ref)
	switch {
	case errors.Is(err, pullrequest.ErrCheckRunNotFound):
		s.console.Warning(fmt.Sprintf("No check run found for %s, skipping annotations", ref))
	case err != nil:
		return err
	default:
		err := s.api.UpdateCheckRun(ctx, run, pullrequest.CheckRunOutput{
			Title:       pullrequest.Title,
			Summary:     outcome.Analysis.String(),
			Annotations: annotations,
		})
		if err != nil {
			return err
		}
		s.logger.Info("updated check run",
			logging.FieldCheckRun, run.ID,
			logging.FieldAnnotations, len(annotations),
		)
	}

	review := pullrequest.NewReview(outcome.HasIssues())
	if err := s.api.CreateReview(ctx, event.Number, review); err != nil {
		return err
	}

	s.logger.Info("submitted review",
		logging.FieldPullRequest, event.Number,
		logging.FieldReviewEvent, review.Event,
	)
	return nil
}

func (s *session) filterToChangedLines(
	ctx context.Context,
	event *pullrequest.Event,
	annotations []pullrequest.Annotation,
) ([]pullrequest.Annotation, error) {
	changed := s.changed
	if changed == nil {
		var err error
		if changed, err = s.api.PullRequestFiles(ctx, event.Number); err != nil {
			return nil, err
		}
	}

	lines, err := pullrequest.ChangedLines(changed)
	if err != nil {
		return nil, fmt.Errorf("read pull request diff: %w", err)
	}

	return pullrequest.FilterToChangedLines(annotations, lines), nil
}
