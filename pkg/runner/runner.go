package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/j2kun/chktex-action/internal/logging"
	"github.com/j2kun/chktex-action/pkg/chktex"
)

// Linter runs chktex on one absolute file path.
type Linter interface {
	Run(ctx context.Context, path string) (*chktex.Output, error)
}

// Runner lints files sequentially with a Linter.
type Runner struct {
	// Linter produces the raw chktex output per file.
	Linter Linter
}

// New creates a new Runner with the given linter.
func New(linter Linter) *Runner {
	return &Runner{Linter: linter}
}

// Run lints files, given relative to opts.Workspace, one at a time.
//
// A file whose chktex run fails or whose output cannot be parsed is recorded
// with its error and the run continues. A missing chktex binary or a
// cancelled context aborts the run.
func (r *Runner) Run(ctx context.Context, opts Options, files []string) (*Result, error) {
	logger := logging.FromContext(ctx)

	workspace, err := resolveWorkspace(opts.Workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	result := &Result{
		Files:       make([]FileOutcome, 0, len(files)),
		Diagnostics: []chktex.Diagnostic{},
	}
	result.Stats.FilesDiscovered = len(files)

	for _, relPath := range files {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		start := time.Now()
		outcome, err := r.lintFile(ctx, workspace, relPath)
		if err != nil {
			return result, err
		}

		logger.Debug("linted file",
			logging.FieldPath, relPath,
			logging.FieldDiagnostics, len(outcome.Diagnostics),
			logging.FieldDuration, time.Since(start),
		)
		if outcome.Error != nil {
			logger.Debug("skipping file", logging.FieldPath, relPath, logging.FieldError, outcome.Error)
		}

		result.accumulate(outcome)
	}

	return result, nil
}

// lintFile runs the linter and parses its output. The returned error is
// reserved for failures that abort the whole run.
func (r *Runner) lintFile(ctx context.Context, workspace, relPath string) (FileOutcome, error) {
	outcome := FileOutcome{Path: relPath}

	out, err := r.Linter.Run(ctx, filepath.Join(workspace, filepath.FromSlash(relPath)))
	if out != nil {
		outcome.Stderr = out.Stderr
	}

	switch {
	case errors.Is(err, exec.ErrNotFound):
		return outcome, fmt.Errorf("chktex is not installed: %w", err)
	case ctx.Err() != nil:
		return outcome, fmt.Errorf("run cancelled: %w", ctx.Err())
	case err != nil:
		outcome.Error = err
		return outcome, nil
	}

	diags, err := chktex.Parse(out.Stdout)
	if err != nil {
		outcome.Error = fmt.Errorf("parse chktex output for %s: %w", relPath, err)
		return outcome, nil
	}

	for i := range diags {
		diags[i].Source = relPath
	}
	outcome.Diagnostics = diags

	return outcome, nil
}
