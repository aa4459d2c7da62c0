package runner

import "github.com/j2kun/chktex-action/pkg/chktex"

// FileOutcome is the result of linting one file.
type FileOutcome struct {
	// Path is the workspace-relative path that was linted.
	Path string

	// Diagnostics are the findings for this file, in chktex order.
	Diagnostics []chktex.Diagnostic

	// Stderr is what chktex printed to stderr, kept for logging.
	Stderr string

	// Error is set if the file was skipped because chktex failed or its
	// output could not be parsed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files handed to the runner.
	FilesDiscovered int

	// FilesLinted is the number of files whose output was parsed.
	FilesLinted int

	// FilesErrored is the number of files skipped with an error.
	FilesErrored int

	// FilesWithIssues is the number of linted files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each file, in input order.
	Files []FileOutcome

	// Diagnostics concatenates the diagnostics of all files in file order.
	Diagnostics []chktex.Diagnostic

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// Errored returns the outcomes of skipped files.
func (r *Result) Errored() []FileOutcome {
	if r == nil {
		return nil
	}
	var errored []FileOutcome
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errored = append(errored, outcome)
		}
	}
	return errored
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesLinted++

	if len(outcome.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
		r.Stats.DiagnosticsTotal += len(outcome.Diagnostics)
		r.Diagnostics = append(r.Diagnostics, outcome.Diagnostics...)
	}
}
