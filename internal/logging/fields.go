package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError     = "error"
	FieldPath      = "path"
	FieldPaths     = "paths"
	FieldFiles     = "files"
	FieldInput     = "input"
	FieldOutput    = "output"
	FieldWorkspace = "workspace"
	FieldLine      = "line"
	FieldDuration  = "duration"

	// Configuration fields.
	FieldEvent      = "event"
	FieldLintAll    = "lint_all"
	FieldFormat     = "format"
	FieldChkTeXRC   = "chktexrc"
	FieldRepository = "repository"

	// Linter fields.
	FieldBinary   = "binary"
	FieldExitCode = "exit_code"
	FieldStderr   = "stderr"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesLinted     = "files_linted"
	FieldFilesErrored    = "files_errored"
	FieldDiagnostics     = "diagnostics"
	FieldErrors          = "errors"
	FieldWarnings        = "warnings"

	// GitHub fields.
	FieldPullRequest = "pull_request"
	FieldCheckRun    = "check_run"
	FieldAnnotations = "annotations"
	FieldReviewEvent = "review_event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
