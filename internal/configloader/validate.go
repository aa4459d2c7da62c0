package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/j2kun/chktex-action/pkg/config"
	"github.com/j2kun/chktex-action/pkg/langdetect"
	"github.com/j2kun/chktex-action/pkg/reporter"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "chktex.timeout").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Unwrap lets callers match validation failures with ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownColorModes lists valid --color values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColorModes = map[string]bool{
	"auto":   true,
	"always": true,
	"never":  true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if _, err := reporter.ParseFormat(cfg.Format); err != nil {
		result.addError("format", cfg.Format, err.Error())
	}

	if cfg.Color != "" && !knownColorModes[cfg.Color] {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: auto, always, never", cfg.Color))
	}

	if cfg.ChkTeX.Timeout < 0 {
		result.addError("chktex.timeout", cfg.ChkTeX.Timeout, "timeout must be >= 0 (0 means the default)")
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)
	validateGitHub(cfg, result)

	return result
}

func (r *ValidationResult) addError(field string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(field string, value any, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: message})
}

// validateExtensions requires dotted extensions and warns about ones that
// linguist does not classify as TeX.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	if len(cfg.Extensions) == 0 {
		result.addError("extensions", cfg.Extensions, "at least one extension is required")
		return
	}

	for i, ext := range cfg.Extensions {
		field := fmt.Sprintf("extensions[%d]", i)
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(field, ext, fmt.Sprintf("invalid extension %q; must start with a dot", ext))
			continue
		}
		if !langdetect.IsTeXExtension(ext) {
			result.addWarning(field, ext, fmt.Sprintf("extension %q is not a known TeX extension", ext))
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, fmt.Sprintf("invalid glob pattern %q", pattern))
		}
	}
}

// validateGitHub checks the workflow context the run depends on.
func validateGitHub(cfg *config.Config, result *ValidationResult) {
	gh := cfg.GitHub

	info, err := os.Stat(gh.Workspace)
	switch {
	case gh.Workspace == "":
		result.addError("github.workspace", gh.Workspace, "workspace is not set")
	case err != nil:
		result.addError("github.workspace", gh.Workspace, fmt.Sprintf("workspace is not accessible: %v", err))
	case !info.IsDir():
		result.addError("github.workspace", gh.Workspace, "workspace is not a directory")
	}

	trigger := gh.Trigger()
	if trigger != config.TriggerNone && !trigger.IsSupported() && !cfg.LintAllEnabled() {
		result.addWarning("github.event_name", gh.EventName,
			fmt.Sprintf("event %q has no changed-file list; linting the whole workspace", gh.EventName))
	}

	if !cfg.NeedsAPI() {
		return
	}

	if gh.Token == "" {
		result.addError("github.token", "", "a token is required to list changed files; set the github-token input")
	}
	if _, _, ok := gh.OwnerRepo(); !ok {
		result.addError("github.repository", gh.Repository, "repository must be in owner/name form")
	}
	if trigger == config.TriggerPullRequest && gh.EventPath == "" {
		result.addError("github.event_path", "", "event payload path is required for pull_request events")
	}
	if trigger == config.TriggerPush && gh.SHA == "" {
		result.addError("github.sha", "", "commit SHA is required for push events")
	}
}
