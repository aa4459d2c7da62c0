// Package config defines core configuration types for chktex-action.
// These types are pure data structures; loading lives in internal/configloader.
package config

import (
	"strings"
	"time"
)

// Trigger is the GitHub event that started the workflow.
type Trigger string

const (
	// TriggerNone means no event, e.g. a local run.
	TriggerNone        Trigger = ""
	TriggerPush        Trigger = "push"
	TriggerPullRequest Trigger = "pull_request"
)

// IsSupported returns true for the events whose changed files can be listed.
func (t Trigger) IsSupported() bool {
	switch t {
	case TriggerPush, TriggerPullRequest:
		return true
	default:
		return false
	}
}

// ProjectConfigFile is the configuration file looked up in the workspace.
const ProjectConfigFile = ".chktex-action.yml"

// ChkTeXRCFile is the local chktex configuration looked up in the workspace.
const ChkTeXRCFile = ".chktexrc"

// ChkTeXConfig controls how the chktex binary is invoked.
type ChkTeXConfig struct {
	// Binary is the chktex executable. Defaults to "chktex" on PATH.
	Binary string `yaml:"binary,omitempty"`

	// Config is an explicit chktexrc passed with -l. When empty the
	// workspace .chktexrc is used if present.
	Config string `yaml:"config,omitempty"`

	// Timeout bounds a single chktex run.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// Config is the root configuration structure for chktex-action.
type Config struct {
	// ChkTeX configures the linter invocation.
	ChkTeX ChkTeXConfig `yaml:"chktex"`

	// Extensions lists the file extensions linted, including the dot.
	Extensions []string `yaml:"extensions"`

	// SkipDirs lists directory names never descended into.
	SkipDirs []string `yaml:"skip_dirs"`

	// Ignore contains doublestar glob patterns for files to ignore.
	Ignore []string `yaml:"ignore"`

	// Annotate enables the check-run annotations and review on pull requests.
	Annotate *bool `yaml:"annotate,omitempty"`

	// OnlyChangedLines drops annotations outside the pull request diff.
	OnlyChangedLines *bool `yaml:"only_changed_lines,omitempty"`

	// LintAll lints every file in the workspace regardless of the trigger.
	LintAll *bool `yaml:"lint_all,omitempty"`

	// Format is the stdout report format: text, markdown or json.
	Format string `yaml:"format,omitempty"`

	// CLI-level options (not persisted to config files).

	// Output is a file the report is additionally written to.
	Output string `yaml:"-"`

	// Color controls colorized output: auto, always, never.
	Color string `yaml:"-"`

	// Debug enables debug logging and workflow debug commands.
	Debug bool `yaml:"-"`

	// GitHub holds the workflow context read from the runner environment.
	GitHub GitHubContext `yaml:"-"`
}

// GitHubContext is the workflow run context.
type GitHubContext struct {
	// InActions is true when running inside GitHub Actions.
	InActions bool

	// Workspace is the checkout directory all paths are relative to.
	Workspace string

	// EventName is the raw event name, e.g. "pull_request".
	EventName string

	// EventPath is the webhook payload file.
	EventPath string

	// Repository is "owner/name".
	Repository string

	// RefName is the short ref that triggered the run.
	RefName string

	// HeadRef is the pull request head branch.
	HeadRef string

	// SHA is the commit that triggered the run.
	SHA string

	// StepSummary is the job summary file Markdown is appended to.
	StepSummary string

	// APIURL is the REST API base URL.
	APIURL string

	// Token authenticates REST calls.
	Token string
}

// Trigger returns the event as a Trigger.
func (g GitHubContext) Trigger() Trigger {
	return Trigger(g.EventName)
}

// OwnerRepo splits Repository into owner and name.
func (g GitHubContext) OwnerRepo() (owner, repo string, ok bool) {
	owner, repo, ok = strings.Cut(g.Repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", false
	}
	return owner, repo, true
}

// AnnotateEnabled reports whether pull request annotations are on.
func (c *Config) AnnotateEnabled() bool {
	return boolValue(c.Annotate, true)
}

// OnlyChangedLinesEnabled reports whether annotations are limited to the diff.
func (c *Config) OnlyChangedLinesEnabled() bool {
	return boolValue(c.OnlyChangedLines, false)
}

// LintAllEnabled reports whether every workspace file is linted.
func (c *Config) LintAllEnabled() bool {
	return boolValue(c.LintAll, false)
}

// NeedsAPI returns true when the file list comes from the GitHub API.
func (c *Config) NeedsAPI() bool {
	return !c.LintAllEnabled() && c.GitHub.Trigger().IsSupported()
}

func boolValue(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// DefaultExtensions returns the extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".tex"}
}

// DefaultSkipDirs returns the directory names skipped when none are configured.
func DefaultSkipDirs() []string {
	return []string{"venv", ".git", "__pycache__"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ChkTeX: ChkTeXConfig{
			Binary:  "chktex",
			Timeout: time.Minute,
		},
		Extensions: DefaultExtensions(),
		SkipDirs:   DefaultSkipDirs(),
		Format:     "text",
		Color:      "auto",
		GitHub: GitHubContext{
			APIURL: "https://api.github.com",
		},
	}
}
