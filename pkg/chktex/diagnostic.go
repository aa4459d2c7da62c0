// Package chktex parses ChkTeX diagnostics and runs the chktex binary.
package chktex

import "fmt"

// Level is the severity tag printed by ChkTeX in front of each diagnostic.
// It is kept verbatim and used as a classification key.
type Level string

// Levels emitted by ChkTeX.
const (
	LevelError   Level = "Error"
	LevelWarning Level = "Warning"
)

// String returns the level as ChkTeX prints it.
func (l Level) String() string {
	return string(l)
}

// Diagnostic is one finding reported by ChkTeX for a location in a file.
type Diagnostic struct {
	// Level is the severity tag ("Error" or "Warning").
	Level Level `json:"level"`

	// Number is the ChkTeX check number.
	Number int `json:"number"`

	// Path is the file path as reported by ChkTeX. It is relative to the
	// directory chktex was run in, not to the workspace.
	Path string `json:"path"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Context holds the raw lines ChkTeX printed after the header.
	Context []string `json:"context"`

	// Source is the workspace-relative path of the file that was linted.
	// Parse leaves it empty; the runner fills it in.
	Source string `json:"source,omitempty"`
}

// Location returns the path:line pair used in log output.
func (d *Diagnostic) Location() string {
	return fmt.Sprintf("%s:%d", d.DisplayPath(), d.Line)
}

// DisplayPath returns Source when known and the reported Path otherwise.
func (d *Diagnostic) DisplayPath() string {
	if d.Source != "" {
		return d.Source
	}
	return d.Path
}

// IsError reports whether the diagnostic has the Error level.
func (d *Diagnostic) IsError() bool {
	return d.Level == LevelError
}
