// Package analysis computes aggregate statistics over ChkTeX diagnostics.
package analysis

import "fmt"

// Analysis summarizes the diagnostics of one run.
type Analysis struct {
	// Files is the number of distinct reported paths with at least one diagnostic.
	Files int `json:"files"`

	// Errors is the number of diagnostics with the Error level.
	Errors int `json:"errors"`

	// Warnings is the number of diagnostics with the Warning level.
	Warnings int `json:"warnings"`

	// ByFile holds per-path counts in the order paths first appear.
	ByFile []FileAnalysis `json:"byFile,omitempty"`
}

// FileAnalysis contains aggregated data for a single reported path.
type FileAnalysis struct {
	Path     string `json:"path"`
	Issues   int    `json:"issues"`
	Errors   int    `json:"errors"`
	Warnings int    `json:"warnings"`
}

// HasIssues returns true if any file has diagnostics.
func (a Analysis) HasIssues() bool {
	return a.Files > 0
}

// String renders the one-line totals used in logs and check-run summaries.
func (a Analysis) String() string {
	return fmt.Sprintf("Total files: %d, total errors: %d, total warnings: %d",
		a.Files, a.Errors, a.Warnings)
}
