package pretty

import (
	"fmt"
	"strings"

	"github.com/j2kun/chktex-action/pkg/analysis"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run totals as a single line.
// Example: "3 issues (1 error, 2 warnings) in 2 files, 5 files checked".
func (s *Styles) FormatSummaryOneLine(an analysis.Analysis, filesChecked int) string {
	if !an.HasIssues() {
		return s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", filesChecked, plural(filesChecked, wordFile, wordFiles))) + "\n"
	}

	issues := 0
	for _, file := range an.ByFile {
		issues += file.Issues
	}

	var levels []string
	if an.Errors > 0 {
		levels = append(levels, s.Error.Render(fmt.Sprintf("%d %s", an.Errors, plural(an.Errors, "error", "errors"))))
	}
	if an.Warnings > 0 {
		levels = append(levels, s.Warning.Render(fmt.Sprintf("%d %s", an.Warnings, plural(an.Warnings, "warning", "warnings"))))
	}

	parts := []string{s.Failure.Render(fmt.Sprintf("%d %s", issues, plural(issues, "issue", "issues")))}
	if len(levels) > 0 {
		parts[0] += " (" + strings.Join(levels, ", ") + ")"
	}
	parts[0] += fmt.Sprintf(" in %d %s", an.Files, plural(an.Files, wordFile, wordFiles))

	if filesChecked > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d %s checked", filesChecked, plural(filesChecked, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
