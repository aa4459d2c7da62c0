package pretty

import (
	"fmt"
	"strings"

	"github.com/j2kun/chktex-action/pkg/chktex"
)

// contextIndent aligns context lines under the diagnostic message.
const contextIndent = "      "

// FormatDiagnostic formats a single diagnostic for terminal output.
// Context lines are cut to width columns when width is positive.
//
//	path:line  error  message  (44)
//	      context line
func (s *Styles) FormatDiagnostic(diag *chktex.Diagnostic, showContext bool, width int) string {
	var builder strings.Builder

	location := s.FilePath.Render(diag.DisplayPath()) + s.Location.Render(fmt.Sprintf(":%d", diag.Line))
	ruleDisplay := s.RuleID.Render(fmt.Sprintf("(%d)", diag.Number))

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatLevel(diag.Level),
		s.Message.Render(diag.Message),
		ruleDisplay,
	)

	if showContext {
		builder.WriteString(s.FormatContext(diag.Context, width))
	}

	return builder.String()
}

// FormatLevel returns a styled level string.
func (s *Styles) FormatLevel(level chktex.Level) string {
	switch level {
	case chktex.LevelError:
		return s.Error.Render("error")
	case chktex.LevelWarning:
		return s.Warning.Render("warning")
	default:
		return strings.ToLower(string(level))
	}
}

// FormatContext formats the context lines chktex printed below a header.
// With a positive width, lines that would overflow it are truncated;
// otherwise they are written in full.
func (s *Styles) FormatContext(lines []string, width int) string {
	if len(lines) == 0 {
		return ""
	}

	limit := 0
	if width > 0 {
		limit = width - len(contextIndent)
	}

	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(contextIndent + s.SourceLine.Render(truncate(line, limit)) + "\n")
	}
	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

func truncate(line string, limit int) string {
	runes := []rune(line)
	if limit <= 1 || len(runes) <= limit {
		return line
	}
	return string(runes[:limit-1]) + "…"
}
