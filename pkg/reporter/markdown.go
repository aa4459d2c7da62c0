package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
)

// SummaryTitle heads every Markdown summary.
const SummaryTitle = "ChkTeX Action Summary"

// NoContextPlaceholder fills the code block of a diagnostic without context.
const NoContextPlaceholder = "No context"

// NoFilesMessage is written as the summary when discovery finds nothing.
const NoFilesMessage = "No .tex files found."

const minFenceLength = 3

// RenderMarkdown renders the step summary for a run.
//
// The header carries the totals of an as given. One section per diagnostic
// follows in input order, each preceded by a blank line. Diagnostics are
// not modified.
func RenderMarkdown(diagnostics []chktex.Diagnostic, an analysis.Analysis) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "## %s\n\n%s\n", SummaryTitle, an.String())

	for idx := range diagnostics {
		builder.WriteString("\n")
		writeMarkdownSection(&builder, &diagnostics[idx])
	}

	return builder.String()
}

// RenderEmpty renders the summary written when no files were linted.
func RenderEmpty() string {
	return fmt.Sprintf("## %s\n\n%s\n", SummaryTitle, NoFilesMessage)
}

func writeMarkdownSection(builder *strings.Builder, diag *chktex.Diagnostic) {
	fmt.Fprintf(builder, "### File: %s\n\n", diag.Path)
	fmt.Fprintf(builder, "- **Type**: %s %d\n", diag.Level, diag.Number)
	fmt.Fprintf(builder, "- **Line**: %d\n", diag.Line)
	fmt.Fprintf(builder, "- **Message**: %s\n", EscapeBackticks(diag.Message))
	builder.WriteString("- **Context**:\n\n")

	if len(diag.Context) == 0 {
		fmt.Fprintf(builder, "```text\n%s\n```\n", NoContextPlaceholder)
		return
	}

	fence := fenceFor(diag.Context)
	builder.WriteString(fence + "tex\n")
	builder.WriteString(strings.Join(diag.Context, "\n"))
	builder.WriteString("\n" + fence + "\n")
}

// EscapeBackticks replaces every backtick with an escaped backtick.
// Backslashes directly in front of a backtick are doubled so they cannot
// cancel the escape.
func EscapeBackticks(text string) string {
	if !strings.Contains(text, "`") {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text) + strings.Count(text, "`"))

	pending := 0
	for _, r := range text {
		switch r {
		case '\\':
			pending++
			continue
		case '`':
			builder.WriteString(strings.Repeat(`\`, pending*2))
			builder.WriteString("\\`")
		default:
			builder.WriteString(strings.Repeat(`\`, pending))
			builder.WriteRune(r)
		}
		pending = 0
	}
	builder.WriteString(strings.Repeat(`\`, pending))

	return builder.String()
}

// fenceFor returns a backtick fence longer than any backtick run in lines.
func fenceFor(lines []string) string {
	longest := 0
	for _, line := range lines {
		run := 0
		for _, r := range line {
			if r != '`' {
				run = 0
				continue
			}
			run++
			longest = max(longest, run)
		}
	}
	return strings.Repeat("`", max(minFenceLength, longest+1))
}

// MarkdownReporter writes RenderMarkdown output.
type MarkdownReporter struct {
	opts Options
}

// NewMarkdownReporter creates a new Markdown reporter.
func NewMarkdownReporter(opts Options) *MarkdownReporter {
	return &MarkdownReporter{opts: opts}
}

// Report implements Reporter.
func (r *MarkdownReporter) Report(_ context.Context, diagnostics []chktex.Diagnostic, an analysis.Analysis) error {
	if _, err := io.WriteString(r.opts.Writer, RenderMarkdown(diagnostics, an)); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
