package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/j2kun/chktex-action/internal/ui/pretty"
	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
)

// TextReporter formats results as styled terminal output grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)

	width := opts.Width
	if width == 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, diagnostics []chktex.Diagnostic, an analysis.Analysis) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, group := range groupByFile(diagnostics) {
		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(group.path, len(group.diagnostics)))
		for _, diag := range group.diagnostics {
			fmt.Fprint(r.bw, r.styles.FormatDiagnostic(diag, r.opts.ShowContext, r.width))
		}
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(an, r.opts.FilesChecked))
	}

	return nil
}

type fileGroup struct {
	path        string
	diagnostics []*chktex.Diagnostic
}

// groupByFile groups diagnostics by display path in first-seen order.
func groupByFile(diagnostics []chktex.Diagnostic) []fileGroup {
	var groups []fileGroup
	index := make(map[string]int)

	for idx := range diagnostics {
		diag := &diagnostics[idx]
		path := diag.DisplayPath()

		pos, ok := index[path]
		if !ok {
			pos = len(groups)
			index[path] = pos
			groups = append(groups, fileGroup{path: path})
		}
		groups[pos].diagnostics = append(groups[pos].diagnostics, diag)
	}

	return groups
}
