// Package reporter renders ChkTeX diagnostics as Markdown, styled text or JSON.
package reporter

import (
	"context"
	"fmt"

	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
)

// Reporter formats and writes the diagnostics of a run.
type Reporter interface {
	// Report writes formatted output for the given diagnostics and totals.
	Report(ctx context.Context, diagnostics []chktex.Diagnostic, an analysis.Analysis) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatMarkdown:
		return NewMarkdownReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
