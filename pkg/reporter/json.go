package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
)

// jsonVersion is the schema version of JSON output.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version     string              `json:"version"`
	Summary     analysis.Analysis   `json:"summary"`
	Diagnostics []chktex.Diagnostic `json:"diagnostics"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, diagnostics []chktex.Diagnostic, an analysis.Analysis) (err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{
		Version:     jsonVersion,
		Summary:     an,
		Diagnostics: diagnostics,
	}
	if output.Diagnostics == nil {
		output.Diagnostics = []chktex.Diagnostic{}
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}
