package pullrequest

import (
	"strings"

	"github.com/j2kun/chktex-action/pkg/chktex"
)

// BuildAnnotations converts diagnostics into check-run annotations, one per
// diagnostic, in input order. Errors become failures, everything else a
// warning. The context lines follow the message after a blank line.
func BuildAnnotations(diagnostics []chktex.Diagnostic) []Annotation {
	annotations := make([]Annotation, 0, len(diagnostics))

	for _, diag := range diagnostics {
		level := LevelWarning
		if diag.IsError() {
			level = LevelFailure
		}

		message := diag.Message
		if len(diag.Context) > 0 {
			message += "\n\n" + strings.Join(diag.Context, "\n")
		}

		annotations = append(annotations, Annotation{
			Path:      diag.DisplayPath(),
			StartLine: diag.Line,
			EndLine:   diag.Line,
			Level:     level,
			Title:     Title,
			Message:   message,
		})
	}

	return annotations
}

// Batch splits annotations into chunks of at most size. An empty input
// yields a single empty batch so the check-run summary is still written.
func Batch(annotations []Annotation, size int) [][]Annotation {
	if size <= 0 {
		size = MaxAnnotationsPerRequest
	}
	if len(annotations) == 0 {
		return [][]Annotation{nil}
	}

	batches := make([][]Annotation, 0, (len(annotations)+size-1)/size)
	for start := 0; start < len(annotations); start += size {
		end := min(start+size, len(annotations))
		batches = append(batches, annotations[start:end])
	}
	return batches
}
