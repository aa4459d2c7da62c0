package pullrequest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2kun/chktex-action/pkg/chktex"
)

func TestBuildAnnotations(t *testing.T) {
	t.Parallel()

	got := BuildAnnotations([]chktex.Diagnostic{
		{
			Level: chktex.LevelWarning, Number: 1, Path: "test.tex", Source: "docs/test.tex",
			Line: 13, Message: "Command terminated with space.", Context: []string{`\foo bar`, "    ^"},
		},
		{Level: chktex.LevelError, Number: 44, Path: "test.tex", Line: 20, Message: "User Regex"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, Annotation{
		Path:      "docs/test.tex",
		StartLine: 13,
		EndLine:   13,
		Level:     LevelWarning,
		Title:     Title,
		Message:   "Command terminated with space.\n\n\\foo bar\n    ^",
	}, got[0])
	assert.Equal(t, Annotation{
		Path:      "test.tex",
		StartLine: 20,
		EndLine:   20,
		Level:     LevelFailure,
		Title:     Title,
		Message:   "User Regex",
	}, got[1])
}

func TestBuildAnnotations_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildAnnotations(nil))
}

func TestBatch(t *testing.T) {
	t.Parallel()

	annotationsOf := func(n int) []Annotation {
		out := make([]Annotation, n)
		for i := range out {
			out[i].StartLine = i + 1
		}
		return out
	}

	tests := []struct {
		name  string
		count int
		size  int
		want  []int
	}{
		{name: "empty yields one empty batch", count: 0, size: 50, want: []int{0}},
		{name: "exact multiple", count: 100, size: 50, want: []int{50, 50}},
		{name: "remainder", count: 51, size: 50, want: []int{50, 1}},
		{name: "zero size uses default", count: 60, size: 0, want: []int{50, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			batches := Batch(annotationsOf(tt.count), tt.size)
			sizes := make([]int, 0, len(batches))
			for _, batch := range batches {
				sizes = append(sizes, len(batch))
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}

func TestNewReview(t *testing.T) {
	t.Parallel()

	issues := NewReview(true)
	assert.Equal(t, ReviewRequestChanges, issues.Event)
	assert.Contains(t, issues.Body, "## ChkTeX Action")
	assert.Contains(t, issues.Body, "**Files changed**")

	clean := NewReview(false)
	assert.Equal(t, ReviewApprove, clean.Event)
	assert.Equal(t, "## ChkTeX Action\n\nLGTM! 🚀", clean.Body)
}
