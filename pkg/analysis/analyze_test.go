package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2kun/chktex-action/pkg/chktex"
)

func TestAnalyze_Empty(t *testing.T) {
	t.Parallel()

	for _, input := range [][]chktex.Diagnostic{nil, {}} {
		got := Analyze(input)
		assert.Equal(t, 0, got.Files)
		assert.Equal(t, 0, got.Errors)
		assert.Equal(t, 0, got.Warnings)
		assert.Empty(t, got.ByFile)
		assert.False(t, got.HasIssues())
	}
}

func TestAnalyze_Example(t *testing.T) {
	t.Parallel()

	got := Analyze([]chktex.Diagnostic{
		{Level: chktex.LevelWarning, Number: 1, Path: "test.tex", Line: 13},
		{Level: chktex.LevelError, Number: 44, Path: "test.tex", Line: 20},
	})

	assert.Equal(t, 1, got.Files)
	assert.Equal(t, 1, got.Errors)
	assert.Equal(t, 1, got.Warnings)
	assert.True(t, got.HasIssues())
	assert.Equal(t, "Total files: 1, total errors: 1, total warnings: 1", got.String())
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		levels       []chktex.Level
		paths        []string
		wantFiles    int
		wantErrors   int
		wantWarnings int
	}{
		{
			name:         "only warnings",
			levels:       []chktex.Level{chktex.LevelWarning, chktex.LevelWarning},
			paths:        []string{"a.tex", "b.tex"},
			wantFiles:    2,
			wantWarnings: 2,
		},
		{
			name:       "only errors on one file",
			levels:     []chktex.Level{chktex.LevelError, chktex.LevelError, chktex.LevelError},
			paths:      []string{"a.tex", "a.tex", "a.tex"},
			wantFiles:  1,
			wantErrors: 3,
		},
		{
			name:         "mixed",
			levels:       []chktex.Level{chktex.LevelError, chktex.LevelWarning, chktex.LevelWarning, chktex.LevelError},
			paths:        []string{"a.tex", "b.tex", "c.tex", "b.tex"},
			wantFiles:    3,
			wantErrors:   2,
			wantWarnings: 2,
		},
		{
			name:      "unknown level counts toward files only",
			levels:    []chktex.Level{"Message"},
			paths:     []string{"a.tex"},
			wantFiles: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Len(t, tt.paths, len(tt.levels))

			diags := make([]chktex.Diagnostic, 0, len(tt.levels))
			for i, level := range tt.levels {
				diags = append(diags, chktex.Diagnostic{Level: level, Number: i + 1, Path: tt.paths[i], Line: i + 1})
			}

			got := Analyze(diags)
			assert.Equal(t, tt.wantFiles, got.Files)
			assert.Equal(t, tt.wantErrors, got.Errors)
			assert.Equal(t, tt.wantWarnings, got.Warnings)
		})
	}
}

func TestAnalyze_ByFileFirstSeenOrder(t *testing.T) {
	t.Parallel()

	got := Analyze([]chktex.Diagnostic{
		{Level: chktex.LevelWarning, Path: "z.tex"},
		{Level: chktex.LevelError, Path: "a.tex"},
		{Level: chktex.LevelWarning, Path: "z.tex"},
	})

	assert.Equal(t, []FileAnalysis{
		{Path: "z.tex", Issues: 2, Warnings: 2},
		{Path: "a.tex", Issues: 1, Errors: 1},
	}, got.ByFile)
}

func TestAnalyze_UsesReportedPathNotSource(t *testing.T) {
	t.Parallel()

	got := Analyze([]chktex.Diagnostic{
		{Level: chktex.LevelWarning, Path: "main.tex", Source: "a/main.tex"},
		{Level: chktex.LevelWarning, Path: "main.tex", Source: "b/main.tex"},
	})

	assert.Equal(t, 1, got.Files)
}
