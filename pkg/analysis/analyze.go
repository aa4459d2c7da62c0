package analysis

import "github.com/j2kun/chktex-action/pkg/chktex"

// Analyze counts distinct paths, errors and warnings in a single pass.
// Levels other than Error and Warning count toward neither total.
func Analyze(diagnostics []chktex.Diagnostic) Analysis {
	var result Analysis

	index := make(map[string]int)

	for _, diag := range diagnostics {
		pos, seen := index[diag.Path]
		if !seen {
			pos = len(result.ByFile)
			index[diag.Path] = pos
			result.ByFile = append(result.ByFile, FileAnalysis{Path: diag.Path})
		}

		file := &result.ByFile[pos]
		file.Issues++

		switch diag.Level {
		case chktex.LevelError:
			result.Errors++
			file.Errors++
		case chktex.LevelWarning:
			result.Warnings++
			file.Warnings++
		}
	}

	result.Files = len(result.ByFile)

	return result
}
