package pullrequest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// LineSet is a set of new-side line numbers.
type LineSet map[int]struct{}

// Contains reports whether line is in the set.
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// AddedLines returns the new-side line numbers added by a file patch as
// returned by the GitHub files API.
func AddedLines(patch string) (LineSet, error) {
	lines := make(LineSet)
	if patch == "" {
		return lines, nil
	}

	if !strings.HasSuffix(patch, "\n") {
		patch += "\n"
	}

	hunks, err := diff.ParseHunks([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}

	for _, hunk := range hunks {
		line := int(hunk.NewStartLine)
		for _, raw := range bytes.Split(bytes.TrimSuffix(hunk.Body, []byte("\n")), []byte("\n")) {
			if len(raw) == 0 {
				line++
				continue
			}
			switch raw[0] {
			case '+':
				lines[line] = struct{}{}
				line++
			case ' ':
				line++
			case '-', '\\':
				// Removed lines and "\ No newline at end of file" markers
				// have no new-side line.
			default:
				line++
			}
		}
	}

	return lines, nil
}

// ChangedLines maps each changed file with a patch to its added lines.
// Files without a patch are absent from the map.
func ChangedLines(files []ChangedFile) (map[string]LineSet, error) {
	changed := make(map[string]LineSet, len(files))
	for _, file := range files {
		if file.Status == StatusRemoved || file.Patch == "" {
			continue
		}
		lines, err := AddedLines(file.Patch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Filename, err)
		}
		changed[file.Filename] = lines
	}
	return changed, nil
}

// FilterToChangedLines keeps annotations on added lines. Annotations on
// files whose patch is unknown are kept.
func FilterToChangedLines(annotations []Annotation, changed map[string]LineSet) []Annotation {
	kept := make([]Annotation, 0, len(annotations))
	for _, annotation := range annotations {
		lines, ok := changed[annotation.Path]
		if ok && !lines.Contains(annotation.StartLine) {
			continue
		}
		kept = append(kept, annotation)
	}
	return kept
}
