package chktex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// headerPattern matches "<Level> <number> in <path> line <line>: <message>".
// The path capture is non-greedy so it stops at the first " line <digits>: ".
var headerPattern = regexp.MustCompile(`^(Error|Warning)\s+(\d+)\s+in\s+(.*?)\s+line\s+(\d+):\s+(.+)$`)

// Parse converts the stdout of a single chktex invocation into diagnostics.
//
// Blank lines are dropped. Every line that is not a header is appended to
// the context of the preceding diagnostic. A context line before the first
// header yields ErrContextBeforeHeader.
func Parse(raw string) ([]Diagnostic, error) {
	diagnostics := make([]Diagnostic, 0)

	for idx, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if match := headerPattern.FindStringSubmatch(line); match != nil {
			diag, err := newDiagnostic(match)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", idx+1, err)
			}
			diagnostics = append(diagnostics, diag)
			continue
		}

		if len(diagnostics) == 0 {
			return nil, fmt.Errorf("line %d %q: %w", idx+1, line, ErrContextBeforeHeader)
		}

		current := &diagnostics[len(diagnostics)-1]
		current.Context = append(current.Context, line)
	}

	return diagnostics, nil
}

// newDiagnostic builds a diagnostic from a header match. Rule numbers and
// lines are 1-based; zero is rejected like an overflow.
func newDiagnostic(match []string) (Diagnostic, error) {
	number, err := parsePositive(match[2])
	if err != nil {
		return Diagnostic{}, fmt.Errorf("%w: number %q: %w", ErrMalformedHeader, match[2], err)
	}

	lineNum, err := parsePositive(match[4])
	if err != nil {
		return Diagnostic{}, fmt.Errorf("%w: line %q: %w", ErrMalformedHeader, match[4], err)
	}

	return Diagnostic{
		Level:   Level(match[1]),
		Number:  number,
		Path:    match[3],
		Line:    lineNum,
		Message: match[5],
		Context: []string{},
	}, nil
}

func parsePositive(digits string) (int, error) {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errNotPositive
	}
	return n, nil
}
