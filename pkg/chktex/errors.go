package chktex

import "errors"

// Sentinel errors returned by this package.
var (
	// ErrContextBeforeHeader is returned when a context line appears before
	// any diagnostic header in chktex output.
	ErrContextBeforeHeader = errors.New("context line before first diagnostic header")

	// ErrMalformedHeader is returned when a header matches but its numeric
	// fields are zero or cannot be represented.
	ErrMalformedHeader = errors.New("malformed diagnostic header")

	errNotPositive = errors.New("must be at least 1")

	// ErrToolFailed is returned when chktex exits unsuccessfully without
	// producing any diagnostics on stdout.
	ErrToolFailed = errors.New("chktex execution failed")

	// ErrTimeout is returned when chktex exceeds its per-file timeout.
	ErrTimeout = errors.New("chktex timed out")
)
