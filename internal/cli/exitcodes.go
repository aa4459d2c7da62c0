package cli

import (
	"errors"

	"github.com/j2kun/chktex-action/internal/configloader"
	"github.com/j2kun/chktex-action/pkg/chktex"
)

// Exit codes for chktex-action.
const (
	// ExitSuccess indicates a run without diagnostics.
	ExitSuccess = 0

	// ExitDiagnostics indicates the run completed and found diagnostics.
	ExitDiagnostics = 1

	// ExitConfigError indicates invalid configuration or unparseable input.
	ExitConfigError = 65

	// ExitInternalError indicates any other failure.
	ExitInternalError = 70
)

// ErrDiagnosticsFound is returned when a command completed with diagnostics.
var ErrDiagnosticsFound = errors.New("chktex reported diagnostics")

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrDiagnosticsFound):
		return ExitDiagnostics
	case errors.Is(err, configloader.ErrInvalidConfig),
		errors.Is(err, chktex.ErrContextBeforeHeader),
		errors.Is(err, chktex.ErrMalformedHeader):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}
