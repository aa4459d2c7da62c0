package chktex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultBinary is the chktex executable looked up on PATH.
const DefaultBinary = "chktex"

// DefaultTimeout bounds a single chktex run.
const DefaultTimeout = time.Minute

// waitDelay caps how long output copying may outlive a killed process.
const waitDelay = time.Second

// Output is the captured result of one chktex invocation.
type Output struct {
	// Stdout is the diagnostic stream fed to Parse.
	Stdout string

	// Stderr is captured for logging only; it is never parsed.
	Stderr string

	// ExitCode is the process exit status.
	ExitCode int
}

// Invoker runs chktex against single files.
type Invoker struct {
	// Binary is the chktex executable. Defaults to DefaultBinary.
	Binary string

	// ConfigFile is passed as "-l <file>" when set. When empty chktex
	// falls back to its global chktexrc.
	ConfigFile string

	// Timeout bounds each run. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Args returns the chktex arguments used to lint the file with the given base name.
func (inv *Invoker) Args(baseName string) []string {
	args := []string{"-q", "--inputfiles=0"}
	if inv.ConfigFile != "" {
		args = append(args, "-l", inv.ConfigFile)
	}
	return append(args, baseName)
}

// Run executes chktex for path inside the file's directory, passing only the
// file's base name.
//
// A non-zero exit status is not an error when chktex printed diagnostics;
// chktex reports findings through its exit code. It is reported as
// ErrToolFailed only when stdout is empty and stderr explains the failure.
func (inv *Invoker) Run(ctx context.Context, path string) (*Output, error) {
	binary := inv.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // binary and config come from trusted configuration
	cmd := exec.CommandContext(cmdCtx, binary, inv.Args(filepath.Base(path))...)
	cmd.Dir = filepath.Dir(path)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, path)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("run chktex: %w", ctx.Err())
	}

	out := &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr == nil {
		return out, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(runErr, &exitErr) {
		// An explicit path that does not exist fails like a PATH miss.
		if errors.Is(runErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("start %s: %w: %w", binary, exec.ErrNotFound, runErr)
		}
		return nil, fmt.Errorf("start %s: %w", binary, runErr)
	}

	out.ExitCode = exitErr.ExitCode()
	if strings.TrimSpace(out.Stdout) == "" && strings.TrimSpace(out.Stderr) != "" {
		return out, fmt.Errorf("%w (exit %d): %s", ErrToolFailed, out.ExitCode, strings.TrimSpace(out.Stderr))
	}

	return out, nil
}
