package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2kun/chktex-action/internal/cli"
	"github.com/j2kun/chktex-action/internal/configloader"
	"github.com/j2kun/chktex-action/pkg/chktex"
	"github.com/j2kun/chktex-action/pkg/fsutil"
)

const exampleOutput = "Warning 1 in test.tex line 13: Command terminated with space.\n" +
	"\\foo bar\n" +
	"    ^\n" +
	"Error 44 in test.tex line 20: User Regex: bad.\n"

//nolint:gochecknoglobals // shared read-only test fixture
var testInfo = cli.BuildInfo{
	Version: "1.2.3",
	Commit:  "abc123",
	Date:    "2024-01-01",
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "chktex-action", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"run", "parse", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %q", name)
		assert.Equal(t, name, subCmd.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRunCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{
		"workspace", "format", "output", "chktex", "chktexrc", "timeout", "ignore",
		"lint-all", "annotate", "only-changed-lines", "event", "step-summary", "no-env",
	} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "run flag %q", name)
	}

	assert.Error(t, runCmd.Args(runCmd, []string{"paper.tex"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, out, "chktex-action")
	assert.Contains(t, out, "version=1.2.3")
	assert.Contains(t, out, "commit=abc123")
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--help", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "parse")
	assert.Contains(t, out, "--config")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: cli.ExitSuccess},
		{name: "diagnostics", err: cli.ErrDiagnosticsFound, want: cli.ExitDiagnostics},
		{
			name: "wrapped diagnostics",
			err:  fmt.Errorf("run: %w", cli.ErrDiagnosticsFound),
			want: cli.ExitDiagnostics,
		},
		{
			name: "validation error",
			err: errors.Join(errors.New("failed to load configuration"),
				&configloader.ValidationError{Field: "format", Value: "xml", Message: "unknown format"}),
			want: cli.ExitConfigError,
		},
		{
			name: "malformed chktex output",
			err:  fmt.Errorf("parse: %w", chktex.ErrContextBeforeHeader),
			want: cli.ExitConfigError,
		},
		{name: "malformed header", err: chktex.ErrMalformedHeader, want: cli.ExitConfigError},
		{name: "tool failure", err: chktex.ErrToolFailed, want: cli.ExitInternalError},
		{name: "io failure", err: fsutil.ErrPermissionDenied, want: cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}

func TestParseCommand_Stdin(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"parse"}, {"parse", "-"}} {
		out, err := execute(t, exampleOutput, args...)
		require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
		assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))

		assert.True(t, strings.HasPrefix(out,
			"## ChkTeX Action Summary\n\nTotal files: 1, total errors: 1, total warnings: 1\n\n### File: test.tex\n"))
		assert.Contains(t, out, "- **Type**: Error 44\n")
	}
}

func TestParseCommand_Clean(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "\n", "parse")
	require.NoError(t, err)
	assert.Equal(t, "## ChkTeX Action Summary\n\nTotal files: 0, total errors: 0, total warnings: 0\n", out)
}

func TestParseCommand_File(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "chktex.log")
	summary := filepath.Join(dir, "summary.md")
	require.NoError(t, os.WriteFile(input, []byte(exampleOutput), 0o600))

	out, err := execute(t, "", "parse", "--format", "json", "--compact", "--step-summary", summary, input)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Contains(t, out, `"errors":1`)

	content, err := os.ReadFile(summary)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "## ChkTeX Action Summary\n"))
}

func TestParseCommand_Errors(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "stray context\n", "parse")
	require.ErrorIs(t, err, chktex.ErrContextBeforeHeader)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, err = execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.log"))
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(err))

	_, err = execute(t, exampleOutput, "parse", "--format", "xml")
	require.Error(t, err)
}
