package cli_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2kun/chktex-action/internal/cli"
)

// fakeChkTeX reports one warning on line 1 of every file it is given.
const fakeChkTeX = `for last; do :; done
printf 'Warning 1 in %s line 1: Command terminated with space.\n\\foo bar\n' "$last"`

type workspace struct {
	dir     string
	binary  string
	summary string
}

func newWorkspace(t *testing.T, script string, files ...string) *workspace {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake chktex is a shell script")
	}

	ws := &workspace{
		dir:     t.TempDir(),
		binary:  filepath.Join(t.TempDir(), "chktex"),
		summary: filepath.Join(t.TempDir(), "summary.md"),
	}
	require.NoError(t, os.WriteFile(ws.binary, []byte("#!/bin/sh\n"+script+"\n"), 0o755))

	for _, name := range files {
		path := filepath.Join(ws.dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("\\documentclass{article}\n"), 0o600))
	}

	return ws
}

func (ws *workspace) args(extra ...string) []string {
	return append([]string{
		"run",
		"--no-env",
		"--color", "never",
		"--workspace", ws.dir,
		"--chktex", ws.binary,
		"--step-summary", ws.summary,
	}, extra...)
}

func TestIntegration_RunFindsDiagnostics(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "paper.tex", "chapters/intro.tex", "README.md")

	out, err := execute(t, "", ws.args("--format", "markdown")...)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Equal(t, cli.ExitDiagnostics, cli.ExitCode(err))

	assert.True(t, strings.HasPrefix(out,
		"## ChkTeX Action Summary\n\nTotal files: 2, total errors: 0, total warnings: 2\n"))
	assert.Contains(t, out, "### File: intro.tex\n")
	assert.Contains(t, out, "### File: paper.tex\n")

	summary, err := os.ReadFile(ws.summary)
	require.NoError(t, err)
	assert.Equal(t, out, string(summary))
}

func TestIntegration_RunClean(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, "exit 0", "paper.tex")

	out, err := execute(t, "", ws.args()...)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found (1 file checked)")

	summary, err := os.ReadFile(ws.summary)
	require.NoError(t, err)
	assert.Equal(t, "## ChkTeX Action Summary\n\nTotal files: 0, total errors: 0, total warnings: 0\n", string(summary))
}

func TestIntegration_RunNoFiles(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "README.md")

	_, err := execute(t, "", ws.args()...)
	require.NoError(t, err)

	summary, err := os.ReadFile(ws.summary)
	require.NoError(t, err)
	assert.Equal(t, "## ChkTeX Action Summary\n\nNo .tex files found.\n", string(summary))
}

func TestIntegration_ProjectConfig(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "paper.tex", "drafts/old.tex")
	require.NoError(t, os.WriteFile(filepath.Join(ws.dir, ".chktex-action.yml"),
		[]byte("ignore:\n  - \"drafts/**\"\n"), 0o600))

	out, err := execute(t, "", ws.args("--format", "markdown")...)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Contains(t, out, "Total files: 1, total errors: 0, total warnings: 1")
	assert.NotContains(t, out, "old.tex")
}

func TestIntegration_IgnoreFlag(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "paper.tex", "vendor/style.tex")

	out, err := execute(t, "", ws.args("--format", "markdown", "--ignore", "vendor/**")...)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)
	assert.Contains(t, out, "Total files: 1, total errors: 0, total warnings: 1")
}

func TestIntegration_OutputFile(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "paper.tex")
	output := filepath.Join(t.TempDir(), "report.json")

	out, err := execute(t, "", ws.args("--format", "json", "--output", output)...)
	require.ErrorIs(t, err, cli.ErrDiagnosticsFound)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, out, string(content))
	assert.Contains(t, string(content), `"warnings": 1`)
}

func TestIntegration_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "paper.tex")

	_, err := execute(t, "", ws.args("--format", "xml")...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))

	_, err = execute(t, "", ws.args("--config", filepath.Join(t.TempDir(), "missing.yml"))...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_MissingChkTeX(t *testing.T) {
	t.Parallel()

	ws := newWorkspace(t, fakeChkTeX, "paper.tex")
	ws.binary = filepath.Join(t.TempDir(), "no-such-chktex")

	_, err := execute(t, "", ws.args()...)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(err))
}
