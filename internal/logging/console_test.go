package logging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/j2kun/chktex-action/internal/logging"
)

func TestConsole_Actions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		debug bool
		emit  func(c *logging.Console)
		want  string
	}{
		{
			name: "notice",
			emit: func(c *logging.Console) { c.Notice("No .tex files found.") },
			want: "::notice title=ChkTeX Action::No .tex files found.\n",
		},
		{
			name: "error",
			emit: func(c *logging.Console) { c.Error("Total files: 1, total errors: 1, total warnings: 1") },
			want: "::error title=ChkTeX Action::Total files: 1, total errors: 1, total warnings: 1\n",
		},
		{
			name: "warning escapes data",
			emit: func(c *logging.Console) { c.Warning("100% broken\nsecond line") },
			want: "::warning title=ChkTeX Action::100%25 broken%0Asecond line\n",
		},
		{
			name: "error pinned to a line",
			emit: func(c *logging.Console) {
				c.Annotate(logging.CommandError, &logging.Location{File: "paper/main.tex", Line: 20}, "Error 44")
			},
			want: "::error file=paper/main.tex,line=20,title=ChkTeX Action::Error 44\n",
		},
		{
			name: "property escaping",
			emit: func(c *logging.Console) {
				c.Annotate(logging.CommandWarning, &logging.Location{File: "a,b:c.tex"}, "w")
			},
			want: "::warning file=a%2Cb%3Ac.tex,title=ChkTeX Action::w\n",
		},
		{
			name: "debug dropped when off",
			emit: func(c *logging.Console) { c.Debug("hidden") },
			want: "",
		},
		{
			name:  "debug written when on",
			debug: true,
			emit:  func(c *logging.Console) { c.Debug("shown") },
			want:  "::debug::shown\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			console := logging.NewConsole(&out, logging.NewWithWriter(&bytes.Buffer{}, "debug"), true, tt.debug)
			tt.emit(console)

			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestConsole_LocalFallsBackToLogger(t *testing.T) {
	t.Parallel()

	var out, logs bytes.Buffer
	console := logging.NewConsole(&out, logging.NewWithWriter(&logs, "info"), false, false)

	console.Annotate(logging.CommandWarning, &logging.Location{File: "main.tex", Line: 3}, "Command terminated with space.")
	console.Debug("ignored")

	assert.Empty(t, out.String())
	assert.Contains(t, logs.String(), "Command terminated with space.")
	assert.Contains(t, logs.String(), "path=main.tex")
	assert.Contains(t, logs.String(), "line=3")
}
