package reporter_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/j2kun/chktex-action/pkg/analysis"
	"github.com/j2kun/chktex-action/pkg/chktex"
	"github.com/j2kun/chktex-action/pkg/reporter"
)

func exampleDiagnostics() []chktex.Diagnostic {
	return []chktex.Diagnostic{
		{
			Level:   chktex.LevelWarning,
			Number:  1,
			Path:    "test.tex",
			Line:    13,
			Message: "Command terminated with space.",
			Context: []string{`\command {arg}`},
		},
		{
			Level:   chktex.LevelError,
			Number:  44,
			Path:    "test.tex",
			Line:    20,
			Message: "You should enclose the previous parenthesis.",
			Context: []string{},
		},
	}
}

func TestRenderMarkdown_Example(t *testing.T) {
	t.Parallel()

	diags := exampleDiagnostics()
	got := reporter.RenderMarkdown(diags, analysis.Analyze(diags))

	want := "## ChkTeX Action Summary\n" +
		"\n" +
		"Total files: 1, total errors: 1, total warnings: 1\n" +
		"\n" +
		"### File: test.tex\n" +
		"\n" +
		"- **Type**: Warning 1\n" +
		"- **Line**: 13\n" +
		"- **Message**: Command terminated with space.\n" +
		"- **Context**:\n" +
		"\n" +
		"```tex\n" +
		"\\command {arg}\n" +
		"```\n" +
		"\n" +
		"### File: test.tex\n" +
		"\n" +
		"- **Type**: Error 44\n" +
		"- **Line**: 20\n" +
		"- **Message**: You should enclose the previous parenthesis.\n" +
		"- **Context**:\n" +
		"\n" +
		"```text\n" +
		"No context\n" +
		"```\n"

	assert.Equal(t, want, got)
}

func TestRenderMarkdown_NoDiagnostics(t *testing.T) {
	t.Parallel()

	got := reporter.RenderMarkdown(nil, analysis.Analysis{})

	assert.Equal(t, "## ChkTeX Action Summary\n\nTotal files: 0, total errors: 0, total warnings: 0\n", got)
}

func TestRenderMarkdown_Deterministic(t *testing.T) {
	t.Parallel()

	diags := exampleDiagnostics()
	an := analysis.Analyze(diags)

	assert.Equal(t, reporter.RenderMarkdown(diags, an), reporter.RenderMarkdown(diags, an))
}

func TestRenderMarkdown_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	diags := exampleDiagnostics()
	diags[0].Message = "Use `\\ldots` instead."
	before := make([]chktex.Diagnostic, len(diags))
	copy(before, diags)
	before[0].Context = append([]string(nil), diags[0].Context...)

	_ = reporter.RenderMarkdown(diags, analysis.Analyze(diags))

	assert.Equal(t, before, diags)
}

func TestRenderMarkdown_UsesTotalsAsGiven(t *testing.T) {
	t.Parallel()

	got := reporter.RenderMarkdown(exampleDiagnostics(), analysis.Analysis{Files: 7, Errors: 8, Warnings: 9})

	assert.Contains(t, got, "Total files: 7, total errors: 8, total warnings: 9")
}

func TestRenderMarkdown_MessageBackticksStayLiteral(t *testing.T) {
	t.Parallel()

	diags := []chktex.Diagnostic{{
		Level:   chktex.LevelWarning,
		Number:  18,
		Path:    "quotes.tex",
		Line:    3,
		Message: "Use either `` or '' as an alternative to `\"'.",
	}}

	src := []byte(reporter.RenderMarkdown(diags, analysis.Analyze(diags)))
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	codeSpans := 0
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && node.Kind() == ast.KindCodeSpan {
			codeSpans++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	assert.Zero(t, codeSpans)
}

func TestRenderMarkdown_ContextFenceSurvivesBackticks(t *testing.T) {
	t.Parallel()

	ctxLines := []string{"```", "````nested````"}
	diags := []chktex.Diagnostic{{
		Level:   chktex.LevelWarning,
		Number:  1,
		Path:    "fence.tex",
		Line:    1,
		Message: "Command terminated with space.",
		Context: ctxLines,
	}}

	src := []byte(reporter.RenderMarkdown(diags, analysis.Analyze(diags)))
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var blocks []*ast.FencedCodeBlock
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if block, ok := node.(*ast.FencedCodeBlock); ok && entering {
			blocks = append(blocks, block)
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	var body bytes.Buffer
	lines := blocks[0].Lines()
	for i := range lines.Len() {
		segment := lines.At(i)
		body.Write(segment.Value(src))
	}

	assert.Equal(t, strings.Join(ctxLines, "\n")+"\n", body.String())
	assert.Equal(t, "tex", string(blocks[0].Language(src)))
}

func TestEscapeBackticks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no backticks", input: "plain message", want: "plain message"},
		{name: "single", input: "use `x`", want: "use \\`x\\`"},
		{name: "double", input: "``", want: "\\`\\`"},
		{name: "backslash before backtick", input: "\\`", want: "\\\\\\`"},
		{name: "backslash elsewhere", input: "\\ldots and `", want: "\\ldots and \\`"},
		{name: "trailing backslash", input: "` \\", want: "\\` \\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reporter.EscapeBackticks(tt.input))
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "## ChkTeX Action Summary\n\nNo .tex files found.\n", reporter.RenderEmpty())
}

func TestMarkdownReporter_Report(t *testing.T) {
	t.Parallel()

	diags := exampleDiagnostics()
	an := analysis.Analyze(diags)

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatMarkdown})
	require.NoError(t, err)

	require.NoError(t, rep.Report(context.Background(), diags, an))
	assert.Equal(t, reporter.RenderMarkdown(diags, an), buf.String())
}
