package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/internal/cli"
	"github.com/yaklabco/gojot/pkg/annot"
	"github.com/yaklabco/gojot/pkg/parser/jot"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "v1.2.3", Commit: "abc123", Date: "2026-01-01"}
}

// execute runs the root command with args and stdin, returning stdout,
// stderr, and the command error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--color", "never"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	require.NotNil(t, cmd)

	assert.Equal(t, "gojot", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"render", "ast", "matches", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRenderCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	render, _, err := cmd.Find([]string{"render"})
	require.NoError(t, err)

	for _, flag := range []string{
		"format", "out-dir", "jobs", "ignore", "detect-lang",
		"debug-matches", "follow-symlinks", "compact", "dry-run", "verbose",
	} {
		assert.NotNil(t, render.Flags().Lookup(flag), flag)
	}
}

func TestRender_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "*hi* there", "render")
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>hi</strong> there</p>\n", stdout)

	stdout, _, err = execute(t, "x", "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>\n", stdout)
}

func TestRender_StdinJSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "hi", "render", "--format", "json", "--compact")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"tag":"doc","children":[{"tag":"para","children":[{"tag":"str","text":"hi"}]}],"references":{}}`,
		stdout)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
}

func TestRender_DetectLanguage(t *testing.T) {
	t.Parallel()

	input := "```\npackage main\n\nfunc main() {}\n```\n"

	stdout, _, err := execute(t, input, "render", "--detect-lang")
	require.NoError(t, err)
	assert.Contains(t, stdout, `<code class="language-go">`)

	stdout, _, err = execute(t, input, "render")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "language-")
}

func TestRender_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.dj"), "_a_\n")
	writeFile(t, filepath.Join(dir, "sub", "b.djot"), "b\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "skip\n")
	outDir := filepath.Join(dir, "out")

	stdout, stderr, err := execute(t, "", "render", dir, "--out-dir", outDir)
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "Converted 2 files")
	assert.Contains(t, stdout, "2 written")

	got, err := os.ReadFile(filepath.Join(outDir, "a.html"))
	require.NoError(t, err)
	assert.Equal(t, "<p><em>a</em></p>\n", string(got))

	assert.FileExists(t, filepath.Join(outDir, "sub", "b.html"))
	assert.NoFileExists(t, filepath.Join(outDir, "notes.html"))

	stdout, _, err = execute(t, "", "render", dir, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 unchanged")
}

func TestRender_JSONNextToSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "doc.dj")
	writeFile(t, src, "[a](/u)\n")

	_, _, err := execute(t, "", "render", "--format", "json", src)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "doc.json"))
	require.NoError(t, err)
	assert.Contains(t, string(got), `"destination": "/u"`)
}

func TestRender_DryRunVerbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.dj"), "a\n")

	stdout, _, err := execute(t, "", "render", "--dry-run", "-v", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "FILE")
	assert.Contains(t, stdout, "dry run")
	assert.NoFileExists(t, filepath.Join(dir, "a.html"))
}

func TestRender_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	writeFile(t, page, "x\n")

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "missing path", args: []string{"render", filepath.Join(dir, "missing.dj")}, wantCode: cli.ExitIOError},
		{name: "invalid format", args: []string{"render", "--format", "pdf", "-"}, wantCode: cli.ExitConfigError},
		{name: "unknown flag", args: []string{"render", "--nope"}, wantCode: cli.ExitInvalidUsage},
		{name: "output would replace input", args: []string{"render", page}, wantCode: cli.ExitConversionErrors},
		{name: "missing config file", args: []string{"--config", filepath.Join(dir, "none.yml"), "render", "-"}, wantCode: cli.ExitConfigError},
		{name: "version takes no args", args: []string{"version", "extra"}, wantCode: cli.ExitInvalidUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err), "error: %v", err)
		})
	}
}

func TestRender_FailedFileIsReported(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	writeFile(t, page, "x\n")

	stdout, stderr, err := execute(t, "", "render", page)
	require.ErrorIs(t, err, cli.ErrConversionFailed)
	assert.Contains(t, stderr, page+": error:")
	assert.Contains(t, stdout, "1 failed")
}

func TestAST(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "[a](/u)", "ast")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"tag": "link"`)
	assert.Contains(t, stdout, `"destination": "/u"`)

	stdout, _, err = execute(t, "a", "ast", "--compact")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))
}

func TestAST_Files(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.dj"), "a\n")
	writeFile(t, filepath.Join(dir, "b.dj"), "b\n")

	stdout, _, err := execute(t, "", "ast", "--compact", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"text":"a"`)
	assert.Contains(t, lines[1], `"text":"b"`)
}

func TestMatches(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "*a*", "matches")
	require.NoError(t, err)

	subject := jot.Subject("*a*")
	assert.Equal(t, annot.FormatAll(jot.Tokenize(subject), subject), stdout)
}

func TestMatches_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.dj")
	b := filepath.Join(dir, "b.dj")
	writeFile(t, a, "a\n")
	writeFile(t, b, "b\n")

	stdout, _, err := execute(t, "", "matches", a, b)
	require.NoError(t, err)
	assert.Contains(t, stdout, "==> "+a+" <==")
	assert.Contains(t, stdout, "==> "+b+" <==")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "v1.2.3")
	assert.Contains(t, stdout, "abc123")
}

func TestHelpIsStyled(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "render", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--out-dir")
	assert.Contains(t, stdout, "Global Flags:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, cli.ExitSuccess, cli.ExitCode(nil))
	assert.Equal(t, cli.ExitConversionErrors, cli.ExitCode(cli.ErrConversionFailed))
	assert.Equal(t, cli.ExitInternalError, cli.ExitCode(errors.New("boom")))
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(&os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}))
}
