package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/pkg/config"
)

func runInitCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand(BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"init"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// withTerminal fakes an interactive stdin for the duration of the test.
func withTerminal(t *testing.T, interactive bool) {
	t.Helper()

	prev := stdinIsTerminal
	stdinIsTerminal = func() bool { return interactive }
	t.Cleanup(func() { stdinIsTerminal = prev })
}

func TestInit_CreatesTemplate(t *testing.T) {
	withTerminal(t, false)
	path := filepath.Join(t.TempDir(), ".gojot.yml")

	out, err := runInitCmd(t, "", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "created configuration file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	cfg, err := config.FromYAML(data)
	require.NoError(t, err, "template must be loadable")
	assert.Equal(t, config.FormatHTML, cfg.Format)
	assert.Nil(t, cfg.Extensions, "other settings stay commented out")
}

func TestInit_Full(t *testing.T) {
	withTerminal(t, false)
	path := filepath.Join(t.TempDir(), "gojot.yaml")

	_, err := runInitCmd(t, "", "--full", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, config.FormatHTML, cfg.Format)
}

func TestInit_ExistingFile(t *testing.T) {
	tests := []struct {
		name        string
		interactive bool
		stdin       string
		args        []string
		wantErr     error
		overwritten bool
	}{
		{name: "refuses without force", wantErr: ErrInvalidUsage},
		{name: "force overwrites", args: []string{"--force"}, overwritten: true},
		{name: "prompt accepted", interactive: true, stdin: "y\n", overwritten: true},
		{name: "prompt declined", interactive: true, stdin: "n\n", wantErr: errAborted},
		{name: "prompt defaults to no", interactive: true, stdin: "", wantErr: errAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withTerminal(t, tt.interactive)
			path := filepath.Join(t.TempDir(), ".gojot.yml")
			require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

			_, err := runInitCmd(t, tt.stdin, append([]string{"--output", path}, tt.args...)...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.overwritten, string(data) != "# mine\n")
		})
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	ok, err := confirm(strings.NewReader(" YES \n"), &out, "go? ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "go? ", out.String())
}
