package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpFormatter_FlagTable(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "demo", Short: "Demo command", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().StringP("out-dir", "o", "", "write output to `dir`")
	cmd.Flags().Int("jobs", 4, "worker count")
	cmd.Flags().Bool("quiet", false, "say less")
	cmd.Flags().Bool("secret", false, "hidden")
	require.NoError(t, cmd.Flags().MarkHidden("secret"))
	cmd.Flags().String("color", "never", "")

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	NewHelpFormatter().ApplyToCommand(cmd)
	require.NoError(t, cmd.Help())

	out := buf.String()
	assert.Contains(t, out, "Demo command\n\nUsage:\n  demo [flags]\n\nFlags:\n")
	assert.Contains(t, out, "\n  -o, --out-dir dir    write output to dir\n")
	assert.Contains(t, out, "\n      --jobs int       worker count (default 4)\n")
	assert.Contains(t, out, "\n      --quiet          say less\n")
	assert.Contains(t, out, "\n      --color string    (default never)\n")
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "Global Flags:")
}

func TestHelpFormatter_Subcommands(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "tool", Long: "  Tool does things.  "}
	root.PersistentFlags().String("color", "never", "colors")
	root.AddCommand(&cobra.Command{Use: "go", Short: "Go somewhere", Run: func(*cobra.Command, []string) {}})

	var buf bytes.Buffer
	root.SetOut(&buf)
	NewHelpFormatter().ApplyToCommand(root)
	require.NoError(t, root.Help())

	out := buf.String()
	assert.Contains(t, out, "Tool does things.\n\nUsage:\n  tool [command]\n")
	assert.Contains(t, out, "Commands:\n  go")
	assert.Contains(t, out, "Go somewhere")
	assert.Contains(t, out, `Use "tool [command] --help"`)
}

func TestHelpFormatter_UsageOmitsDescription(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "demo", Short: "Demo command", Run: func(*cobra.Command, []string) {}}
	cmd.Flags().String("color", "never", "")

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	NewHelpFormatter().ApplyToCommand(cmd)
	require.NoError(t, cmd.Usage())

	assert.NotContains(t, buf.String(), "Demo command")
	assert.Contains(t, buf.String(), "Usage:\n  demo [flags]")
}
