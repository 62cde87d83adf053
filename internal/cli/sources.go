package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/fsutil"
	"github.com/yaklabco/gojot/pkg/runner"
)

// stdinPath names standard input in logs and error messages.
const stdinPath = "<stdin>"

// readsStdin reports whether args select standard input.
func readsStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

// eachSource calls fn with the content of every source named by args, or
// with standard input when there are none. Directories are expanded the
// same way the batch runner expands them.
func eachSource(
	cmd *cobra.Command,
	cfg *config.Config,
	workDir string,
	args []string,
	fn func(path string, content []byte) error,
) error {
	ctx := cmd.Context()

	if readsStdin(args) {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		return fn(stdinPath, content)
	}

	files, err := runner.Discover(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: config.Enabled(cfg.FollowSymlinks),
	})
	if err != nil {
		return fmt.Errorf("discover files: %w", err)
	}

	for _, path := range files {
		content, _, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			return err
		}
		if err := fn(path, content); err != nil {
			return err
		}
	}
	return nil
}
