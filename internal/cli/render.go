package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/runner"
)

type renderFlags struct {
	format         string
	outDir         string
	jobs           int
	ignore         []string
	detectLang     bool
	debugMatches   bool
	followSymlinks bool
	compact        bool
	dryRun         bool
	verbose        bool
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Convert djot files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	addRenderFlags(cmd, flags)

	return cmd
}

const renderLongDescription = `Convert djot files to HTML (or JSON with --format json).

With no paths, or the single path "-", reads standard input and writes the
result to standard output. Otherwise each file is converted and written
next to its source with the output extension, or mirrored under --out-dir.
Directories are searched for .dj and .djot files.

Examples:
  gojot render < doc.dj              # Convert stdin to stdout
  gojot render docs/                 # Convert a directory tree in place
  gojot render docs/ --out-dir site  # Write output under site/
  gojot render --format json a.dj    # Write a.json
  gojot render --dry-run -v docs/    # Show what would be written`

func addRenderFlags(cmd *cobra.Command, flags *renderFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "html", "output format: html, json")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "o", "", "directory to write output into")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.detectLang, "detect-lang", false, "guess languages of unlabelled code blocks")
	cmd.Flags().BoolVar(&flags.debugMatches, "debug-matches", false, "log each file's match stream at debug level")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse directory symlinks")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "write JSON without indentation")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "convert without writing output files")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list every file in a table")
}

// cliConfig maps the flags the user set onto a config layer.
func (f *renderFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{DryRun: f.dryRun}

	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = f.ignore
	}
	cfg.OutDir = f.outDir
	cfg.Jobs = f.jobs
	setBool(cmd, "detect-lang", f.detectLang, &cfg.DetectLanguage)
	setBool(cmd, "debug-matches", f.debugMatches, &cfg.DebugMatches)
	setBool(cmd, "follow-symlinks", f.followSymlinks, &cfg.FollowSymlinks)
	setBool(cmd, "compact", !f.compact, &cfg.Indent)

	return cfg
}

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cfg, workDir, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}
	conv := newConverter(cfg)

	if readsStdin(args) {
		return eachSource(cmd, cfg, workDir, args, func(path string, content []byte) error {
			return conv.write(ctx, cmd.OutOrStdout(), path, content)
		})
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: config.Enabled(cfg.FollowSymlinks),
		Jobs:           cfg.Jobs,
		OutDir:         cfg.OutDir,
		OutputExt:      cfg.Format.Extension(),
		DryRun:         cfg.DryRun,
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(conv.Convert).Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("render run failed: %w", err)
	}

	st := styles(cmd)
	for _, f := range result.Files {
		if f.Error != nil {
			fmt.Fprint(cmd.ErrOrStderr(), st.FormatFileError(f))
		}
	}

	if flags.verbose {
		table := pretty.NewTableFormatter(st, terminalWidth(cmd), workDir)
		fmt.Fprint(cmd.OutOrStdout(), table.FormatTable(result, cfg.DryRun))
	}
	fmt.Fprint(cmd.OutOrStdout(), st.FormatSummaryOneLine(result.Stats, cfg.DryRun))

	logger.Debug("render run complete",
		logging.FieldFilesConverted, result.Stats.FilesConverted,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
	)

	if result.HasErrors() {
		return ErrConversionFailed
	}
	return nil
}

// terminalWidth returns the width of the command's output terminal, or 0
// when it is not a terminal.
func terminalWidth(cmd *cobra.Command) int {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}
