package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/internal/configloader"
	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/config"
)

// loadConfig resolves the effective configuration for cmd, with cliCfg
// holding only the flags the user actually set.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldOutDir, cfg.OutDir,
	)

	return cfg, workDir, nil
}

// setBool copies a boolean flag into dst only when the user set it.
func setBool(cmd *cobra.Command, name string, value bool, dst **bool) {
	if cmd.Flags().Changed(name) {
		*dst = config.Bool(value)
	}
}

// styles returns output styles honoring the --color flag for the command's
// standard output.
func styles(cmd *cobra.Command) *pretty.Styles {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = pretty.ColorAuto
	}
	return pretty.NewStyles(pretty.IsColorEnabled(mode, cmd.OutOrStdout()))
}
