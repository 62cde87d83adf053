package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/pkg/config"
)

func newASTCommand() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "ast [paths...]",
		Short: "Print the syntax tree of djot files as JSON",
		Long: `Parse djot input and print its document tree as JSON on standard output.

With no paths, or the single path "-", reads standard input. Each file
produces one JSON document; with --compact each document is one line.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg := &config.Config{Format: config.FormatJSON}
			setBool(cmd, "compact", !compact, &cliCfg.Indent)

			cfg, workDir, err := loadConfig(cmd, cliCfg)
			if err != nil {
				return err
			}
			conv := newConverter(cfg)

			return eachSource(cmd, cfg, workDir, args, func(path string, content []byte) error {
				return conv.write(cmd.Context(), cmd.OutOrStdout(), path, content)
			})
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print each document on one line")

	return cmd
}
