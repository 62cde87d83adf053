package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojot/pkg/config"
	"github.com/yaklabco/gojot/pkg/parser/jot"
)

func newMatchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches [paths...]",
		Short: "Print the annotated match stream of djot files",
		Long: `Tokenize djot input and print its match stream, one match per line:
annotation, 1-based byte range, and the quoted source text.

Span openers and closers are colored when color is enabled. With no paths,
or the single path "-", reads standard input.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, workDir, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			st := styles(cmd)
			multiple := len(args) > 1
			return eachSource(cmd, cfg, workDir, args, func(path string, content []byte) error {
				if multiple {
					fmt.Fprintln(cmd.OutOrStdout(), st.FilePath.Render("==> "+path+" <=="))
				}
				subject := jot.Subject(string(content))
				fmt.Fprint(cmd.OutOrStdout(), st.FormatMatches(jot.Tokenize(subject), subject))
				return nil
			})
		},
	}

	return cmd
}
