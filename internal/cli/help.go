package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gojot/internal/ui/pretty"
)

// helpTemplate is shared by help and usage output. Usage omits the long
// description.
const helpTemplate = `{{if not .Usage}}{{with (or .Cmd.Long .Cmd.Short)}}{{trim .}}

{{end}}{{end}}{{heading "Usage:"}}{{if .Cmd.Runnable}}
  {{command .Cmd.UseLine}}{{end}}{{if .Cmd.HasAvailableSubCommands}}
  {{command .Cmd.CommandPath}} [command]{{end}}{{if .Cmd.HasExample}}

{{heading "Examples:"}}
{{dim .Cmd.Example}}{{end}}{{if .Cmd.HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Cmd.Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{command (pad .Name $.Cmd.NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .Cmd.HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .Cmd.LocalFlags}}{{end}}{{if .Cmd.HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .Cmd.InheritedFlags}}{{end}}{{if .Cmd.HasAvailableSubCommands}}

Use "{{.Cmd.CommandPath}} [command] --help" for more information about a command.{{end}}
`

// HelpFormatter renders styled help and usage text for Cobra commands.
type HelpFormatter struct {
	heading lipgloss.Style
	command lipgloss.Style
	flag    lipgloss.Style
	dim     lipgloss.Style
	tmpl    *template.Template
}

// NewHelpFormatter creates a help formatter. Colors follow each command's
// --color flag and the writer the text goes to.
func NewHelpFormatter() *HelpFormatter {
	h := &HelpFormatter{}
	h.tmpl = template.Must(template.New("help").Funcs(template.FuncMap{
		"heading": func(s string) string { return h.heading.Render(s) },
		"command": func(s string) string { return h.command.Render(s) },
		"dim":     func(s string) string { return h.dim.Render(s) },
		"flags":   h.flagTable,
		"pad":     pad,
		"trim":    strings.TrimSpace,
	}).Parse(helpTemplate))
	return h
}

func (h *HelpFormatter) setColor(color bool) {
	plain := lipgloss.NewStyle()
	h.heading, h.command, h.flag, h.dim = plain, plain, plain, plain
	if color {
		h.heading = plain.Foreground(lipgloss.Color("11")).Bold(true)
		h.command = plain.Foreground(lipgloss.Color("14")).Bold(true)
		h.flag = plain.Foreground(lipgloss.Color("12"))
		h.dim = plain.Foreground(lipgloss.Color("8"))
	}
}

// ApplyToCommand installs the formatter on cmd. Subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.write(c.OutOrStderr(), c, true)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.write(c.OutOrStdout(), c, false); err != nil {
			c.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) write(w io.Writer, cmd *cobra.Command, usage bool) error {
	data := struct {
		Cmd   *cobra.Command
		Usage bool
	}{Cmd: cmd, Usage: usage}

	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		mode = pretty.ColorAuto
	}
	h.setColor(pretty.IsColorEnabled(mode, w))

	if err := h.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render help: %w", err)
	}
	return nil
}

// flagTable lays out one flag per line with descriptions aligned.
func (h *HelpFormatter) flagTable(flags *pflag.FlagSet) string {
	type row struct {
		names string
		width int
		usage string
	}

	var rows []row
	widest := 0
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}

		names := "    --" + f.Name
		if f.Shorthand != "" {
			names = "-" + f.Shorthand + ", --" + f.Name
		}
		varname, usage := pflag.UnquoteUsage(f)
		r := row{names: h.flag.Render(names), width: len(names), usage: usage}
		if varname != "" {
			r.names += " " + h.dim.Render(varname)
			r.width += 1 + len(varname)
		}
		if showDefault(f) {
			r.usage += h.dim.Render(fmt.Sprintf(" (default %s)", f.DefValue))
		}

		widest = max(widest, r.width)
		rows = append(rows, r)
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, "  "+r.names+strings.Repeat(" ", widest-r.width+3)+r.usage)
	}
	return strings.Join(lines, "\n")
}

func showDefault(f *pflag.Flag) bool {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return false
	}
	return true
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
