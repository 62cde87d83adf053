// Package pretty formats gojot's terminal output: match dumps, conversion
// summaries and file tables, styled with Lipgloss when color is on.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ANSI palette indices.
const (
	red    = lipgloss.Color("9")
	green  = lipgloss.Color("10")
	yellow = lipgloss.Color("11")
	pink   = lipgloss.Color("13")
	silver = lipgloss.Color("7")
	grey   = lipgloss.Color("8")
)

// Styles groups the styles used by the formatters in this package.
// A zero-color Styles renders every string unchanged.
type Styles struct {
	Error    lipgloss.Style
	Warning  lipgloss.Style
	FilePath lipgloss.Style
	Message  lipgloss.Style

	// Match dumps: "+" lines, "-" lines and atoms.
	MatchOpen  lipgloss.Style
	MatchClose lipgloss.Style
	MatchAtom  lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is off.
func NewStyles(color bool) *Styles {
	plain := lipgloss.NewStyle()
	s := &Styles{
		Error: plain, Warning: plain, FilePath: plain, Message: plain,
		MatchOpen: plain, MatchClose: plain, MatchAtom: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableSeparator: plain, Dim: plain,
	}
	if !color {
		return s
	}

	bold := plain.Bold(true)
	s.Error = bold.Foreground(red)
	s.Warning = bold.Foreground(yellow)
	s.FilePath = bold
	s.MatchOpen = plain.Foreground(green)
	s.MatchClose = plain.Foreground(pink)
	s.MatchAtom = plain.Foreground(silver)
	s.SummaryTitle = bold
	s.Success = bold.Foreground(green)
	s.Failure = bold.Foreground(red)
	s.TableHeader = bold.Foreground(silver)
	s.TableSeparator = plain.Foreground(grey)
	s.Dim = plain.Foreground(grey)
	return s
}

// IsColorEnabled resolves a color mode for writer. In auto mode color needs
// a terminal and an unset NO_COLOR (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
