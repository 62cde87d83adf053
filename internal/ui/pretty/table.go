package pretty

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/yaklabco/gojot/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	heavySeparator   = "="
	statusWritten    = "written"
	statusUnchanged  = "unchanged"
	statusDryRun     = "dry run"
	statusFailed     = "failed"
	defaultTermWidth = 100
)

// tableHeaders are the column titles of the file table.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tableHeaders = []string{"FILE", "OUTPUT", "IN", "OUT", "STATUS"}

// TableFormatter formats per-file outcomes as a styled table.
type TableFormatter struct {
	styles     *Styles
	termWidth  int
	workingDir string
}

// NewTableFormatter creates a new table formatter. Paths under workingDir
// are shown relative to it.
func NewTableFormatter(styles *Styles, termWidth int, workingDir string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{styles: styles, termWidth: termWidth, workingDir: workingDir}
}

// FormatTable formats runner results as a table, one row per file.
func (t *TableFormatter) FormatTable(result *runner.Result, dryRun bool) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(result.Files))
	for _, f := range result.Files {
		rows = append(rows, []string{
			t.relative(f.Path),
			t.relative(f.OutputPath),
			humanize.Bytes(uint64(max(f.BytesIn, 0))),
			humanize.Bytes(uint64(max(f.Bytes, 0))),
			status(f, dryRun),
		})
	}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var builder strings.Builder
	builder.WriteString(t.line(tableHeaders, widths, func(int, string) lipgloss.Style { return t.styles.TableHeader }))
	total := 0
	for _, w := range widths {
		total += w + tablePadding
	}
	builder.WriteString(t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, min(total, t.termWidth))))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.line(row, widths, t.cellStyle))
	}
	return builder.String()
}

func (t *TableFormatter) line(cells []string, widths []int, style func(int, string) lipgloss.Style) string {
	var sb strings.Builder
	for i, cell := range cells {
		pad := widths[i] - lipgloss.Width(cell)
		sb.WriteString(style(i, cell).Render(cell))
		if i < len(cells)-1 {
			sb.WriteString(strings.Repeat(" ", pad+tablePadding))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

func (t *TableFormatter) cellStyle(col int, cell string) lipgloss.Style {
	if col != len(tableHeaders)-1 {
		return t.styles.Message
	}
	switch cell {
	case statusFailed:
		return t.styles.Failure
	case statusWritten:
		return t.styles.Success
	default:
		return t.styles.Dim
	}
}

func (t *TableFormatter) relative(path string) string {
	if path == "" || t.workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(t.workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func status(f runner.FileOutcome, dryRun bool) string {
	switch {
	case f.Error != nil:
		return statusFailed
	case dryRun:
		return statusDryRun
	case f.Written:
		return statusWritten
	default:
		return statusUnchanged
	}
}
