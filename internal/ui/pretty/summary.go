package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/gojot/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int) string {
	if n == 1 {
		return wordFile
	}
	return wordFiles
}

func bytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Converted 3 files (1.2 kB -> 4.0 kB), 2 written, 1 unchanged, 1 failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, dryRun bool) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No files to convert") + "\n"
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("Converted %d %s", stats.FilesConverted, plural(stats.FilesConverted))) +
			s.Dim.Render(fmt.Sprintf(" (%s -> %s)", bytes(stats.BytesIn), bytes(stats.BytesOut))),
	}

	if dryRun {
		parts = append(parts, s.Warning.Render("dry run, nothing written"))
	} else {
		parts = append(parts, fmt.Sprintf("%d written", stats.FilesWritten))
		if stats.FilesUnchanged > 0 {
			parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", stats.FilesUnchanged)))
		}
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files converted:   " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesConverted)) + "\n")

	if stats.FilesWritten > 0 {
		builder.WriteString("  Files written:     " +
			s.Success.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	}
	if stats.FilesUnchanged > 0 {
		builder.WriteString("  Files unchanged:   " +
			s.Dim.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:      " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")
	builder.WriteString("  Input:             " + s.SummaryValue.Render(bytes(stats.BytesIn)) + "\n")
	builder.WriteString("  Output:            " + s.SummaryValue.Render(bytes(stats.BytesOut)) + "\n")
	builder.WriteString("\n")

	if stats.FilesErrored > 0 {
		builder.WriteString(s.Failure.Render("Conversion failed"))
	} else {
		builder.WriteString(s.Success.Render("Conversion complete"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileError formats a failed file as "path: error: message".
func (s *Styles) FormatFileError(outcome runner.FileOutcome) string {
	return s.FilePath.Render(outcome.Path) + ": " +
		s.Error.Render("error") + ": " +
		s.Message.Render(outcome.Error.Error()) + "\n"
}
