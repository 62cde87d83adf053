package pretty_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojot/internal/ui/pretty"
	"github.com/yaklabco/gojot/pkg/annot"
	"github.com/yaklabco/gojot/pkg/runner"
)

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", &buf))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "non-file writers are never terminals")
}

func TestIsColorEnabled_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
	assert.True(t, pretty.IsColorEnabled("always", &bytes.Buffer{}))
}

func TestFormatMatches_PlainMatchesFormatAll(t *testing.T) {
	subject := "*a*"
	matches := []annot.Match{
		annot.New(0, 0, annot.Add(annot.Para)),
		annot.New(0, 1, annot.Add(annot.Strong)),
		annot.New(1, 2, annot.Of(annot.Str)),
		annot.New(2, 3, annot.Sub(annot.Strong)),
		annot.New(3, 3, annot.Sub(annot.Para)),
	}

	styles := pretty.NewStyles(false)
	assert.Equal(t, annot.FormatAll(matches, subject), styles.FormatMatches(matches, subject))
}

func TestFormatMatches_Empty(t *testing.T) {
	assert.Empty(t, pretty.NewStyles(true).FormatMatches(nil, ""))
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name     string
		stats    runner.Stats
		dryRun   bool
		contains []string
		excludes []string
	}{
		{
			name:     "no files",
			stats:    runner.Stats{},
			contains: []string{"No files to convert"},
		},
		{
			name: "written and unchanged",
			stats: runner.Stats{
				FilesDiscovered: 3, FilesConverted: 3, FilesWritten: 2, FilesUnchanged: 1,
				BytesIn: 1200, BytesOut: 4000,
			},
			contains: []string{"Converted 3 files", "(1.2 kB -> 4.0 kB)", "2 written", "1 unchanged"},
			excludes: []string{"failed"},
		},
		{
			name:     "single file failed",
			stats:    runner.Stats{FilesDiscovered: 2, FilesConverted: 1, FilesErrored: 1, FilesWritten: 1},
			contains: []string{"Converted 1 file ", "1 failed"},
		},
		{
			name:     "dry run",
			stats:    runner.Stats{FilesDiscovered: 1, FilesConverted: 1},
			dryRun:   true,
			contains: []string{"dry run"},
			excludes: []string{"written"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := styles.FormatSummaryOneLine(tt.stats, tt.dryRun)
			assert.True(t, strings.HasSuffix(line, "\n"))
			for _, want := range tt.contains {
				assert.Contains(t, line, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, line, unwanted)
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	ok := styles.FormatSummary(runner.Stats{FilesDiscovered: 4, FilesConverted: 4, FilesWritten: 4, BytesOut: 2048})
	assert.Contains(t, ok, "Summary")
	assert.Contains(t, ok, "Files written:     4")
	assert.Contains(t, ok, "2.0 kB")
	assert.Contains(t, ok, "Conversion complete")
	assert.NotContains(t, ok, "Files failed:")

	failed := styles.FormatSummary(runner.Stats{FilesDiscovered: 1, FilesErrored: 1})
	assert.Contains(t, failed, "Files failed:      1")
	assert.Contains(t, failed, "Conversion failed")
}

func TestFormatFileError(t *testing.T) {
	styles := pretty.NewStyles(false)

	got := styles.FormatFileError(runner.FileOutcome{Path: "a.dj", Error: errors.New("boom")})
	assert.Equal(t, "a.dj: error: boom\n", got)
}

func TestTableFormatter(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, 0, "/work")

	assert.Empty(t, formatter.FormatTable(nil, false))

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/work/a.dj", OutputPath: "/work/a.html", BytesIn: 10, Bytes: 20, Written: true},
		{Path: "/work/docs/long-name.dj", OutputPath: "/work/docs/long-name.html", BytesIn: 5, Bytes: 7},
		{Path: "/elsewhere/b.dj", Error: errors.New("nope")},
	}}

	out := formatter.FormatTable(result, false)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.True(t, strings.HasPrefix(lines[0], "FILE"))
	assert.True(t, strings.HasPrefix(lines[1], "="))
	assert.True(t, strings.HasPrefix(lines[2], "a.dj"))
	assert.True(t, strings.HasSuffix(lines[2], "written"))
	assert.True(t, strings.HasPrefix(lines[3], "docs/long-name.dj"))
	assert.True(t, strings.HasSuffix(lines[3], "unchanged"))
	assert.True(t, strings.HasPrefix(lines[4], "/elsewhere/b.dj"))
	assert.True(t, strings.HasSuffix(lines[4], "failed"))

	// Columns line up on the widest cell.
	assert.Equal(t, strings.Index(lines[0], "OUTPUT"), strings.Index(lines[2], "a.html"))

	dry := formatter.FormatTable(result, true)
	assert.Contains(t, dry, "dry run")
}
