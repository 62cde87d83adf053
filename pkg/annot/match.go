package annot

import (
	"fmt"
	"strings"
)

// Match is an annotated half-open byte range [Start, End) of the subject.
type Match struct {
	Start int
	End   int
	Annot Annot
}

// New creates a match over [start, end).
func New(start, end int, a Annot) Match {
	return Match{Start: start, End: end, Annot: a}
}

// Is reports whether the match carries annotation a.
func (m Match) Is(a Annot) bool {
	return m.Annot == a
}

// IsAtom reports whether the match carries the given atom.
func (m Match) IsAtom(a Atom) bool {
	return m.Annot == Of(a)
}

// Len returns the width of the match in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// Text returns the slice of subject covered by the match.
func (m Match) Text(subject string) string {
	return subject[m.Start:m.End]
}

// debugColumn is the width of the annotation and range column in Format.
const debugColumn = 20

// Format renders a match as a debug line: annotation, 1-based inclusive
// range, and the quoted slice of subject.
func Format(m Match, subject string) string {
	end := m.End
	if end <= m.Start {
		end = m.Start + 1
	}
	head := fmt.Sprintf("%s %d-%d", m.Annot, m.Start+1, end)
	return fmt.Sprintf("%-*s %q", debugColumn, head, m.Text(subject))
}

// FormatAll renders every match on its own line.
func FormatAll(matches []Match, subject string) string {
	var sb strings.Builder
	for _, m := range matches {
		sb.WriteString(Format(m, subject))
		sb.WriteByte('\n')
	}
	return sb.String()
}
