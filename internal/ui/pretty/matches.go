package pretty

import (
	"strings"

	"github.com/yaklabco/gojot/pkg/annot"
)

// FormatMatches renders a match stream one match per line, coloring span
// openers, closers and atoms apart. Without color the output is identical
// to annot.FormatAll.
func (s *Styles) FormatMatches(matches []annot.Match, subject string) string {
	var sb strings.Builder
	for _, m := range matches {
		line := annot.Format(m, subject)
		switch {
		case m.Annot.IsAdd():
			line = s.MatchOpen.Render(line)
		case m.Annot.IsSub():
			line = s.MatchClose.Render(line)
		default:
			line = s.MatchAtom.Render(line)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}
