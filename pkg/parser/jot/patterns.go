package jot

import (
	"github.com/yaklabco/gojot/pkg/luapat"
)

// Fixed patterns used by the tokenizers. All are literals, so a compile
// failure is a programming error.
//
//nolint:gochecknoglobals // Compiled once, read-only.
var (
	patSpecial       = luapat.MustCompile("[%]%[\\`{}_*()!<>~^:=+\r\n\".-]")
	patBackticks     = luapat.MustCompile("^`+")
	patHardbreak     = luapat.MustCompile("^[ \t]*\r?\n")
	patEscapable     = luapat.MustCompile("^[%p ]")
	patAutolink      = luapat.MustCompile("^%<[^<>%s]+%>")
	patEmailBody     = luapat.MustCompile("^[^:]+%@")
	patURLBody       = luapat.MustCompile("^%a+:")
	patFootnoteRef   = luapat.MustCompile("^%[%^([^]]+)%]")
	patOpenMarker    = luapat.MustCompile("^[_*~^+=\"-]")
	patEmoji         = luapat.MustCompile("^%:[%w_+-]+%:")
	patEllipsesTail  = luapat.MustCompile("^%.%.")
	patHyphens       = luapat.MustCompile("^%-*")
	patEOL           = luapat.MustCompile("\r?\n")
	patWordThenSpace = luapat.MustCompile("^%a+%s")
	patTildeFence    = luapat.MustCompile("^(~~~~*)([ \t]*)(%S*)[ \t]*\r?\n")
	patBacktickFence = luapat.MustCompile("^(````*)([ \t]*)([^%s`]*)[ \t]*\r?\n")
	patRefDefinition = luapat.MustCompile("^%[([^]\r\n]*)%]:[ \t]*(%S*)")
	patNonSpaceRun   = luapat.MustCompile("^%S+")
	patVerbatimLead  = luapat.MustCompile("^ +`")
	patVerbatimTrail = luapat.MustCompile("` +$")
)

// boundedFind matches pat at or after start and accepts the match only when
// it ends at or before end.
func boundedFind(subject string, pat *luapat.Pattern, start, end int) (luapat.Match, bool) {
	m, ok, err := pat.FindAt(subject, start)
	if err != nil {
		panic(invariantf("pattern %s: %v", pat, err))
	}
	if !ok || m.End > end {
		return luapat.Match{}, false
	}
	return m, true
}

// find is boundedFind with no upper bound.
func find(subject string, pat *luapat.Pattern, start int) (luapat.Match, bool) {
	return boundedFind(subject, pat, start, len(subject))
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

func isAlnum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// isNameByte matches the characters allowed in ids, classes, keys, and
// bare values.
func isNameByte(c byte) bool {
	return isAlnum(c) || c == '_' || c == ':' || c == '-'
}
