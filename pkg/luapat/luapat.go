// Package luapat implements Lua 5.2 string patterns over byte strings.
//
// Matching works on byte offsets, never runes. Results are half-open ranges
// into the subject. The engine is a direct index-based rendition of the
// reference matcher: no backtracking limit other than a fixed recursion
// ceiling, which surfaces as ErrTooComplex instead of a stack overflow.
package luapat

import (
	"errors"
	"fmt"
)

const (
	// MaxCaptures is the maximum number of captures a pattern may define.
	MaxCaptures = 32

	// maxCalls bounds the recursion depth of the matcher.
	maxCalls = 200

	escape = '%'

	capUnfinished = -1
	capPosition   = -2
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrMalformed indicates a syntactically invalid pattern.
	ErrMalformed = errors.New("malformed pattern")

	// ErrTooComplex indicates the recursion ceiling was reached.
	ErrTooComplex = errors.New("pattern too complex")

	// ErrTooManyCaptures indicates more than MaxCaptures captures.
	ErrTooManyCaptures = errors.New("too many captures")

	// ErrInvalidCapture indicates a bad back-reference or unbalanced ')'.
	ErrInvalidCapture = errors.New("invalid capture")
)

// Capture is a captured sub-range of a match.
type Capture struct {
	Start int
	End   int

	// Position is true for "()" captures, which record an offset only.
	Position bool
}

// Text returns the captured substring of subject.
func (c Capture) Text(subject string) string {
	return subject[c.Start:c.End]
}

// Match is a successful pattern match.
type Match struct {
	Start    int
	End      int
	Captures []Capture
}

// Len returns the number of bytes matched.
func (m Match) Len() int {
	return m.End - m.Start
}

// Capture returns capture i (zero-based) and whether it exists.
func (m Match) Capture(i int) (Capture, bool) {
	if i < 0 || i >= len(m.Captures) {
		return Capture{}, false
	}
	return m.Captures[i], true
}

// Pattern is a validated Lua pattern.
type Pattern struct {
	source string
	body   string
	anchor bool
}

// Compile validates pattern and returns a reusable Pattern.
func Compile(pattern string) (*Pattern, error) {
	p := &Pattern{source: pattern, body: pattern}
	if len(pattern) > 0 && pattern[0] == '^' {
		p.anchor = true
		p.body = pattern[1:]
	}
	if err := validate(p.body); err != nil {
		return nil, fmt.Errorf("compile %q: %w", pattern, err)
	}
	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.source
}

// Find searches subject from the beginning.
func (p *Pattern) Find(subject string) (Match, bool, error) {
	return p.FindAt(subject, 0)
}

// FindAt searches subject starting at byte offset init. An anchored pattern
// only matches at init itself.
func (p *Pattern) FindAt(subject string, init int) (Match, bool, error) {
	if init < 0 {
		init = 0
	}
	if init > len(subject) {
		return Match{}, false, nil
	}

	ms := &matchState{src: subject, pat: p.body}
	for s := init; s <= len(subject); s++ {
		ms.level = 0
		ms.depth = maxCalls
		end, err := ms.match(s, 0)
		if err != nil {
			return Match{}, false, err
		}
		if end >= 0 {
			caps, err := ms.captures()
			if err != nil {
				return Match{}, false, err
			}
			return Match{Start: s, End: end, Captures: caps}, true, nil
		}
		if p.anchor {
			break
		}
	}
	return Match{}, false, nil
}

// Find compiles pattern and searches subject. It panics on malformed
// patterns; use Compile to handle them as errors.
func Find(subject, pattern string) (Match, bool) {
	return FindAt(subject, pattern, 0)
}

// FindAt is like Find but starts the search at init.
func FindAt(subject, pattern string, init int) (Match, bool) {
	m, ok, err := MustCompile(pattern).FindAt(subject, init)
	if err != nil {
		panic(err)
	}
	return m, ok
}

type capture struct {
	init   int
	length int
}

type matchState struct {
	src     string
	pat     string
	depth   int
	level   int
	capture [MaxCaptures]capture
}

func (ms *matchState) captures() ([]Capture, error) {
	if ms.level == 0 {
		return nil, nil
	}
	caps := make([]Capture, ms.level)
	for i := range ms.level {
		c := ms.capture[i]
		switch c.length {
		case capUnfinished:
			return nil, fmt.Errorf("%w: unfinished capture", ErrInvalidCapture)
		case capPosition:
			caps[i] = Capture{Start: c.init, End: c.init, Position: true}
		default:
			caps[i] = Capture{Start: c.init, End: c.init + c.length}
		}
	}
	return caps, nil
}

func (ms *matchState) patAt(p int) byte {
	if p < len(ms.pat) {
		return ms.pat[p]
	}
	return 0
}

// match returns the end offset of a match of pat[p:] at src[s:], or -1.
func (ms *matchState) match(s, p int) (int, error) {
	ms.depth--
	if ms.depth == 0 {
		return -1, ErrTooComplex
	}
	defer func() { ms.depth++ }()

	for {
		if p == len(ms.pat) {
			return s, nil
		}

		switch ms.pat[p] {
		case '(':
			if ms.patAt(p+1) == ')' {
				return ms.startCapture(s, p+2, capPosition)
			}
			return ms.startCapture(s, p+1, capUnfinished)

		case ')':
			return ms.endCapture(s, p+1)

		case '$':
			if p+1 == len(ms.pat) {
				if s == len(ms.src) {
					return s, nil
				}
				return -1, nil
			}

		case escape:
			switch next := ms.patAt(p + 1); {
			case next == 'b':
				end, err := ms.matchBalance(s, p+2)
				if err != nil || end < 0 {
					return end, err
				}
				s, p = end, p+4
				continue

			case next == 'f':
				p += 2
				if ms.patAt(p) != '[' {
					return -1, fmt.Errorf("%w: missing '[' after '%%f'", ErrMalformed)
				}
				ep, err := ms.classEnd(p)
				if err != nil {
					return -1, err
				}
				var prev, cur byte
				if s > 0 {
					prev = ms.src[s-1]
				}
				if s < len(ms.src) {
					cur = ms.src[s]
				}
				if !matchBracketClass(prev, ms.pat, p, ep-1) && matchBracketClass(cur, ms.pat, p, ep-1) {
					p = ep
					continue
				}
				return -1, nil

			case next >= '0' && next <= '9':
				end, err := ms.matchCapture(s, next)
				if err != nil || end < 0 {
					return end, err
				}
				s, p = end, p+2
				continue
			}
		}

		// Single class with an optional quantifier.
		ep, err := ms.classEnd(p)
		if err != nil {
			return -1, err
		}
		suffix := ms.patAt(ep)

		if !ms.singleMatch(s, p, ep) {
			if suffix == '*' || suffix == '?' || suffix == '-' {
				p = ep + 1
				continue
			}
			return -1, nil
		}

		switch suffix {
		case '?':
			res, err := ms.match(s+1, ep+1)
			if err != nil || res >= 0 {
				return res, err
			}
			p = ep + 1
			continue
		case '+':
			return ms.maxExpand(s+1, p, ep)
		case '*':
			return ms.maxExpand(s, p, ep)
		case '-':
			return ms.minExpand(s, p, ep)
		default:
			s, p = s+1, ep
		}
	}
}

func (ms *matchState) startCapture(s, p, what int) (int, error) {
	if ms.level >= MaxCaptures {
		return -1, ErrTooManyCaptures
	}
	ms.capture[ms.level] = capture{init: s, length: what}
	ms.level++
	res, err := ms.match(s, p)
	if err == nil && res < 0 {
		ms.level--
	}
	return res, err
}

func (ms *matchState) endCapture(s, p int) (int, error) {
	l := -1
	for i := ms.level - 1; i >= 0; i-- {
		if ms.capture[i].length == capUnfinished {
			l = i
			break
		}
	}
	if l < 0 {
		return -1, fmt.Errorf("%w: no open capture", ErrInvalidCapture)
	}
	ms.capture[l].length = s - ms.capture[l].init
	res, err := ms.match(s, p)
	if err == nil && res < 0 {
		ms.capture[l].length = capUnfinished
	}
	return res, err
}

func (ms *matchState) matchCapture(s int, digit byte) (int, error) {
	l := int(digit) - '1'
	if l < 0 || l >= ms.level || ms.capture[l].length == capUnfinished {
		return -1, fmt.Errorf("%w: index %%%d", ErrInvalidCapture, l+1)
	}
	c := ms.capture[l]
	if c.length < 0 {
		return -1, nil
	}
	if len(ms.src)-s >= c.length && ms.src[c.init:c.init+c.length] == ms.src[s:s+c.length] {
		return s + c.length, nil
	}
	return -1, nil
}

func (ms *matchState) matchBalance(s, p int) (int, error) {
	if p+1 >= len(ms.pat) {
		return -1, fmt.Errorf("%w: missing arguments to '%%b'", ErrMalformed)
	}
	if s >= len(ms.src) || ms.src[s] != ms.pat[p] {
		return -1, nil
	}
	open, closing := ms.pat[p], ms.pat[p+1]
	depth := 1
	for s++; s < len(ms.src); s++ {
		switch ms.src[s] {
		case closing:
			depth--
			if depth == 0 {
				return s + 1, nil
			}
		case open:
			depth++
		}
	}
	return -1, nil
}

func (ms *matchState) maxExpand(s, p, ep int) (int, error) {
	i := 0
	for ms.singleMatch(s+i, p, ep) {
		i++
	}
	for ; i >= 0; i-- {
		res, err := ms.match(s+i, ep+1)
		if err != nil || res >= 0 {
			return res, err
		}
	}
	return -1, nil
}

func (ms *matchState) minExpand(s, p, ep int) (int, error) {
	for {
		res, err := ms.match(s, ep+1)
		if err != nil || res >= 0 {
			return res, err
		}
		if !ms.singleMatch(s, p, ep) {
			return -1, nil
		}
		s++
	}
}

// classEnd returns the index just past the single class starting at p.
func (ms *matchState) classEnd(p int) (int, error) {
	return classEnd(ms.pat, p)
}

func classEnd(pat string, p int) (int, error) {
	c := pat[p]
	p++
	switch c {
	case escape:
		if p >= len(pat) {
			return -1, fmt.Errorf("%w: ends with '%%'", ErrMalformed)
		}
		return p + 1, nil
	case '[':
		if p < len(pat) && pat[p] == '^' {
			p++
		}
		for {
			if p >= len(pat) {
				return -1, fmt.Errorf("%w: missing ']'", ErrMalformed)
			}
			c := pat[p]
			p++
			if c == escape && p < len(pat) {
				p++
			}
			if p >= len(pat) {
				return -1, fmt.Errorf("%w: missing ']'", ErrMalformed)
			}
			if pat[p] == ']' {
				return p + 1, nil
			}
		}
	default:
		return p, nil
	}
}

func (ms *matchState) singleMatch(s, p, ep int) bool {
	if s >= len(ms.src) {
		return false
	}
	c := ms.src[s]
	switch ms.pat[p] {
	case '.':
		return true
	case escape:
		return matchClass(c, ms.pat[p+1])
	case '[':
		return matchBracketClass(c, ms.pat, p, ep-1)
	default:
		return ms.pat[p] == c
	}
}

// matchBracketClass reports whether c is in the set pat[p:ec+1], where
// pat[p] is '[' and pat[ec] is the closing ']'.
func matchBracketClass(c byte, pat string, p, ec int) bool {
	sig := true
	if pat[p+1] == '^' {
		sig = false
		p++
	}
	for p++; p < ec; p++ {
		switch {
		case pat[p] == escape:
			p++
			if matchClass(c, pat[p]) {
				return sig
			}
		case pat[p+1] == '-' && p+2 < ec:
			lo, hi := pat[p], pat[p+2]
			p += 2
			if lo <= c && c <= hi {
				return sig
			}
		case pat[p] == c:
			return sig
		}
	}
	return !sig
}

func matchClass(c, class byte) bool {
	var res bool
	switch class | 0x20 {
	case 'a':
		res = isAlpha(c)
	case 'c':
		res = c < 0x20 || c == 0x7f
	case 'd':
		res = isDigit(c)
	case 'g':
		res = c > 0x20 && c < 0x7f
	case 'l':
		res = c >= 'a' && c <= 'z'
	case 'p':
		res = isPunct(c)
	case 's':
		res = isSpace(c)
	case 'u':
		res = c >= 'A' && c <= 'Z'
	case 'w':
		res = isAlpha(c) || isDigit(c)
	case 'x':
		res = isDigit(c) || (c|0x20 >= 'a' && c|0x20 <= 'f')
	default:
		return class == c
	}
	if class >= 'A' && class <= 'Z' {
		return !res
	}
	return res
}

func isAlpha(c byte) bool { return c|0x20 >= 'a' && c|0x20 <= 'z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool {
	return c == ' ' || (c >= '\t' && c <= '\r')
}

func isPunct(c byte) bool {
	return c > 0x20 && c < 0x7f && !isAlpha(c) && !isDigit(c)
}

// validate walks the pattern once so malformed literals fail at compile time.
func validate(pat string) error {
	depth := 0
	for p := 0; p < len(pat); {
		switch pat[p] {
		case '(':
			depth++
			if depth > MaxCaptures {
				return ErrTooManyCaptures
			}
			p++
			continue
		case ')':
			p++
			continue
		case escape:
			if p+1 < len(pat) {
				switch pat[p+1] {
				case 'b':
					if p+3 >= len(pat) {
						return fmt.Errorf("%w: missing arguments to '%%b'", ErrMalformed)
					}
					p += 4
					continue
				case 'f':
					if p+2 >= len(pat) || pat[p+2] != '[' {
						return fmt.Errorf("%w: missing '[' after '%%f'", ErrMalformed)
					}
					ep, err := classEnd(pat, p+2)
					if err != nil {
						return err
					}
					p = ep
					continue
				}
			}
		}
		ep, err := classEnd(pat, p)
		if err != nil {
			return err
		}
		p = ep
		if p < len(pat) && (pat[p] == '*' || pat[p] == '+' || pat[p] == '-' || pat[p] == '?') {
			p++
		}
	}
	return nil
}
