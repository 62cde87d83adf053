package jot

import (
	"sort"

	"github.com/yaklabco/gojot/pkg/annot"
)

// bracketRole records what a `[` opener has become after its `]` was seen.
type bracketRole uint8

const (
	roleNone bracketRole = iota
	roleReferenceLink
	roleExplicitLink
)

// opener is a pending delimiter waiting for its closer.
type opener struct {
	start, end int
	role       bracketRole

	// mid is the offset of the `]` in `][` or `](`; mid+1 is the second byte.
	mid    int
	hasMid bool
}

// span is a half-open byte range.
type span struct {
	start, end int
}

// inlineTokenizer turns the inline content of one paragraph into matches.
// It is fed one line at a time and keeps its state between lines.
type inlineTokenizer struct {
	subject string

	// matches is keyed by start offset; adding at an existing start replaces
	// the earlier match.
	matches map[int]annot.Match

	openers     map[byte][]*opener
	verbatim    int
	destination bool

	allowAttributes bool
	attr            *attributeTokenizer
	attrStart       int
	attrSlices      []span
}

func newInlineTokenizer(subject string) *inlineTokenizer {
	return &inlineTokenizer{
		subject:         subject,
		matches:         make(map[int]annot.Match),
		openers:         make(map[byte][]*opener),
		allowAttributes: true,
	}
}

func (p *inlineTokenizer) add(start, end int, a annot.Annot) {
	p.matches[start] = annot.New(start, end, a)
}

func (p *inlineTokenizer) addAtom(start, end int, atom annot.Atom) {
	p.add(start, end, annot.Of(atom))
}

// feed tokenizes [start, end).
func (p *inlineTokenizer) feed(start, end int) {
	pos := start
	for pos < end {
		if p.attr != nil {
			pos = p.feedAttributes(pos, end)
			continue
		}

		next := end
		if m, ok := boundedFind(p.subject, patSpecial, pos, end); ok {
			next = m.Start
		}
		if next > pos {
			p.addAtom(pos, next, annot.Str)
			pos = next
			if pos >= end {
				break
			}
		}

		c := p.subject[pos]
		switch {
		case c == '\r' || c == '\n':
			if c == '\r' && pos+1 < end && p.subject[pos+1] == '\n' {
				p.addAtom(pos, pos+2, annot.Softbreak)
				pos += 2
			} else {
				p.addAtom(pos, pos+1, annot.Softbreak)
				pos++
			}
		case p.verbatim > 0:
			pos = p.inVerbatim(pos, end)
		default:
			if n, ok := p.special(c, pos, end); ok {
				pos = n
			} else {
				p.addAtom(pos, pos+1, annot.Str)
				pos++
			}
		}
	}
}

func (p *inlineTokenizer) inVerbatim(pos, end int) int {
	if p.subject[pos] != '`' {
		p.addAtom(pos, pos+1, annot.Str)
		return pos + 1
	}
	m, ok := boundedFind(p.subject, patBackticks, pos, end)
	if !ok {
		p.addAtom(pos, pos+1, annot.Str)
		return pos + 1
	}
	if m.Len() == p.verbatim {
		p.add(pos, m.End, annot.Sub(annot.Verbatim))
		p.verbatim = 0
	} else {
		p.addAtom(pos, m.End, annot.Str)
	}
	return m.End
}

// feedAttributes continues a pending attribute block and returns the
// position to resume from.
func (p *inlineTokenizer) feedAttributes(pos, end int) int {
	status, at := p.attr.feed(pos, end)
	switch status {
	case feedDone:
		p.add(p.attrStart, p.attrStart+1, annot.Add(annot.Attributes))
		p.add(at, at+1, annot.Sub(annot.Attributes))
		for _, m := range p.attr.matches {
			p.matches[m.Start] = m
		}
		p.attr = nil
		p.attrSlices = nil
		return at + 1

	case feedFail:
		start, slices := p.attrStart, p.attrSlices
		p.attr = nil
		p.attrSlices = nil
		p.allowAttributes = false
		if len(slices) == 0 {
			return start
		}
		for _, s := range slices {
			p.feed(s.start, s.end)
		}
		return pos

	default:
		p.attrSlices = append(p.attrSlices, span{pos, end})
		return end
	}
}

// special handles a byte from the special set. It reports false when the
// byte should be taken literally.
//
//nolint:gocyclo,cyclop // Dispatch table.
func (p *inlineTokenizer) special(c byte, pos, end int) (int, bool) {
	switch c {
	case '`':
		m, _ := boundedFind(p.subject, patBackticks, pos, end)
		p.add(pos, m.End, annot.Add(annot.Verbatim))
		p.verbatim = m.Len()
		return m.End, true
	case '\\':
		return p.escape(pos, end), true
	case '<':
		return p.autolink(pos, end)
	case '[':
		return p.openBracket(pos, end), true
	case ']':
		return p.closeBracket(pos, end)
	case '(':
		return p.openParen(pos)
	case ')':
		return p.closeParen(pos)
	case '{':
		return p.openBrace(pos, end), true
	case ':':
		if m, ok := boundedFind(p.subject, patEmoji, pos, end); ok {
			p.addAtom(pos, m.End, annot.Emoji)
			return m.End, true
		}
		return 0, false
	case '_':
		return p.delimited(pos, '_', annot.Emph, annot.Str, nil), true
	case '*':
		return p.delimited(pos, '*', annot.Strong, annot.Str, nil), true
	case '~':
		return p.delimited(pos, '~', annot.Subscript, annot.Str, nil), true
	case '^':
		return p.delimited(pos, '^', annot.Superscript, annot.Str, nil), true
	case '+':
		return p.delimited(pos, '+', annot.Insert, annot.Str, p.besideBrace), true
	case '=':
		return p.delimited(pos, '=', annot.Mark, annot.Str, p.besideBrace), true
	case '"':
		return p.delimited(pos, '"', annot.DoubleQuoted, annot.LeftDoubleQuote, nil), true
	case '-':
		return p.hyphens(pos, end), true
	case '.':
		if _, ok := boundedFind(p.subject, patEllipsesTail, pos+1, end); ok {
			p.addAtom(pos, pos+3, annot.Ellipses)
			return pos + 3, true
		}
		return 0, false
	}
	return 0, false
}

// besideBrace requires an explicit `{` before or `}` after the delimiter.
func (p *inlineTokenizer) besideBrace(pos int) bool {
	return (pos > 0 && p.subject[pos-1] == '{') ||
		(pos+1 < len(p.subject) && p.subject[pos+1] == '}')
}

// delimited handles a symmetric delimiter c that closes the innermost
// compatible opener or becomes one.
func (p *inlineTokenizer) delimited(
	pos int, c byte, comp annot.Comp, dflt annot.Atom, openTest func(int) bool,
) int {
	subject := p.subject
	canOpen := pos+1 < len(subject) && !isSpace(subject[pos+1])
	canClose := pos > 0 && !isSpace(subject[pos-1])

	prev, hasPrev := p.matches[pos-1]
	hasOpenMarker := hasPrev && prev.IsAtom(annot.OpenMarker)
	hasCloseMarker := !hasOpenMarker && pos+1 < len(subject) && subject[pos+1] == '}'

	if openTest != nil {
		canOpen = canOpen && openTest(pos)
	}

	startOpener, endCloser := pos, pos+1
	switch {
	case hasOpenMarker:
		canOpen, canClose = true, false
		startOpener = pos - 1
		dflt = dflt.Left()
	case hasCloseMarker:
		canOpen, canClose = false, true
		endCloser = pos + 2
		dflt = dflt.Right()
	}

	if stack := p.openers[c]; canClose && len(stack) > 0 {
		o := stack[len(stack)-1]
		if o.end != pos {
			p.clearOpeners(o.start, pos+1)
			p.add(o.start, o.end, annot.Add(comp))
			p.add(pos, endCloser, annot.Sub(comp))
			return endCloser
		}
	}

	if canOpen {
		p.openers[c] = append(p.openers[c], &opener{start: startOpener, end: pos + 1})
		p.addAtom(startOpener, pos+1, dflt)
		return pos + 1
	}

	p.addAtom(startOpener, endCloser, dflt)
	return endCloser
}

// clearOpeners discards openers lying inside [lo, hi) and forgets the
// intermediate `][` or `](` of bracket openers whose middle lies inside.
// Each stack is scanned from the top and stops at the first opener that
// is not affected.
func (p *inlineTokenizer) clearOpeners(lo, hi int) {
	for c, stack := range p.openers {
		for len(stack) > 0 {
			o := stack[len(stack)-1]
			if o.start >= lo && o.end <= hi {
				stack = stack[:len(stack)-1]
				continue
			}
			if o.hasMid && o.mid >= lo && o.mid+2 <= hi {
				o.role = roleNone
				o.hasMid = false
				continue
			}
			break
		}
		p.openers[c] = stack
	}
}

func (p *inlineTokenizer) escape(pos, end int) int {
	if m, ok := boundedFind(p.subject, patHardbreak, pos+1, end); ok {
		p.trimTrailingBlanks(pos)
		p.addAtom(pos, pos+1, annot.Escape)
		p.addAtom(pos+1, m.End, annot.Hardbreak)
		return m.End
	}
	if m, ok := boundedFind(p.subject, patEscapable, pos+1, end); ok {
		p.addAtom(pos, pos+1, annot.Escape)
		if p.subject[pos+1] == ' ' {
			p.addAtom(pos+1, m.End, annot.Nbsp)
		} else {
			p.addAtom(pos+1, m.End, annot.Str)
		}
		return m.End
	}
	p.addAtom(pos, pos+1, annot.Str)
	return pos + 1
}

// trimTrailingBlanks strips spaces and tabs from the end of the Str match
// that ends at pos, deleting it when nothing is left.
func (p *inlineTokenizer) trimTrailingBlanks(pos int) {
	for i := pos - 1; i >= 0; i-- {
		m, ok := p.matches[i]
		if !ok {
			continue
		}
		if !m.IsAtom(annot.Str) || m.End != pos {
			return
		}
		for m.End > m.Start && isBlank(p.subject[m.End-1]) {
			m.End--
		}
		if m.End == m.Start {
			delete(p.matches, i)
		} else {
			p.matches[i] = m
		}
		return
	}
}

func (p *inlineTokenizer) autolink(pos, end int) (int, bool) {
	m, ok := boundedFind(p.subject, patAutolink, pos, end)
	if !ok {
		return 0, false
	}
	inner := p.subject[pos+1 : m.End-1]
	var comp annot.Comp
	if _, ok := find(inner, patEmailBody, 0); ok {
		comp = annot.Email
	} else if _, ok := find(inner, patURLBody, 0); ok {
		comp = annot.URL
	} else {
		return 0, false
	}
	p.add(pos, pos+1, annot.Add(comp))
	p.addAtom(pos+1, m.End-1, annot.Str)
	p.add(m.End-1, m.End, annot.Sub(comp))
	return m.End, true
}

func (p *inlineTokenizer) openBracket(pos, end int) int {
	if m, ok := boundedFind(p.subject, patFootnoteRef, pos, end); ok {
		p.addAtom(pos, m.End, annot.FootnoteReference)
		return m.End
	}
	p.openers['['] = append(p.openers['['], &opener{start: pos, end: pos + 1})
	p.addAtom(pos, pos+1, annot.Str)
	return pos + 1
}

func (p *inlineTokenizer) closeBracket(pos, end int) (int, bool) {
	stack := p.openers['[']
	if len(stack) == 0 {
		return 0, false
	}
	o := stack[len(stack)-1]

	switch o.role {
	case roleReferenceLink:
		p.linkText(o)
		p.add(o.mid+1, o.mid+2, annot.Add(annot.Reference))
		p.add(pos, pos+1, annot.Sub(annot.Reference))
		p.strMatches(o.mid+2, pos)
		p.clearOpeners(o.start, pos+1)
		return pos + 1, true
	case roleExplicitLink:
		return 0, false
	case roleNone:
	}

	var next byte
	if pos+1 < end {
		next = p.subject[pos+1]
	}
	switch next {
	case '[':
		o.role = roleReferenceLink
		o.mid, o.hasMid = pos, true
		p.addAtom(pos, pos+2, annot.Str)
		p.clearOpeners(o.start+1, pos)
		return pos + 2, true
	case '(':
		p.openers['('] = nil
		o.role = roleExplicitLink
		o.mid, o.hasMid = pos, true
		p.destination = true
		p.addAtom(pos, pos+2, annot.Str)
		p.clearOpeners(o.start+1, pos)
		return pos + 2, true
	case '{':
		p.add(o.start, o.end, annot.Add(annot.Span))
		p.add(pos, pos+1, annot.Sub(annot.Span))
		p.openers['['] = stack[:len(stack)-1]
		p.clearOpeners(o.start, pos+1)
		return pos + 1, true
	}
	p.openers['['] = stack[:len(stack)-1]
	return 0, false
}

// linkText marks the bracketed text of o as a link or, when preceded by an
// unescaped `!`, an image.
func (p *inlineTokenizer) linkText(o *opener) {
	comp := annot.Linktext
	if o.start > 0 && p.subject[o.start-1] == '!' &&
		(o.start < 2 || p.subject[o.start-2] != '\\') {
		comp = annot.Imagetext
		p.addAtom(o.start-1, o.start, annot.ImageMarker)
	}
	p.add(o.start, o.end, annot.Add(comp))
	p.add(o.mid, o.mid+1, annot.Sub(comp))
}

// strMatches coerces every match starting in [lo, hi) to Str, leaving
// escapes alone.
func (p *inlineTokenizer) strMatches(lo, hi int) {
	for i := lo; i < hi; i++ {
		m, ok := p.matches[i]
		if !ok || m.IsAtom(annot.Str) || m.IsAtom(annot.Escape) {
			continue
		}
		m.Annot = annot.Of(annot.Str)
		p.matches[i] = m
	}
}

func (p *inlineTokenizer) openParen(pos int) (int, bool) {
	if !p.destination {
		return 0, false
	}
	p.openers['('] = append(p.openers['('], &opener{start: pos, end: pos + 1})
	p.addAtom(pos, pos+1, annot.Str)
	return pos + 1, true
}

func (p *inlineTokenizer) closeParen(pos int) (int, bool) {
	if !p.destination {
		return 0, false
	}
	if parens := p.openers['(']; len(parens) > 0 {
		p.openers['('] = parens[:len(parens)-1]
		p.addAtom(pos, pos+1, annot.Str)
		return pos + 1, true
	}
	stack := p.openers['[']
	if len(stack) == 0 {
		return 0, false
	}
	o := stack[len(stack)-1]
	if o.role != roleExplicitLink {
		return 0, false
	}
	p.linkText(o)
	p.add(o.mid+1, o.mid+2, annot.Add(annot.Destination))
	p.add(pos, pos+1, annot.Sub(annot.Destination))
	p.destination = false
	p.strMatches(o.mid+2, pos)
	p.clearOpeners(o.start, pos+1)
	return pos + 1, true
}

func (p *inlineTokenizer) openBrace(pos, end int) int {
	if _, ok := boundedFind(p.subject, patOpenMarker, pos+1, end); ok {
		p.addAtom(pos, pos+1, annot.OpenMarker)
		return pos + 1
	}
	if p.allowAttributes {
		p.attr = newAttributeTokenizer(p.subject)
		p.attrStart = pos
		p.attrSlices = nil
		return pos
	}
	p.addAtom(pos, pos+1, annot.Str)
	p.allowAttributes = true
	return pos + 1
}

// hyphens handles a run of `-`: a delete delimiter when beside a brace,
// otherwise em and en dashes.
func (p *inlineTokenizer) hyphens(pos, end int) int {
	if p.besideBrace(pos) {
		return p.delimited(pos, '-', annot.Delete, annot.Str, p.besideBrace)
	}

	m, _ := find(p.subject, patHyphens, pos)
	run := min(m.End, end)
	count := run - pos
	if run < len(p.subject) && p.subject[run] == '}' {
		count--
	}
	if count == 0 {
		p.addAtom(pos, min(pos+2, end), annot.Str)
		return min(pos+2, end)
	}

	for count > 0 {
		var atom annot.Atom
		var width int
		switch {
		case count%3 == 0:
			atom, width = annot.EmDash, 3
		case count%2 == 0:
			atom, width = annot.EnDash, 2
		case count >= 3:
			atom, width = annot.EmDash, 3
		default:
			atom, width = annot.Str, 1
		}
		p.addAtom(pos, pos+width, atom)
		pos += width
		count -= width
	}
	return pos
}

// result returns the matches in offset order with adjacent Str runs merged,
// a trailing soft break dropped, trailing blanks trimmed, and an unclosed
// verbatim closed at the end.
func (p *inlineTokenizer) result() []annot.Match {
	if p.attr != nil {
		slices := p.attrSlices
		p.attr = nil
		p.attrSlices = nil
		p.allowAttributes = false
		for _, s := range slices {
			p.feed(s.start, s.end)
		}
	}

	keys := make([]int, 0, len(p.matches))
	for k := range p.matches {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	sorted := make([]annot.Match, 0, len(keys))
	for _, k := range keys {
		m := p.matches[k]
		if n := len(sorted); n > 0 && m.IsAtom(annot.Str) {
			last := &sorted[n-1]
			if last.IsAtom(annot.Str) && last.End == m.Start {
				last.End = m.End
				continue
			}
		}
		sorted = append(sorted, m)
	}

	if n := len(sorted); n > 0 && sorted[n-1].IsAtom(annot.Softbreak) {
		sorted = sorted[:n-1]
	}
	if n := len(sorted); n > 0 && sorted[n-1].IsAtom(annot.Str) && p.verbatim == 0 {
		last := &sorted[n-1]
		for last.End > last.Start && isBlank(p.subject[last.End-1]) {
			last.End--
		}
		if last.End == last.Start {
			sorted = sorted[:n-1]
		}
	}
	if p.verbatim > 0 && len(sorted) > 0 {
		end := sorted[len(sorted)-1].End
		sorted = append(sorted, annot.New(end, end, annot.Sub(annot.Verbatim)))
		p.verbatim = 0
	}
	return sorted
}
