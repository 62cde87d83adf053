package jot

import (
	"github.com/yaklabco/gojot/pkg/annot"
	"github.com/yaklabco/gojot/pkg/luapat"
)

// contentModel says what an open container accepts on its lines.
type contentModel uint8

const (
	contentNone contentModel = iota
	contentBlock
	contentInline
	contentText
)

// container is an open block on the container stack.
type container interface {
	content() contentModel
	indentLevel() int

	// cont reports whether the current line continues the container. It may
	// consume input and finish the line.
	cont(b *blockTokenizer) bool

	// close emits the container's closing matches.
	close(b *blockTokenizer)
}

// blockStart tries to open a container at the current position.
type blockStart struct {
	content contentModel
	open    func(b *blockTokenizer) bool
}

// blockTokenizer splits the subject into lines and drives the container
// stack, producing the full ordered match list.
type blockTokenizer struct {
	subject    string
	matches    []annot.Match
	containers []container
	starts     []blockStart

	pos          int
	indent       int
	startLine    int
	startEOL     int
	endEOL       int
	lastMatched  int
	finishedLine bool
}

func newBlockTokenizer(text string) *blockTokenizer {
	b := &blockTokenizer{subject: Subject(text)}
	b.starts = []blockStart{
		{content: contentText, open: openCodeBlock},
		{content: contentNone, open: openReferenceDefinition},
	}
	return b
}

func (b *blockTokenizer) add(start, end int, a annot.Annot) {
	b.matches = append(b.matches, annot.New(start, end, a))
}

func (b *blockTokenizer) tip() container {
	if len(b.containers) == 0 {
		return nil
	}
	return b.containers[len(b.containers)-1]
}

func (b *blockTokenizer) closeTip() {
	c := b.tip()
	c.close(b)
	b.containers = b.containers[:len(b.containers)-1]
}

// addContainer closes unmatched containers and any tip that cannot hold
// blocks, then pushes c.
func (b *blockTokenizer) addContainer(c container) {
	for len(b.containers) > b.lastMatched ||
		(len(b.containers) > 0 && b.tip().content() != contentBlock) {
		b.closeTip()
	}
	b.containers = append(b.containers, c)
}

// skipSpace moves past spaces and tabs, recording the indentation of the
// new position relative to the line start.
func (b *blockTokenizer) skipSpace() {
	i := b.pos
	for i < len(b.subject) && isBlank(b.subject[i]) {
		i++
	}
	if i < len(b.subject) {
		b.indent = i - b.startLine
		b.pos = i
	}
}

func (b *blockTokenizer) findEOL() {
	if m, ok := find(b.subject, patEOL, b.pos); ok {
		b.startEOL, b.endEOL = m.Start, m.End
		return
	}
	b.startEOL, b.endEOL = len(b.subject), len(b.subject)
}

func (b *blockTokenizer) parse() []annot.Match {
	for b.pos < len(b.subject) {
		b.startLine = b.pos
		b.indent = 0
		b.finishedLine = false
		b.findEOL()

		b.lastMatched = 0
		for idx := 0; idx < len(b.containers); idx++ {
			b.skipSpace()
			if !b.containers[idx].cont(b) {
				break
			}
			b.lastMatched = idx + 1
		}

		if b.finishedLine {
			for len(b.containers) > b.lastMatched {
				b.closeTip()
			}
		} else {
			b.line()
		}

		b.pos = max(b.endEOL, b.pos+1)
	}
	for len(b.containers) > 0 {
		b.closeTip()
	}
	return b.matches
}

// line handles the rest of a line once the open containers were matched.
func (b *blockTokenizer) line() {
	b.skipSpace()
	blank := b.pos == b.startEOL
	newStarts := false

	var last container
	if b.lastMatched > 0 {
		last = b.containers[b.lastMatched-1]
	}
	checkStarts := !blank &&
		(last == nil || last.content() == contentBlock) &&
		!b.startsWithWord()

	for checkStarts {
		checkStarts = false
		for _, start := range b.starts {
			if !start.open(b) {
				continue
			}
			b.lastMatched = len(b.containers)
			if b.finishedLine {
				return
			}
			b.skipSpace()
			newStarts = true
			checkStarts = start.content == contentBlock
			break
		}
	}

	b.skipSpace()
	blank = b.pos == b.startEOL
	lazy := !blank && !newStarts && b.lastMatched < len(b.containers) &&
		b.tip().content() == contentInline
	if !lazy {
		for len(b.containers) > b.lastMatched {
			b.closeTip()
		}
	}

	tip := b.tip()
	if tip == nil || tip.content() == contentBlock {
		if blank {
			if !newStarts {
				b.add(b.pos, b.endEOL, annot.Of(annot.Blankline))
			}
		} else {
			b.openParagraph()
		}
		tip = b.tip()
	}
	if tip == nil {
		return
	}

	switch tip.content() {
	case contentText:
		start := b.pos
		if b.indent > tip.indentLevel() {
			start -= b.indent - tip.indentLevel()
		}
		b.add(start, b.endEOL, annot.Of(annot.Str))
	case contentInline:
		if !blank {
			tip.(*paragraph).feed(b.pos, b.startEOL, b.endEOL)
		}
	case contentBlock, contentNone:
	}
}

// startsWithWord reports a line beginning with letters then a space, which
// cannot open any block.
func (b *blockTokenizer) startsWithWord() bool {
	_, ok := find(b.subject, patWordThenSpace, b.pos)
	return ok
}

func (b *blockTokenizer) openParagraph() {
	b.addContainer(&paragraph{
		indent: b.indent,
		inline: newInlineTokenizer(b.subject),
		end:    b.pos,
	})
	b.add(b.pos, b.pos, annot.Add(annot.Para))
}

// paragraph holds inline content.
type paragraph struct {
	indent int
	inline *inlineTokenizer
	end    int
}

func (p *paragraph) content() contentModel { return contentInline }
func (p *paragraph) indentLevel() int      { return p.indent }

func (p *paragraph) cont(b *blockTokenizer) bool {
	return b.pos != b.startEOL
}

func (p *paragraph) feed(start, textEnd, lineEnd int) {
	p.inline.feed(start, lineEnd)
	p.end = textEnd
}

func (p *paragraph) close(b *blockTokenizer) {
	b.matches = append(b.matches, p.inline.result()...)
	b.add(p.end, p.end, annot.Sub(annot.Para))
}

// codeBlock is a fenced block of literal text.
type codeBlock struct {
	indent     int
	closing    *luapat.Pattern
	closeStart int
	closeEnd   int
	closed     bool
}

func openCodeBlock(b *blockTokenizer) bool {
	m, ok := find(b.subject, patTildeFence, b.pos)
	if !ok {
		m, ok = find(b.subject, patBacktickFence, b.pos)
	}
	if !ok {
		return false
	}
	border, _ := m.Capture(0)
	lang, _ := m.Capture(2)
	fence := border.Text(b.subject)

	b.addContainer(&codeBlock{
		indent:  b.indent,
		closing: luapat.MustCompile("^(" + fence + fence[:1] + "*)[ \t]*\r?\n"),
	})
	b.add(border.Start, border.End, annot.Add(annot.CodeBlock))
	if lang.End > lang.Start {
		b.add(lang.Start, lang.End, annot.Of(annot.CodeLanguage))
	}
	b.pos = m.End - 1
	b.finishedLine = true
	return true
}

func (c *codeBlock) content() contentModel { return contentText }
func (c *codeBlock) indentLevel() int      { return c.indent }

func (c *codeBlock) cont(b *blockTokenizer) bool {
	m, ok := find(b.subject, c.closing, b.pos)
	if !ok {
		return true
	}
	fence, _ := m.Capture(0)
	c.closeStart, c.closeEnd, c.closed = fence.Start, fence.End, true
	b.pos = m.End - 1
	b.finishedLine = true
	return false
}

func (c *codeBlock) close(b *blockTokenizer) {
	if c.closed {
		b.add(c.closeStart, c.closeEnd, annot.Sub(annot.CodeBlock))
		return
	}
	b.add(b.pos, b.pos, annot.Sub(annot.CodeBlock))
}

// referenceDefinition is a `[key]: destination` block whose destination may
// continue on indented lines.
type referenceDefinition struct {
	indent int
}

func openReferenceDefinition(b *blockTokenizer) bool {
	m, ok := find(b.subject, patRefDefinition, b.pos)
	if !ok {
		return false
	}
	key, _ := m.Capture(0)
	value, _ := m.Capture(1)

	b.addContainer(&referenceDefinition{indent: b.indent})
	b.add(m.Start, m.Start, annot.Add(annot.ReferenceDefinition))
	b.add(key.Start, key.End, annot.Of(annot.ReferenceKey))
	if value.End > value.Start {
		b.add(value.Start, value.End, annot.Of(annot.ReferenceValue))
	}
	b.pos = m.End
	return true
}

func (r *referenceDefinition) content() contentModel { return contentNone }
func (r *referenceDefinition) indentLevel() int      { return r.indent }

func (r *referenceDefinition) cont(b *blockTokenizer) bool {
	if r.indent >= b.indent {
		return false
	}
	for {
		b.skipSpace()
		if b.pos >= b.startEOL {
			return true
		}
		m, ok := find(b.subject, patNonSpaceRun, b.pos)
		if !ok {
			return true
		}
		b.add(m.Start, m.End, annot.Of(annot.ReferenceValue))
		b.pos = m.End
	}
}

func (r *referenceDefinition) close(b *blockTokenizer) {
	b.add(b.pos, b.pos, annot.Sub(annot.ReferenceDefinition))
}
