package jot

import (
	"github.com/yaklabco/gojot/pkg/annot"
)

// attrState is a state of the attribute tokenizer.
type attrState uint8

const (
	attrStart attrState = iota
	attrScanning
	attrScanningID
	attrScanningClass
	attrScanningKey
	attrScanningValue
	attrScanningBareValue
	attrScanningQuotedValue
	attrScanningEscaped
	attrScanningComment
	attrFail
	attrDone
)

// feedStatus is the outcome of feeding a range to the attribute tokenizer.
type feedStatus uint8

const (
	// feedContinue means the range was consumed and more input is needed.
	feedContinue feedStatus = iota

	// feedDone means a closing brace was found.
	feedDone

	// feedFail means the text is not an attribute block.
	feedFail
)

// attributeTokenizer recognizes a brace-delimited attribute block such as
// {#id .class key=value key="quoted value" %comment%}. It is fed successive
// byte ranges of the subject and may span several lines.
type attributeTokenizer struct {
	subject string
	state   attrState
	begin   int
	matches []annot.Match
}

func newAttributeTokenizer(subject string) *attributeTokenizer {
	return &attributeTokenizer{subject: subject, state: attrStart, begin: -1}
}

// feed advances over [start, end). On feedDone the returned offset is the
// closing brace, on feedFail the offending byte, and on feedContinue end.
func (t *attributeTokenizer) feed(start, end int) (feedStatus, int) {
	for pos := start; pos < end; pos++ {
		t.state = t.step(pos)
		switch t.state {
		case attrDone:
			return feedDone, pos
		case attrFail:
			return feedFail, pos
		}
	}
	return feedContinue, end
}

func (t *attributeTokenizer) add(start, end int, atom annot.Atom) {
	t.matches = append(t.matches, annot.New(start, end, annot.Of(atom)))
}

//nolint:gocyclo,cyclop // One case per state keeps the automaton readable.
func (t *attributeTokenizer) step(pos int) attrState {
	c := t.subject[pos]
	switch t.state {
	case attrStart:
		if c == '{' {
			return attrScanning
		}
		return attrFail

	case attrScanning:
		switch {
		case isSpace(c):
			return attrScanning
		case c == '}':
			return attrDone
		case c == '#':
			t.begin = pos
			return attrScanningID
		case c == '%':
			t.begin = pos
			return attrScanningComment
		case c == '.':
			t.begin = pos
			return attrScanningClass
		case isNameByte(c):
			t.begin = pos
			return attrScanningKey
		}
		return attrFail

	case attrScanningComment:
		if c == '%' {
			return attrScanning
		}
		return attrScanningComment

	case attrScanningID:
		return t.scanName(pos, annot.ID, attrScanningID)

	case attrScanningClass:
		return t.scanName(pos, annot.Class, attrScanningClass)

	case attrScanningKey:
		switch {
		case c == '=':
			t.add(t.begin, pos, annot.Key)
			t.begin = -1
			return attrScanningValue
		case isNameByte(c):
			return attrScanningKey
		}
		return attrFail

	case attrScanningValue:
		switch {
		case c == '"':
			t.begin = pos
			return attrScanningQuotedValue
		case isNameByte(c):
			t.begin = pos
			return attrScanningBareValue
		}
		return attrFail

	case attrScanningBareValue:
		switch {
		case isNameByte(c):
			return attrScanningBareValue
		case c == '}':
			t.add(t.begin, pos, annot.Value)
			t.begin = -1
			return attrDone
		case isSpace(c):
			t.add(t.begin, pos, annot.Value)
			t.begin = -1
			return attrScanning
		}
		return attrFail

	case attrScanningQuotedValue:
		switch c {
		case '"':
			t.add(t.begin+1, pos, annot.Value)
			t.begin = -1
			return attrScanning
		case '\n':
			end := pos
			if end > t.begin+1 && t.subject[end-1] == '\r' {
				end--
			}
			t.add(t.begin+1, end, annot.Value)
			t.begin = pos
			return attrScanningQuotedValue
		case '\\':
			return attrScanningEscaped
		}
		return attrScanningQuotedValue

	case attrScanningEscaped:
		return attrScanningQuotedValue

	case attrFail, attrDone:
		return t.state
	}
	return attrFail
}

// scanName handles the body of an #id or .class word. The leading sigil at
// t.begin is excluded from the emitted range; empty names are dropped.
func (t *attributeTokenizer) scanName(pos int, atom annot.Atom, self attrState) attrState {
	c := t.subject[pos]
	switch {
	case isNameByte(c):
		return self
	case c == '}':
		if pos > t.begin+1 {
			t.add(t.begin+1, pos, atom)
		}
		t.begin = -1
		return attrDone
	case isSpace(c):
		if pos > t.begin+1 {
			t.add(t.begin+1, pos, atom)
		}
		t.begin = -1
		return attrScanning
	}
	return attrFail
}
