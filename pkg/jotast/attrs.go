package jotast

import (
	"bytes"
	"encoding/json"
)

// Attr is a single key/value attribute.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an insertion-ordered string map.
type Attrs struct {
	pairs []Attr
}

// Len returns the number of attributes.
func (a *Attrs) Len() int {
	return len(a.pairs)
}

// Get returns the value for key and whether it is present.
func (a *Attrs) Get(key string) (string, bool) {
	for _, p := range a.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Set replaces the value for key, keeping its original position, or appends it.
func (a *Attrs) Set(key, value string) {
	for i := range a.pairs {
		if a.pairs[i].Key == key {
			a.pairs[i].Value = value
			return
		}
	}
	a.pairs = append(a.pairs, Attr{Key: key, Value: value})
}

// Append adds value to a space-separated key such as "class".
func (a *Attrs) Append(key, value string) {
	if prev, ok := a.Get(key); ok && prev != "" {
		a.Set(key, prev+" "+value)
		return
	}
	a.Set(key, value)
}

// Merge copies every attribute of other into a. Classes accumulate.
func (a *Attrs) Merge(other Attrs) {
	for _, p := range other.pairs {
		if p.Key == "class" {
			a.Append(p.Key, p.Value)
			continue
		}
		a.Set(p.Key, p.Value)
	}
}

// Pairs returns the attributes in insertion order.
func (a *Attrs) Pairs() []Attr {
	return a.pairs
}

// MarshalJSON encodes the attributes as an object in insertion order.
func (a Attrs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range a.pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CodeAttrs holds attributes for code block nodes.
type CodeAttrs struct {
	// Lang is the language word after the opening fence.
	Lang string

	// Text is the raw content between the fences.
	Text string
}

// ReferenceStyle indicates how a link or image names its destination.
type ReferenceStyle uint8

const (
	// RefStyleInline represents [text](url) or ![alt](url).
	RefStyleInline ReferenceStyle = iota

	// RefStyleFull represents [text][label].
	RefStyleFull

	// RefStyleCollapsed represents [label][], resolved by the label text.
	RefStyleCollapsed

	// RefStyleAutolink represents <https://example.com> and <me@example.com>.
	RefStyleAutolink
)

// String returns a human-readable name for the reference style.
func (s ReferenceStyle) String() string {
	switch s {
	case RefStyleInline:
		return "inline"
	case RefStyleFull:
		return "full"
	case RefStyleCollapsed:
		return "collapsed"
	case RefStyleAutolink:
		return "autolink"
	default:
		return "unknown"
	}
}

// LinkAttrs holds attributes for link, image, and autolink nodes.
type LinkAttrs struct {
	// Destination is the explicit URL, if any.
	Destination string

	// Reference is the reference key for full and collapsed styles.
	Reference string

	// Style indicates the syntax used.
	Style ReferenceStyle
}

// HasDestination reports whether the destination was written inline.
func (l *LinkAttrs) HasDestination() bool {
	return l.Style == RefStyleInline || l.Style == RefStyleAutolink
}
