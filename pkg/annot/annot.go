// Package annot defines the vocabulary of the tokenizer match stream: leaf
// atoms, composite span kinds, and the byte-range Match record.
package annot

import "fmt"

// Atom is a leaf token kind.
type Atom uint8

// Leaf token kinds.
const (
	Str Atom = iota
	Escape
	Hardbreak
	Nbsp
	Blankline
	ImageMarker
	LeftDoubleQuote
	RightDoubleQuote
	Ellipses
	Softbreak
	FootnoteReference
	OpenMarker
	Emoji
	ReferenceKey
	ReferenceValue
	CodeLanguage
	EmDash
	EnDash
	ID
	Class
	Key
	Value
)

//nolint:gochecknoglobals // Read-only lookup table.
var atomNames = [...]string{
	Str:               "str",
	Escape:            "escape",
	Hardbreak:         "hardbreak",
	Nbsp:              "nbsp",
	Blankline:         "blankline",
	ImageMarker:       "image_marker",
	LeftDoubleQuote:   "left_double_quote",
	RightDoubleQuote:  "right_double_quote",
	Ellipses:          "ellipses",
	Softbreak:         "softbreak",
	FootnoteReference: "footnote_reference",
	OpenMarker:        "open_marker",
	Emoji:             "emoji",
	ReferenceKey:      "reference_key",
	ReferenceValue:    "reference_value",
	CodeLanguage:      "code_language",
	EmDash:            "em_dash",
	EnDash:            "en_dash",
	ID:                "id",
	Class:             "class",
	Key:               "key",
	Value:             "value",
}

// String returns the snake_case name of the atom.
func (a Atom) String() string {
	if int(a) < len(atomNames) {
		return atomNames[a]
	}
	return fmt.Sprintf("atom(%d)", uint8(a))
}

// Mirror maps a quote atom to its counterpart. Other atoms map to themselves.
func (a Atom) Mirror() Atom {
	switch a {
	case LeftDoubleQuote:
		return RightDoubleQuote
	case RightDoubleQuote:
		return LeftDoubleQuote
	default:
		return a
	}
}

// Left returns the left-hand variant of a mirrored pair.
func (a Atom) Left() Atom {
	if a == RightDoubleQuote {
		return LeftDoubleQuote
	}
	return a
}

// Right returns the right-hand variant of a mirrored pair.
func (a Atom) Right() Atom {
	if a == LeftDoubleQuote {
		return RightDoubleQuote
	}
	return a
}

// Comp is a composite span kind, delimited by Add and Sub markers.
type Comp uint8

// Composite span kinds.
const (
	Doc Comp = iota
	Para
	Strong
	Emph
	Verbatim
	CodeBlock
	Linktext
	Imagetext
	Destination
	Reference
	Span
	DoubleQuoted
	Insert
	Delete
	Mark
	Subscript
	Superscript
	URL
	Email
	ReferenceDefinition
	Attributes
)

//nolint:gochecknoglobals // Read-only lookup table.
var compNames = [...]string{
	Doc:                 "doc",
	Para:                "para",
	Strong:              "strong",
	Emph:                "emph",
	Verbatim:            "verbatim",
	CodeBlock:           "code_block",
	Linktext:            "linktext",
	Imagetext:           "imagetext",
	Destination:         "destination",
	Reference:           "reference",
	Span:                "span",
	DoubleQuoted:        "double_quoted",
	Insert:              "insert",
	Delete:              "delete",
	Mark:                "mark",
	Subscript:           "subscript",
	Superscript:         "superscript",
	URL:                 "url",
	Email:               "email",
	ReferenceDefinition: "reference_definition",
	Attributes:          "attributes",
}

// String returns the snake_case name of the composite kind.
func (c Comp) String() string {
	if int(c) < len(compNames) {
		return compNames[c]
	}
	return fmt.Sprintf("comp(%d)", uint8(c))
}

// Add returns the start marker for c.
func (c Comp) Add() Annot { return Annot{Kind: KindAdd, Comp: c} }

// Sub returns the end marker for c.
func (c Comp) Sub() Annot { return Annot{Kind: KindSub, Comp: c} }

// Kind discriminates the Annot variants.
type Kind uint8

// Annot variants.
const (
	KindAtom Kind = iota
	KindAdd
	KindSub
)

// Annot is a leaf atom or the start/end marker of a composite span.
// The zero value is Atom(Str). Annot values compare with ==.
type Annot struct {
	Kind Kind
	Atom Atom
	Comp Comp
}

// Of wraps an atom.
func Of(a Atom) Annot { return Annot{Kind: KindAtom, Atom: a} }

// Add returns the start marker for c.
func Add(c Comp) Annot { return c.Add() }

// Sub returns the end marker for c.
func Sub(c Comp) Annot { return c.Sub() }

// IsAtom reports whether the annotation is a leaf atom.
func (a Annot) IsAtom() bool { return a.Kind == KindAtom }

// IsAdd reports whether the annotation opens a composite span.
func (a Annot) IsAdd() bool { return a.Kind == KindAdd }

// IsSub reports whether the annotation closes a composite span.
func (a Annot) IsSub() bool { return a.Kind == KindSub }

func (a Annot) String() string {
	switch a.Kind {
	case KindAdd:
		return "+" + a.Comp.String()
	case KindSub:
		return "-" + a.Comp.String()
	default:
		return a.Atom.String()
	}
}
