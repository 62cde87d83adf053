package jot

import (
	"strings"

	"github.com/yaklabco/gojot/pkg/annot"
	"github.com/yaklabco/gojot/pkg/jotast"
)

// treeBuilder folds the flat match list into a jotast.Document.
type treeBuilder struct {
	subject string
	matches []annot.Match
	idx     int
	doc     *jotast.Document
}

func buildTree(subject string, matches []annot.Match) *jotast.Document {
	t := &treeBuilder{
		subject: subject,
		matches: matches,
		doc:     jotast.NewDocument(),
	}
	t.children(t.doc.Root, annot.Doc)
	return t.doc
}

// next consumes the next match; running out of matches is a tokenizer bug.
func (t *treeBuilder) next(inside annot.Comp) annot.Match {
	if t.idx >= len(t.matches) {
		panic(invariantf("match stream ended inside %s", inside))
	}
	m := t.matches[t.idx]
	t.idx++
	return m
}

func (t *treeBuilder) peek() (annot.Match, bool) {
	if t.idx >= len(t.matches) {
		return annot.Match{}, false
	}
	return t.matches[t.idx], true
}

// children appends nodes to parent until the Sub match closing comp.
func (t *treeBuilder) children(parent *jotast.Node, comp annot.Comp) {
	for {
		if comp == annot.Doc && t.idx >= len(t.matches) {
			return
		}
		m := t.next(comp)
		switch m.Annot.Kind {
		case annot.KindSub:
			if m.Annot.Comp != comp {
				panic(invariantf("unexpected %s at offset %d inside %s", m.Annot, m.Start, comp))
			}
			return
		case annot.KindAdd:
			t.composite(parent, m)
		case annot.KindAtom:
			t.atom(parent, m)
		}
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var compKinds = map[annot.Comp]jotast.NodeKind{
	annot.Para:         jotast.NodePara,
	annot.Strong:       jotast.NodeStrong,
	annot.Emph:         jotast.NodeEmph,
	annot.Verbatim:     jotast.NodeVerbatim,
	annot.CodeBlock:    jotast.NodeCodeBlock,
	annot.Linktext:     jotast.NodeLink,
	annot.Imagetext:    jotast.NodeImage,
	annot.Span:         jotast.NodeSpan,
	annot.DoubleQuoted: jotast.NodeDoubleQuoted,
	annot.Insert:       jotast.NodeInsert,
	annot.Delete:       jotast.NodeDelete,
	annot.Mark:         jotast.NodeMark,
	annot.Subscript:    jotast.NodeSubscript,
	annot.Superscript:  jotast.NodeSuperscript,
	annot.URL:          jotast.NodeURL,
	annot.Email:        jotast.NodeEmail,
}

func (t *treeBuilder) composite(parent *jotast.Node, open annot.Match) {
	comp := open.Annot.Comp
	switch comp {
	case annot.Attributes:
		t.applyAttributes(parent, t.attributes())
		return
	case annot.ReferenceDefinition:
		t.referenceDefinition()
		return
	}

	kind, ok := compKinds[comp]
	if !ok {
		panic(invariantf("unexpected %s at offset %d", open.Annot, open.Start))
	}
	node := jotast.NewNode(kind)
	t.children(node, comp)

	switch comp {
	case annot.Linktext, annot.Imagetext:
		t.linkTarget(node)
	case annot.CodeBlock:
		node.Code.Text = jotast.StringContent(node)
		removeChildren(node)
	case annot.Verbatim:
		node.Text = trimVerbatim(jotast.StringContent(node))
		removeChildren(node)
	case annot.URL, annot.Email:
		node.Link.Destination = jotast.StringContent(node)
	}
	jotast.AppendChild(parent, node)
}

func (t *treeBuilder) atom(parent *jotast.Node, m annot.Match) {
	text := m.Text(t.subject)
	switch m.Annot.Atom {
	case annot.Blankline, annot.ImageMarker, annot.Escape:
	case annot.Str, annot.OpenMarker:
		jotast.AppendChild(parent, jotast.NewText(text))
	case annot.Softbreak:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeSoftBreak))
	case annot.Hardbreak:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeHardBreak))
	case annot.Nbsp:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeNbsp))
	case annot.EmDash:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeEmDash))
	case annot.EnDash:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeEnDash))
	case annot.Ellipses:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeEllipses))
	case annot.LeftDoubleQuote:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeLeftDoubleQuote))
	case annot.RightDoubleQuote:
		jotast.AppendChild(parent, jotast.NewNode(jotast.NodeRightDoubleQuote))
	case annot.Emoji:
		n := jotast.NewNode(jotast.NodeEmoji)
		n.Alias = strings.Trim(text, ":")
		jotast.AppendChild(parent, n)
	case annot.FootnoteReference:
		n := jotast.NewNode(jotast.NodeFootnoteReference)
		n.Alias = text[2 : len(text)-1]
		jotast.AppendChild(parent, n)
	case annot.CodeLanguage:
		parent.CodeInfo().Lang = text
	default:
		panic(invariantf("unexpected %s at offset %d", m.Annot, m.Start))
	}
}

// linkTarget consumes the destination or reference that follows link text.
func (t *treeBuilder) linkTarget(node *jotast.Node) {
	m, ok := t.peek()
	if !ok {
		return
	}
	scratch := jotast.NewNode(jotast.NodeSpan)
	switch m.Annot {
	case annot.Add(annot.Destination):
		t.idx++
		t.children(scratch, annot.Destination)
		node.Link.Destination = stripNewlines(jotast.StringContent(scratch))
		node.Link.Style = jotast.RefStyleInline
	case annot.Add(annot.Reference):
		t.idx++
		t.children(scratch, annot.Reference)
		key := jotast.StringContent(scratch)
		node.Link.Style = jotast.RefStyleFull
		if key == "" {
			key = jotast.StringContent(node)
			node.Link.Style = jotast.RefStyleCollapsed
		}
		node.Link.Reference = key
	}
}

// attributes consumes the matches of an attribute block up to its closing
// Sub match.
func (t *treeBuilder) attributes() jotast.Attrs {
	var attrs jotast.Attrs
	var key string
	lastWasValue := false
	for {
		m := t.next(annot.Attributes)
		if m.Is(annot.Sub(annot.Attributes)) {
			return attrs
		}
		text := m.Text(t.subject)
		isValue := false
		switch m.Annot {
		case annot.Of(annot.ID):
			attrs.Set("id", text)
		case annot.Of(annot.Class):
			attrs.Append("class", text)
		case annot.Of(annot.Key):
			key = text
		case annot.Of(annot.Value):
			isValue = true
			value := unescapeValue(text)
			switch {
			case lastWasValue:
				prev, _ := attrs.Get(key)
				attrs.Set(key, prev+" "+value)
			case key == "class":
				attrs.Append(key, value)
			default:
				attrs.Set(key, value)
			}
		default:
			panic(invariantf("unexpected %s inside attributes at offset %d", m.Annot, m.Start))
		}
		lastWasValue = isValue
	}
}

// applyAttributes attaches attrs to the last child of parent. When that
// child is text, only its final word receives them. Text ending in
// whitespace and line breaks receive nothing.
func (t *treeBuilder) applyAttributes(parent *jotast.Node, attrs jotast.Attrs) {
	target := parent.LastChild
	if target == nil {
		return
	}
	switch target.Kind {
	case jotast.NodeSoftBreak, jotast.NodeHardBreak:
		return
	case jotast.NodeStr:
		text := target.Text
		i := len(text)
		for i > 0 && !isSpace(text[i-1]) {
			i--
		}
		if i == len(text) {
			return
		}
		if i > 0 {
			word := jotast.NewText(text[i:])
			target.Text = text[:i]
			jotast.InsertAfter(target, word)
			target = word
		}
	}
	target.Attrs.Merge(attrs)
}

func (t *treeBuilder) referenceDefinition() {
	def := &jotast.ReferenceDefinition{}
	var dest strings.Builder
	for {
		m := t.next(annot.ReferenceDefinition)
		if m.Is(annot.Sub(annot.ReferenceDefinition)) {
			break
		}
		switch m.Annot {
		case annot.Of(annot.ReferenceKey):
			def.Key = m.Text(t.subject)
		case annot.Of(annot.ReferenceValue):
			dest.WriteString(m.Text(t.subject))
		default:
			panic(invariantf("unexpected %s inside reference definition at offset %d", m.Annot, m.Start))
		}
	}
	def.Destination = dest.String()
	t.doc.AddReference(def)
}

func removeChildren(n *jotast.Node) {
	for n.FirstChild != nil {
		jotast.RemoveChild(n, n.FirstChild)
	}
}

// trimVerbatim drops one space padding a leading or trailing backtick, so
// `` `a` `` can be written.
func trimVerbatim(s string) string {
	if _, ok := find(s, patVerbatimLead, 0); ok {
		s = s[1:]
	}
	if _, ok := find(s, patVerbatimTrail, 0); ok {
		s = s[:len(s)-1]
	}
	return s
}

// unescapeValue removes backslashes before any character in a quoted
// attribute value.
func unescapeValue(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func stripNewlines(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}
