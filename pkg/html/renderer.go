// Package html renders a jotast.Document as an HTML fragment.
package html

import (
	"bytes"
	"io"
	"strconv"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/gojot/pkg/jotast"
	"github.com/yaklabco/gojot/pkg/langdetect"
)

// Options configures rendering.
type Options struct {
	// DetectLanguage guesses a language class for code blocks without one.
	DetectLanguage bool
}

// Renderer writes documents as HTML.
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render returns doc as an HTML string.
func Render(doc *jotast.Document, opts Options) string {
	var buf bytes.Buffer
	w := &writer{doc: doc, opts: opts, buf: &buf}
	w.children(doc.Root)
	return buf.String()
}

// Write renders doc to w.
func (r *Renderer) Write(w io.Writer, doc *jotast.Document) error {
	_, err := io.WriteString(w, Render(doc, r.opts))
	return err
}

type writer struct {
	doc  *jotast.Document
	opts Options
	buf  *bytes.Buffer
}

func (w *writer) out(s string) {
	w.buf.WriteString(s)
}

func (w *writer) text(s string) {
	w.buf.Write(util.EscapeHTML([]byte(s)))
}

func escapeURL(s string) string {
	return string(util.EscapeHTML(util.URLEscape([]byte(s), false)))
}

func escape(s string) string {
	return string(util.EscapeHTML([]byte(s)))
}

func (w *writer) children(n *jotast.Node) {
	for child := n.FirstChild; child != nil; child = child.Next {
		w.node(child)
	}
}

// open writes <name ...> with the node's attributes.
func (w *writer) open(name string, attrs *jotast.Attrs) {
	w.openRaw(name, attrs, nil)
}

func (w *writer) attr(key, value string) {
	w.out(" ")
	w.out(key)
	w.out(`="`)
	w.text(value)
	w.out(`"`)
}

// wrap renders n's children inside <name>...</name>.
func (w *writer) wrap(name string, n *jotast.Node) {
	w.open(name, &n.Attrs)
	w.children(n)
	w.out("</" + name + ">")
}

//nolint:gocyclo,cyclop // One case per node kind.
func (w *writer) node(n *jotast.Node) {
	switch n.Kind {
	case jotast.NodeDoc:
		w.children(n)
	case jotast.NodeHeading:
		level := min(max(n.Level, 1), 6)
		w.wrap("h"+strconv.Itoa(level), n)
		w.out("\n")
	case jotast.NodePara:
		w.wrap("p", n)
		w.out("\n")
	case jotast.NodeCodeBlock:
		w.codeBlock(n)
	case jotast.NodeLink:
		var lead []jotast.Attr
		if dest, ok := w.doc.Resolve(n); ok {
			lead = append(lead, jotast.Attr{Key: "href", Value: escapeURL(dest)})
		}
		w.openRaw("a", &n.Attrs, lead)
		w.children(n)
		w.out("</a>")
	case jotast.NodeImage:
		var lead []jotast.Attr
		if alt := jotast.StringContent(n); alt != "" {
			lead = append(lead, jotast.Attr{Key: "alt", Value: escape(alt)})
		}
		if dest, ok := w.doc.Resolve(n); ok {
			lead = append(lead, jotast.Attr{Key: "src", Value: escapeURL(dest)})
		}
		w.openRaw("img", &n.Attrs, lead)
	case jotast.NodeURL:
		w.openRaw("a", &n.Attrs, []jotast.Attr{{Key: "href", Value: escapeURL(n.LinkInfo().Destination)}})
		w.children(n)
		w.out("</a>")
	case jotast.NodeEmail:
		w.openRaw("a", &n.Attrs, []jotast.Attr{{Key: "href", Value: "mailto:" + escapeURL(n.LinkInfo().Destination)}})
		w.children(n)
		w.out("</a>")
	case jotast.NodeStrong:
		w.wrap("strong", n)
	case jotast.NodeEmph:
		w.wrap("em", n)
	case jotast.NodeInsert:
		w.wrap("ins", n)
	case jotast.NodeDelete:
		w.wrap("del", n)
	case jotast.NodeMark:
		w.wrap("mark", n)
	case jotast.NodeSuperscript:
		w.wrap("sup", n)
	case jotast.NodeSubscript:
		w.wrap("sub", n)
	case jotast.NodeSpan:
		w.wrap("span", n)
	case jotast.NodeStr:
		w.spanned(n, func() { w.text(n.Text) })
	case jotast.NodeVerbatim:
		w.open("code", &n.Attrs)
		w.text(n.Text)
		w.out("</code>")
	case jotast.NodeSoftBreak:
		w.out("\n")
	case jotast.NodeHardBreak:
		w.out("<br>\n")
	default:
		w.spanned(n, func() { w.symbol(n) })
	}
}

// spanned runs body inside a span carrying n's attributes, or bare when it
// has none.
func (w *writer) spanned(n *jotast.Node, body func()) {
	if n.Attrs.Len() == 0 {
		body()
		return
	}
	w.open("span", &n.Attrs)
	body()
	w.out("</span>")
}

// symbol writes nodes that have no element of their own.
func (w *writer) symbol(n *jotast.Node) {
	switch n.Kind {
	case jotast.NodeDoubleQuoted:
		w.out("&ldquo;")
		w.children(n)
		w.out("&rdquo;")
	case jotast.NodeNbsp:
		w.out("&nbsp;")
	case jotast.NodeEmDash:
		w.out("&mdash;")
	case jotast.NodeEnDash:
		w.out("&ndash;")
	case jotast.NodeEllipses:
		w.out("&hellip;")
	case jotast.NodeLeftDoubleQuote:
		w.out("&ldquo;")
	case jotast.NodeRightDoubleQuote:
		w.out("&rdquo;")
	case jotast.NodeEmoji:
		if glyph, ok := Emoji(n.Alias); ok {
			w.out(glyph)
			return
		}
		w.text(":" + n.Alias + ":")
	case jotast.NodeFootnoteReference:
		w.out(`<a href="#fn-`)
		w.out(escapeURL(n.Alias))
		w.out(`" role="doc-noteref"><sup>`)
		w.text(n.Alias)
		w.out("</sup></a>")
	}
}

// openRaw writes <name ...> with leading attributes whose values are already
// escaped, followed by the node's attributes.
func (w *writer) openRaw(name string, attrs *jotast.Attrs, lead []jotast.Attr) {
	w.out("<")
	w.out(name)
	for _, a := range lead {
		w.rawAttr(a.Key, a.Value)
	}
	if attrs != nil {
		for _, a := range attrs.Pairs() {
			w.attr(a.Key, a.Value)
		}
	}
	w.out(">")
}

func (w *writer) rawAttr(key, value string) {
	w.out(" " + key + `="` + value + `"`)
}

func (w *writer) codeBlock(n *jotast.Node) {
	code := n.CodeInfo()
	w.open("pre", &n.Attrs)
	lang := code.Lang
	if lang == "" && w.opts.DetectLanguage {
		lang = langdetect.Detect([]byte(code.Text))
	}
	if lang != "" {
		w.openRaw("code", nil, []jotast.Attr{{Key: "class", Value: escape("language-" + lang)}})
	} else {
		w.out("<code>")
	}
	w.text(code.Text)
	w.out("</code></pre>\n")
}
