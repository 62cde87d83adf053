// Package jsonast serializes a parsed document as JSON.
package jsonast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yaklabco/gojot/pkg/jotast"
)

// Document is the top-level JSON structure.
type Document struct {
	Tag        string               `json:"tag"`
	Children   []*Node              `json:"children"`
	References map[string]Reference `json:"references"`
}

// Node is one element of the tree. Payload fields appear only for the kinds
// that carry them.
type Node struct {
	Tag         string        `json:"tag"`
	Attrs       *jotast.Attrs `json:"attrs,omitempty"`
	Children    []*Node       `json:"children,omitempty"`
	Text        *string       `json:"text,omitempty"`
	Lang        string        `json:"lang,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Reference   string        `json:"reference,omitempty"`
	Alias       string        `json:"alias,omitempty"`
	Label       string        `json:"label,omitempty"`
	Level       int           `json:"level,omitempty"`
}

// Reference is a reference definition keyed by its normalized label.
type Reference struct {
	Destination string `json:"destination"`
}

// Convert builds the JSON structure for doc.
func Convert(doc *jotast.Document) *Document {
	out := &Document{
		Tag:        jotast.NodeDoc.String(),
		Children:   children(doc.Root),
		References: make(map[string]Reference, len(doc.References)),
	}
	if out.Children == nil {
		out.Children = []*Node{}
	}
	for key, def := range doc.References {
		out.References[key] = Reference{Destination: def.Destination}
	}
	return out
}

// Marshal returns doc as JSON, indented with two spaces when indent is set.
func Marshal(doc *jotast.Document, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(Convert(doc), "", "  ")
	} else {
		data, err = json.Marshal(Convert(doc))
	}
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// Encode writes doc to w as indented JSON followed by a newline.
func Encode(w io.Writer, doc *jotast.Document) (err error) {
	bw := bufio.NewWriter(w)
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("flush output: %w", flushErr)
		}
	}()

	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Convert(doc)); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

func children(n *jotast.Node) []*Node {
	var out []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		out = append(out, convert(child))
	}
	return out
}

func attrs(a *jotast.Attrs) *jotast.Attrs {
	if a.Len() == 0 {
		return nil
	}
	return a
}

func convert(n *jotast.Node) *Node {
	out := &Node{
		Tag:      n.Kind.String(),
		Attrs:    attrs(&n.Attrs),
		Children: children(n),
	}
	switch n.Kind {
	case jotast.NodeStr, jotast.NodeVerbatim:
		text := n.Text
		out.Text = &text
	case jotast.NodeCodeBlock:
		code := n.CodeInfo()
		out.Lang = code.Lang
		out.Text = &code.Text
	case jotast.NodeLink, jotast.NodeImage, jotast.NodeURL, jotast.NodeEmail:
		link := n.LinkInfo()
		out.Destination = link.Destination
		out.Reference = link.Reference
	case jotast.NodeEmoji:
		out.Alias = n.Alias
	case jotast.NodeFootnoteReference:
		out.Label = n.Alias
	case jotast.NodeHeading:
		out.Level = n.Level
	default:
	}
	return out
}
