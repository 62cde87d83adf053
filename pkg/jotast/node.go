// Package jotast defines the document tree produced by the parser.
package jotast

import "fmt"

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level elements.
const (
	NodeDoc NodeKind = iota

	// Block-level nodes.
	NodeHeading
	NodePara
	NodeCodeBlock

	// Inline containers.
	NodeLink
	NodeImage
	NodeStrong
	NodeEmph
	NodeInsert
	NodeDelete
	NodeMark
	NodeSuperscript
	NodeSubscript
	NodeSpan
	NodeDoubleQuoted
	NodeURL
	NodeEmail

	// Inline leaves.
	NodeStr
	NodeVerbatim
	NodeSoftBreak
	NodeHardBreak
	NodeNbsp
	NodeEmDash
	NodeEnDash
	NodeEllipses
	NodeLeftDoubleQuote
	NodeRightDoubleQuote
	NodeEmoji
	NodeFootnoteReference
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	NodeDoc:               "doc",
	NodeHeading:           "heading",
	NodePara:              "para",
	NodeCodeBlock:         "code_block",
	NodeLink:              "link",
	NodeImage:             "image",
	NodeStrong:            "strong",
	NodeEmph:              "emph",
	NodeInsert:            "insert",
	NodeDelete:            "delete",
	NodeMark:              "mark",
	NodeSuperscript:       "superscript",
	NodeSubscript:         "subscript",
	NodeSpan:              "span",
	NodeDoubleQuoted:      "double_quoted",
	NodeURL:               "url",
	NodeEmail:             "email",
	NodeStr:               "str",
	NodeVerbatim:          "verbatim",
	NodeSoftBreak:         "softbreak",
	NodeHardBreak:         "hardbreak",
	NodeNbsp:              "nbsp",
	NodeEmDash:            "em_dash",
	NodeEnDash:            "en_dash",
	NodeEllipses:          "ellipses",
	NodeLeftDoubleQuote:   "left_double_quote",
	NodeRightDoubleQuote:  "right_double_quote",
	NodeEmoji:             "emoji",
	NodeFootnoteReference: "footnote_reference",
}

// String returns the snake_case tag name of the kind.
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", uint16(k))
}

// Node represents a single node in the document tree.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Attrs holds the ordered attributes attached with {…} syntax.
	Attrs Attrs

	// Text is the literal content of Str and Verbatim nodes.
	Text string

	// Alias is the emoji name without colons, or the footnote label.
	Alias string

	// Level is the heading level.
	Level int

	// Code holds code block attributes for NodeCodeBlock.
	Code *CodeAttrs

	// Link holds destination attributes for links, images, and autolinks.
	Link *LinkAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDoc, NodeHeading, NodePara, NodeCodeBlock:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	return !n.IsBlock()
}

// IsLeaf reports whether nodes of this kind never carry children.
func (n *Node) IsLeaf() bool {
	return n.Kind >= NodeStr
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// CodeInfo returns the code block payload. It panics for other kinds.
func (n *Node) CodeInfo() *CodeAttrs {
	if n.Kind != NodeCodeBlock || n.Code == nil {
		panic(fmt.Sprintf("jotast: %s node has no code attributes", n.Kind))
	}
	return n.Code
}

// LinkInfo returns the destination payload. It panics for kinds that do
// not carry one.
func (n *Node) LinkInfo() *LinkAttrs {
	switch n.Kind {
	case NodeLink, NodeImage, NodeURL, NodeEmail:
		if n.Link != nil {
			return n.Link
		}
	}
	panic(fmt.Sprintf("jotast: %s node has no link attributes", n.Kind))
}
