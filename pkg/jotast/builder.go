package jotast

import "strings"

// NewNode creates a new node of the specified kind with its kind-specific
// payload allocated.
func NewNode(kind NodeKind) *Node {
	n := &Node{Kind: kind}
	switch kind {
	case NodeCodeBlock:
		n.Code = &CodeAttrs{}
	case NodeLink, NodeImage:
		n.Link = &LinkAttrs{}
	case NodeURL, NodeEmail:
		n.Link = &LinkAttrs{Style: RefStyleAutolink}
	}
	return n
}

// NewText creates a Str node holding text.
func NewText(text string) *Node {
	n := NewNode(NodeStr)
	n.Text = text
	return n
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	detach(child)
	splice(parent, parent.LastChild, child)
}

// InsertAfter places n directly after sibling. A sibling without a parent
// has nowhere to insert, so the call does nothing.
func InsertAfter(sibling, n *Node) {
	if sibling == nil || n == nil || n == sibling || sibling.Parent == nil {
		return
	}
	detach(n)
	splice(sibling.Parent, sibling, n)
}

func detach(n *Node) {
	if n.Parent != nil {
		RemoveChild(n.Parent, n)
	}
}

// splice links the detached node n into parent's children after prev, or
// first when prev is nil.
func splice(parent, prev, n *Node) {
	n.Parent, n.Prev = parent, prev
	if prev == nil {
		n.Next = parent.FirstChild
		parent.FirstChild = n
	} else {
		n.Next = prev.Next
		prev.Next = n
	}
	if n.Next == nil {
		parent.LastChild = n
	} else {
		n.Next.Prev = n
	}
}

// RemoveChild unlinks child from parent. It does nothing when child belongs
// to another parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev == nil {
		parent.FirstChild = child.Next
	} else {
		child.Prev.Next = child.Next
	}
	if child.Next == nil {
		parent.LastChild = child.Prev
	} else {
		child.Next.Prev = child.Prev
	}
	child.Parent, child.Prev, child.Next = nil, nil, nil
}

// literals is the source text of nodes that stand for fixed markup.
//
//nolint:gochecknoglobals // Read-only lookup table.
var literals = map[NodeKind]string{
	NodeSoftBreak:        "\n",
	NodeHardBreak:        "\n",
	NodeNbsp:             "\u00a0",
	NodeEmDash:           "---",
	NodeEnDash:           "--",
	NodeEllipses:         "...",
	NodeLeftDoubleQuote:  `"`,
	NodeRightDoubleQuote: `"`,
}

// StringContent flattens the text below n. Str and Verbatim contribute their
// text, emoji their :alias:, and punctuation nodes the markup they came from.
func StringContent(n *Node) string {
	var sb strings.Builder
	enter := func(node *Node) error {
		switch node.Kind {
		case NodeStr, NodeVerbatim:
			sb.WriteString(node.Text)
		case NodeEmoji:
			sb.WriteString(":" + node.Alias + ":")
		case NodeDoubleQuoted:
			sb.WriteByte('"')
		default:
			sb.WriteString(literals[node.Kind])
		}
		return nil
	}
	leave := func(node *Node) error {
		if node.Kind == NodeDoubleQuoted {
			sb.WriteByte('"')
		}
		return nil
	}
	_ = Traverse(n, enter, leave)
	return sb.String()
}
