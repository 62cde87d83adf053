package jotast

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind NodeKind
		want string
	}{
		{NodeDoc, "doc"},
		{NodeCodeBlock, "code_block"},
		{NodeDoubleQuoted, "double_quoted"},
		{NodeSoftBreak, "softbreak"},
		{NodeFootnoteReference, "footnote_reference"},
		{NodeKind(999), "NodeKind(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestNode_Classification(t *testing.T) {
	t.Parallel()

	assert.True(t, NewNode(NodePara).IsBlock())
	assert.True(t, NewNode(NodeEmph).IsInline())
	assert.False(t, NewNode(NodeEmph).IsLeaf())
	assert.True(t, NewNode(NodeStr).IsLeaf())
	assert.True(t, NewNode(NodeFootnoteReference).IsLeaf())
}

func TestNode_Payloads(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, NewNode(NodeCodeBlock).CodeInfo())
	assert.Equal(t, RefStyleInline, NewNode(NodeLink).LinkInfo().Style)
	assert.Equal(t, RefStyleAutolink, NewNode(NodeEmail).LinkInfo().Style)

	assert.Panics(t, func() { NewNode(NodePara).CodeInfo() })
	assert.Panics(t, func() { NewNode(NodeStr).LinkInfo() })
}

func TestTreeEditing(t *testing.T) {
	t.Parallel()

	parent := NewNode(NodePara)
	a, b, c := NewText("a"), NewText("b"), NewText("c")

	AppendChild(parent, a)
	AppendChild(parent, c)
	InsertAfter(a, b)
	require.Equal(t, []*Node{a, b, c}, parent.Children())
	assert.Equal(t, c, parent.LastChild)
	assert.Equal(t, b, c.Prev)
	assert.Equal(t, 3, parent.ChildCount())

	RemoveChild(parent, b)
	assert.Equal(t, []*Node{a, c}, parent.Children())
	assert.Nil(t, b.Parent)
	assert.Equal(t, c, a.Next)

	other := NewNode(NodeEmph)
	AppendChild(other, a)
	assert.Equal(t, []*Node{c}, parent.Children())
	assert.Equal(t, other, a.Parent)

	InsertAfter(c, b)
	assert.Equal(t, b, parent.LastChild)

	// No-ops.
	AppendChild(nil, a)
	InsertAfter(NewText("orphan"), b)
	RemoveChild(other, c)
	assert.Equal(t, []*Node{c, b}, parent.Children())
}

func TestStringContent(t *testing.T) {
	t.Parallel()

	para := NewNode(NodePara)
	strong := NewNode(NodeStrong)
	AppendChild(strong, NewText("bold"))
	verb := NewNode(NodeVerbatim)
	verb.Text = "x"

	AppendChild(para, NewText("a "))
	AppendChild(para, strong)
	AppendChild(para, NewNode(NodeSoftBreak))
	AppendChild(para, verb)
	AppendChild(para, NewNode(NodeEmDash))

	quoted := NewNode(NodeDoubleQuoted)
	AppendChild(quoted, NewText("q"))
	AppendChild(para, quoted)
	emoji := NewNode(NodeEmoji)
	emoji.Alias = "tada"
	AppendChild(para, emoji)
	AppendChild(para, NewNode(NodeEllipses))

	assert.Equal(t, "a bold\nx---\"q\":tada:...", StringContent(para))
	assert.Empty(t, StringContent(nil))
}

func TestWalk(t *testing.T) {
	t.Parallel()

	root := NewNode(NodeDoc)
	para := NewNode(NodePara)
	AppendChild(root, para)
	emph := NewNode(NodeEmph)
	AppendChild(para, emph)
	AppendChild(emph, NewText("x"))
	AppendChild(para, NewText("y"))

	var order []string
	require.NoError(t, Walk(root, func(n *Node) error {
		order = append(order, n.Kind.String())
		return nil
	}))
	assert.Equal(t, []string{"doc", "para", "emph", "str", "str"}, order)

	var events []string
	record := func(prefix string) WalkFunc {
		return func(n *Node) error {
			events = append(events, prefix+n.Kind.String())
			return nil
		}
	}
	require.NoError(t, Traverse(root, record("+"), record("-")))
	assert.Equal(t, []string{"+doc", "+para", "+emph", "+str", "-str", "-emph", "+str", "-str", "-para", "-doc"}, events)

	errBoom := errors.New("boom")
	visited := 0
	err := Walk(root, func(n *Node) error {
		visited++
		if n.Kind == NodeEmph {
			return errBoom
		}
		return nil
	})
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, 3, visited)

	assert.Len(t, FindByKind(root, NodeStr), 2)
	assert.Equal(t, emph, FindFirst(root, func(n *Node) bool { return n.Kind == NodeEmph }))
	assert.Nil(t, FindFirst(root, func(n *Node) bool { return n.Kind == NodeLink }))
	assert.NoError(t, Walk(nil, nil))

	var kinds []string
	for n := range Nodes(para) {
		kinds = append(kinds, n.Kind.String())
		if n.Kind == NodeEmph {
			break
		}
	}
	assert.Equal(t, []string{"para", "emph"}, kinds)
}
