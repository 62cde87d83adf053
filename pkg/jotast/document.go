package jotast

import (
	"sort"
	"strings"
)

// ReferenceDefinition is a `[key]: destination` entry.
type ReferenceDefinition struct {
	Key         string
	Destination string
}

// Document is the result of parsing one source text.
type Document struct {
	// Root is the NodeDoc node holding the block children.
	Root *Node

	// References maps normalized keys to their definitions.
	References map[string]*ReferenceDefinition

	// Debug holds the match dump when requested at parse time.
	Debug string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		Root:       NewNode(NodeDoc),
		References: make(map[string]*ReferenceDefinition),
	}
}

// AddReference records def under its normalized key. A later definition of
// the same key replaces an earlier one.
func (d *Document) AddReference(def *ReferenceDefinition) {
	d.References[NormalizeKey(def.Key)] = def
}

// Reference looks up a definition by key.
func (d *Document) Reference(key string) (*ReferenceDefinition, bool) {
	def, ok := d.References[NormalizeKey(key)]
	return def, ok
}

// ReferenceKeys returns the normalized keys in sorted order.
func (d *Document) ReferenceKeys() []string {
	keys := make([]string, 0, len(d.References))
	for k := range d.References {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve returns the destination for a link or image node. An inline
// destination wins; otherwise the reference table is consulted.
func (d *Document) Resolve(n *Node) (string, bool) {
	link := n.LinkInfo()
	if link.HasDestination() {
		return link.Destination, true
	}
	if def, ok := d.Reference(link.Reference); ok {
		return def.Destination, true
	}
	return "", false
}

// NormalizeKey collapses whitespace runs to single spaces and trims the ends.
func NormalizeKey(key string) string {
	return strings.Join(strings.Fields(key), " ")
}
