package jotast

import "iter"

// WalkFunc is called for each visited node. A non-nil error stops the walk.
type WalkFunc func(n *Node) error

// Walk calls fn for root and its descendants in document order and returns
// the first error fn reports.
func Walk(root *Node, fn WalkFunc) error {
	return Traverse(root, fn, nil)
}

// Traverse is Walk with a second callback, leave, made after a node's
// children have been visited. Either callback may be nil.
func Traverse(root *Node, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}
	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Traverse(child, enter, leave); err != nil {
			return err
		}
	}
	if leave != nil {
		return leave(root)
	}
	return nil
}

// Nodes yields root and its descendants in document order.
func Nodes(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var visit func(*Node) bool
		visit = func(n *Node) bool {
			if !yield(n) {
				return false
			}
			for child := n.FirstChild; child != nil; child = child.Next {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		if root != nil {
			visit(root)
		}
	}
}

// FindAll returns the nodes under root, root included, that satisfy match.
func FindAll(root *Node, match func(*Node) bool) []*Node {
	var found []*Node
	for n := range Nodes(root) {
		if match(n) {
			found = append(found, n)
		}
	}
	return found
}

// FindFirst returns the first node in document order that satisfies match,
// or nil.
func FindFirst(root *Node, match func(*Node) bool) *Node {
	for n := range Nodes(root) {
		if match(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns every node of the given kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
