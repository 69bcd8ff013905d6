// Package ofxtree provides the raw element tree for OFX documents.
//
// OFX comes in two flavours: v1 is SGML where leaf elements carry no closing
// tag ("<CODE>0<SEVERITY>INFO"), v2 is regular XML. Both are read into the
// same Node tree, which is the surface the document repairer operates on
// before the typed aggregate decode.
package ofxtree

// Node is one element of the raw document tree. Leaf nodes carry Text,
// aggregate nodes carry Children; real-world files occasionally carry both,
// which the tree preserves as-is.
type Node struct {
	Name     string
	Text     string
	Children []*Node
}

// Child returns the first direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// RemoveChild removes the first direct child identical to the given node.
// It reports whether a node was removed.
func (n *Node) RemoveChild(target *Node) bool {
	for i, child := range n.Children {
		if child == target {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Walk visits n and every descendant in document order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// FindAll returns every descendant (including n itself) with the given name,
// in document order.
func (n *Node) FindAll(name string) []*Node {
	var found []*Node
	n.Walk(func(node *Node) {
		if node.Name == name {
			found = append(found, node)
		}
	})
	return found
}
