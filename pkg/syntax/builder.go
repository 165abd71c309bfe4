package syntax

import "github.com/yaklabco/gotslint/pkg/span"

// NewNode creates a named node spanning [start, end) with the given children.
// It is mainly useful for parsers and for building trees in tests; call
// NewTree on the root to link parents.
func NewNode(kind NodeKind, start, end int, children ...*Node) *Node {
	return &Node{
		Kind:     kind,
		Type:     kind.String(),
		Named:    true,
		Span:     span.Span{Start: start, End: end},
		Children: children,
	}
}

// NewToken creates an anonymous token node.
func NewToken(kind NodeKind, start, end int) *Node {
	n := NewNode(kind, start, end)
	n.Named = false
	return n
}

// WithField sets the node's field name and returns it.
func (n *Node) WithField(field string) *Node {
	n.Field = field
	return n
}
