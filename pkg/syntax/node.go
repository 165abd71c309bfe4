// Package syntax defines the read-only syntax tree the lint engine walks.
// Trees are produced by a parser package (for example parser/treesitter)
// and are never mutated after construction, so any number of rules may
// walk the same tree concurrently.
package syntax

import "github.com/yaklabco/gotslint/pkg/span"

// Node is a single node in a syntax tree.
type Node struct {
	// Kind is the closed classification of the node.
	Kind NodeKind

	// Type is the parser's raw node type (e.g. "lexical_declaration").
	Type string

	// Field is the name of the field this node occupies in its parent, if any.
	Field string

	// Named is false for anonymous tokens such as punctuation and keywords.
	Named bool

	// Span is the node's byte range in the file text.
	Span span.Span

	// Parent is nil for the root.
	Parent *Node

	// Children are ordered by source position.
	Children []*Node

	// Index is this node's position in Parent.Children.
	Index int
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Children)
}

// Child returns the i-th child, or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildByField returns the first child occupying the named field.
func (n *Node) ChildByField(field string) *Node {
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildOfKind returns the first direct child of the given kind.
func (n *Node) ChildOfKind(kind NodeKind) *Node {
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Child(n.Index + 1)
}

// PrevSibling returns the preceding sibling, or nil.
func (n *Node) PrevSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	return n.Parent.Child(n.Index - 1)
}

// IsTypeSyntax reports whether the node is part of a type annotation.
func (n *Node) IsTypeSyntax() bool {
	return IsTypeSyntax(n.Kind)
}

// InTypeSyntax reports whether the node or any ancestor is type syntax.
func (n *Node) InTypeSyntax() bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.IsTypeSyntax() {
			return true
		}
	}
	return false
}

// Tree is an immutable parsed file.
type Tree struct {
	// Path is the logical file path (may be empty for in-memory text).
	Path string

	// Language is the grammar the tree was parsed with.
	Language string

	// Text is the full file content. It must not be modified.
	Text []byte

	// Root is the tree root.
	Root *Node

	// Lines maps offsets in Text to line/column positions.
	Lines *span.LineIndex

	// HasErrors is true if the parser recovered from syntax errors.
	HasErrors bool
}

// NewTree links parent pointers below root and returns the tree.
func NewTree(path string, text []byte, root *Node) *Tree {
	if root != nil {
		root.Parent = nil
		link(root)
	}
	return &Tree{
		Path:  path,
		Text:  text,
		Root:  root,
		Lines: span.NewLineIndex(text),
	}
}

func link(n *Node) {
	for i, c := range n.Children {
		c.Parent = n
		c.Index = i
		link(c)
	}
}

// NodeText returns the source text covered by n.
// Returns nil if the node lies outside the text.
func (t *Tree) NodeText(n *Node) []byte {
	if n == nil || !n.Span.Valid(len(t.Text)) {
		return nil
	}
	return t.Text[n.Span.Start:n.Span.End]
}

// Position returns the 1-based start position of offset.
func (t *Tree) Position(offset int) span.Position {
	return t.Lines.Position(offset)
}
