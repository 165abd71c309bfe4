package lint

import (
	"bytes"

	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Line-based helpers for rules that inspect raw text.

// LineContent returns the content of the 1-based line without its
// terminator, or nil if the line is out of range.
func LineContent(tree *syntax.Tree, line int) []byte {
	if tree == nil {
		return nil
	}
	return tree.Lines.LineText(tree.Text, line)
}

// IsBlankLine returns true if the line contains only whitespace.
func IsBlankLine(tree *syntax.Tree, line int) bool {
	return len(bytes.TrimSpace(LineContent(tree, line))) == 0
}

// TrailingWhitespace returns the span of spaces and tabs at the end of the
// 1-based line. ok is false if there are none.
func TrailingWhitespace(tree *syntax.Tree, line int) (sp span.Span, ok bool) {
	info, found := tree.Lines.Line(line)
	if !found {
		return span.Span{}, false
	}

	start := info.NewlineStart
	for start > info.Start {
		c := tree.Text[start-1]
		if c != ' ' && c != '\t' {
			break
		}
		start--
	}
	if start == info.NewlineStart {
		return span.Span{}, false
	}
	return span.New(start, info.NewlineStart), true
}

// InsideKinds reports whether offset lies inside a node of one of the given
// kinds, such as a string or comment.
func InsideKinds(root *syntax.Node, offset int, kinds ...syntax.NodeKind) bool {
	for n := root; n != nil; {
		var next *syntax.Node
		for _, c := range n.Children {
			if c.Span.Start <= offset && offset < c.Span.End {
				next = c
				break
			}
		}
		if next == nil {
			return false
		}
		for _, k := range kinds {
			if next.Kind == k {
				return true
			}
		}
		n = next
	}
	return false
}
