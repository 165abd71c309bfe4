// Package fix provides the text replacement model for auto-fixing, the
// resolver that picks a conflict-free subset of proposed fixes, and the
// routines that apply an edit plan to file text.
package fix

import (
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Replacement deletes the text in Span and inserts NewText at its start.
type Replacement struct {
	// Span is the range being replaced. A zero-width span is an insertion.
	Span span.Span

	// NewText is the replacement text.
	NewText string
}

// Replace returns a replacement of [start, end) with newText.
func Replace(start, end int, newText string) Replacement {
	return Replacement{Span: span.Span{Start: start, End: end}, NewText: newText}
}

// Insert returns a replacement inserting text at offset.
func Insert(offset int, text string) Replacement {
	return Replace(offset, offset, text)
}

// ReplaceNode returns a replacement of the node's whole span with newText.
func ReplaceNode(n *syntax.Node, newText string) Replacement {
	return Replacement{Span: n.Span, NewText: newText}
}

// Delete returns a replacement removing [start, end).
func Delete(start, end int) Replacement {
	return Replace(start, end, "")
}

// Delta returns the change in text length caused by the replacement.
func (r Replacement) Delta() int {
	return len(r.NewText) - r.Span.Len()
}

// Fix is an atomic group of replacements proposed by one diagnostic.
// Either every replacement is applied or none is.
type Fix struct {
	// Replacements are kept in the order the rule proposed them. Zero-width
	// replacements at the same offset are inserted in this order.
	Replacements []Replacement
}

// New returns a fix made of the given replacements.
func New(replacements ...Replacement) *Fix {
	return &Fix{Replacements: replacements}
}

// IsEmpty returns true if the fix has no replacements.
func (f *Fix) IsEmpty() bool {
	return f == nil || len(f.Replacements) == 0
}

// EarliestStart returns the smallest start offset among the replacements.
// It returns -1 for an empty fix.
func (f *Fix) EarliestStart() int {
	if f.IsEmpty() {
		return -1
	}
	earliest := f.Replacements[0].Span.Start
	for _, r := range f.Replacements[1:] {
		earliest = min(earliest, r.Span.Start)
	}
	return earliest
}

// Overlaps reports whether any replacement in f overlaps any in other.
func (f *Fix) Overlaps(other *Fix) bool {
	if f.IsEmpty() || other.IsEmpty() {
		return false
	}
	for _, a := range f.Replacements {
		for _, b := range other.Replacements {
			if a.Span.Overlaps(b.Span) {
				return true
			}
		}
	}
	return false
}

// Builder accumulates replacements for a single fix.
type Builder struct {
	replacements []Replacement
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ReplaceRange adds a replacement of [start, end) with newText.
func (b *Builder) ReplaceRange(start, end int, newText string) *Builder {
	b.replacements = append(b.replacements, Replace(start, end, newText))
	return b
}

// Insert adds an insertion at offset.
func (b *Builder) Insert(offset int, text string) *Builder {
	return b.ReplaceRange(offset, offset, text)
}

// Delete adds a deletion of [start, end).
func (b *Builder) Delete(start, end int) *Builder {
	return b.ReplaceRange(start, end, "")
}

// Len returns the number of replacements added so far.
func (b *Builder) Len() int {
	return len(b.replacements)
}

// Fix returns the accumulated fix, or nil if nothing was added.
func (b *Builder) Fix() *Fix {
	if len(b.replacements) == 0 {
		return nil
	}
	out := make([]Replacement, len(b.replacements))
	copy(out, b.replacements)
	return &Fix{Replacements: out}
}
