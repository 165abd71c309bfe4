// Package span provides offset-based source ranges and line/column mapping.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into a single file's text.
// A zero-width span (Start == End) marks an insertion point.
type Span struct {
	// Start is the byte index where the span begins (inclusive).
	Start int

	// End is the byte index where the span ends (exclusive).
	End int
}

// New returns the span [start, end). If end precedes start the two are swapped.
func New(start, end int) Span {
	if end < start {
		start, end = end, start
	}
	return Span{Start: start, End: end}
}

// At returns a zero-width span at offset.
func At(offset int) Span {
	return Span{Start: offset, End: offset}
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero width.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains returns true if offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Valid returns true if the span is well-formed and lies within a text of textLen bytes.
func (s Span) Valid(textLen int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= textLen
}

// Intersects reports whether s touches other for filtering purposes.
// Non-empty spans intersect when they share an offset. A zero-width span
// intersects a range that contains its point, and two zero-width spans
// intersect only when they sit at the same offset.
func (s Span) Intersects(other Span) bool {
	switch {
	case s.IsEmpty() && other.IsEmpty():
		return s.Start == other.Start
	case s.IsEmpty():
		return other.Contains(s.Start)
	case other.IsEmpty():
		return s.Contains(other.Start)
	default:
		return s.Start < other.End && other.Start < s.End
	}
}

// Overlaps reports whether two edit spans conflict.
// It differs from Intersects in one case: two zero-width spans at the same
// point never overlap, since both insertions can be applied in sequence.
// An insertion conflicts with a replacement whose range holds its point,
// including the replacement's first byte.
func (s Span) Overlaps(other Span) bool {
	if s.IsEmpty() && other.IsEmpty() {
		return false
	}
	return s.Intersects(other)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Shift returns the span moved by delta bytes.
func (s Span) Shift(delta int) Span {
	return Span{Start: s.Start + delta, End: s.End + delta}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
