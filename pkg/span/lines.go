package span

import "sort"

// Position is a 1-based line and column. Columns count bytes, not runes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Line describes one line of text.
type Line struct {
	// Start is the byte offset of the first character of the line.
	Start int

	// NewlineStart is the offset of the line terminator (\n or \r\n),
	// or the end of the text for an unterminated last line.
	NewlineStart int

	// End is the offset just past the line terminator.
	End int
}

// LineIndex maps byte offsets to line/column positions for one text.
// It handles both LF and CRLF line endings.
type LineIndex struct {
	lines   []Line
	textLen int
}

// NewLineIndex builds the line table for text.
func NewLineIndex(text []byte) *LineIndex {
	idx := &LineIndex{textLen: len(text)}
	lineStart := 0

	for i, ch := range text {
		if ch != '\n' {
			continue
		}
		newlineStart := i
		if i > lineStart && text[i-1] == '\r' {
			newlineStart = i - 1
		}
		idx.lines = append(idx.lines, Line{Start: lineStart, NewlineStart: newlineStart, End: i + 1})
		lineStart = i + 1
	}

	// The last line may be empty or unterminated.
	idx.lines = append(idx.lines, Line{Start: lineStart, NewlineStart: len(text), End: len(text)})

	return idx
}

// LineCount returns the number of lines. Empty text has one empty line.
func (idx *LineIndex) LineCount() int {
	return len(idx.lines)
}

// Line returns the metadata for a 1-based line number.
func (idx *LineIndex) Line(line int) (Line, bool) {
	if line < 1 || line > len(idx.lines) {
		return Line{}, false
	}
	return idx.lines[line-1], true
}

// Position converts a byte offset to a 1-based position.
// Offsets past the end of the text clamp to the end of the last line.
// Returns the zero Position for negative offsets.
func (idx *LineIndex) Position(offset int) Position {
	if offset < 0 {
		return Position{}
	}
	offset = min(offset, idx.textLen)

	lineIdx := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].End > offset
	})
	if lineIdx >= len(idx.lines) {
		lineIdx = len(idx.lines) - 1
	}

	return Position{Line: lineIdx + 1, Column: offset - idx.lines[lineIdx].Start + 1}
}

// Offset converts a 1-based line and column to a byte offset.
// The column may point one past the last character of the line.
func (idx *LineIndex) Offset(line, col int) (int, bool) {
	info, ok := idx.Line(line)
	if !ok || col < 1 {
		return 0, false
	}
	offset := info.Start + col - 1
	if offset > info.NewlineStart {
		return 0, false
	}
	return offset, true
}

// LineStart returns the offset of the first byte of the line holding offset.
func (idx *LineIndex) LineStart(offset int) int {
	pos := idx.Position(offset)
	if !pos.IsValid() {
		return 0
	}
	return idx.lines[pos.Line-1].Start
}

// LineText returns the content of a 1-based line without its terminator.
func (idx *LineIndex) LineText(text []byte, line int) []byte {
	info, ok := idx.Line(line)
	if !ok || info.NewlineStart > len(text) {
		return nil
	}
	return text[info.Start:info.NewlineStart]
}
