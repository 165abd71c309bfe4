package pretty

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gotslint/pkg/config"
)

// FormatSeverity returns the upper-case, styled severity label.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("ERROR")
	case config.SeverityWarning:
		return s.Warning.Render("WARNING")
	default:
		return strings.ToUpper(string(sev))
	}
}

// FormatSourceContext formats the source line with a caret under the
// 1-based byte column.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "    "

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")
	if column > 0 {
		builder.WriteString(indent + CaretPadding(line, column) + s.Caret.Render("^") + "\n")
	}
	return builder.String()
}

// CaretPadding returns whitespace as wide on screen as line up to the
// 1-based byte column. Tabs are kept so the caret lines up with tabbed
// source; other characters become spaces of their display width.
func CaretPadding(line string, column int) string {
	end := min(max(column-1, 0), len(line))

	var builder strings.Builder
	for _, r := range line[:end] {
		if r == '\t' {
			builder.WriteByte('\t')
			continue
		}
		builder.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return builder.String()
}

// PadDisplay pads str with spaces to width terminal cells.
func PadDisplay(str string, width int) string {
	return runewidth.FillRight(str, width)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
