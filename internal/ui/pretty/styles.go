// Package pretty holds the lipgloss styles and small text helpers shared by
// the terminal reporters.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorCyan   = "14"
	colorGray   = "8"
	colorSilver = "7"
)

// Styles is the set of styles used for diagnostics, code frames, diffs and
// summaries. With color disabled every style renders text unchanged.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleName   lipgloss.Style
	Message    lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Code frames.
	Gutter lipgloss.Style
	Marker lipgloss.Style

	// Unified diffs.
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	Success lipgloss.Style
	Failure lipgloss.Style

	// Summary tables.
	TableHeader    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(lipgloss.Color(color))
	}
	bold := func(s lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return s.Bold(true)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),

		FilePath:   bold(plain),
		Location:   fg(colorGray),
		RuleName:   fg(colorGray),
		Message:    plain,
		SourceLine: fg(colorSilver),
		Caret:      bold(fg(colorRed)),

		Gutter: fg(colorGray),
		Marker: bold(fg(colorRed)),

		DiffHeader:  bold(plain),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		Success: bold(fg(colorGreen)),
		Failure: bold(fg(colorRed)),

		TableHeader:    bold(fg(colorSilver)),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode for writer. "always" and "never"
// are absolute. Anything else is auto: color only for a terminal, and only
// when neither NO_COLOR nor GOTSLINT_NO_COLOR is set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("GOTSLINT_NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
