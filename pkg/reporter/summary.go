package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/analysis"
)

// Column limits for the summary tables. Longer rule names are cut at the
// end, longer paths at the start so the file name stays visible.
const (
	maxRuleNameLength = 28
	maxFilePathLength = 58
)

// SummaryRenderer prints per-rule and per-file tables followed by a totals
// line.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	var blocks []string

	if report.Totals.Issues == 0 && report.Totals.FilesFailed == 0 {
		blocks = append(blocks, r.styles.Success.Render("No issues found"))
	} else {
		rules, files := r.ruleTable(report.ByRule), r.fileTable(report.ByFile)
		if r.opts.SummaryOrder == SummaryOrderFiles {
			rules, files = files, rules
		}
		for _, table := range []*summaryTable{rules, files} {
			if table != nil {
				blocks = append(blocks, table.render(r.styles))
			}
		}
		blocks = append(blocks, r.totals(report.Totals))
	}

	_, err := io.WriteString(r.out, strings.Join(blocks, "\n\n")+"\n")
	return err
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) *summaryTable {
	if len(rules) == 0 {
		return nil
	}
	table := &summaryTable{
		title: "Rules Summary",
		columns: []column{
			{title: "Rule", width: maxRuleNameLength + 2},
			{title: "Count", width: 7, right: true},
			{title: "Errors", width: 7, right: true},
			{title: "Warnings", width: 8, right: true},
			{title: "Fixable", width: 8, right: true},
		},
	}
	for _, rule := range rules {
		fixable := ""
		if rule.Fixable {
			fixable = "✓"
		}
		table.add(rowStyle(rule.Errors, rule.Warnings),
			truncateEnd(rule.RuleName, maxRuleNameLength),
			strconv.Itoa(rule.Issues),
			strconv.Itoa(rule.Errors),
			strconv.Itoa(rule.Warnings),
			fixable,
		)
	}
	return table
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) *summaryTable {
	if len(files) == 0 {
		return nil
	}
	table := &summaryTable{
		title: "Files Summary",
		columns: []column{
			{title: "File", width: maxFilePathLength + 2},
			{title: "Count", width: 7, right: true},
			{title: "Errors", width: 7, right: true},
			{title: "Warnings", width: 8, right: true},
			{title: "Rules", width: 6, right: true},
		},
	}
	for _, file := range files {
		table.add(rowStyle(file.Errors, file.Warnings),
			truncateStart(file.Path, maxFilePathLength),
			strconv.Itoa(file.Issues),
			strconv.Itoa(file.Errors),
			strconv.Itoa(file.Warnings),
			strconv.Itoa(len(file.Rules)),
		)
	}
	return table
}

// totals renders e.g. "Total: 3 issues (2 errors, 1 warning) in 2 files, 2 fixable with --fix".
func (r *SummaryRenderer) totals(t analysis.Totals) string {
	var b strings.Builder
	b.WriteString(r.styles.Bold.Render("Total: "))
	b.WriteString(plural(t.Issues, "issue"))

	var bySeverity []string
	if t.Errors > 0 {
		bySeverity = append(bySeverity, r.styles.Error.Render(plural(t.Errors, "error")))
	}
	if t.Warnings > 0 {
		bySeverity = append(bySeverity, r.styles.Warning.Render(plural(t.Warnings, "warning")))
	}
	if len(bySeverity) > 0 {
		b.WriteString(" (" + strings.Join(bySeverity, ", ") + ")")
	}

	b.WriteString(" in " + plural(t.FilesWithIssues, "file"))
	if t.Fixable > 0 {
		b.WriteString(", " + r.styles.Success.Render(fmt.Sprintf("%d fixable with --fix", t.Fixable)))
	}
	if t.FilesFailed > 0 {
		b.WriteString(" " + r.styles.Failure.Render(fmt.Sprintf("(%d failed)", t.FilesFailed)))
	}
	return b.String()
}

type cellStyle int

const (
	plainRow cellStyle = iota
	warnRow
	errorRow
)

func rowStyle(errors, warnings int) cellStyle {
	switch {
	case errors > 0:
		return errorRow
	case warnings > 0:
		return warnRow
	default:
		return plainRow
	}
}

type column struct {
	title string
	width int
	right bool
}

type summaryRow struct {
	style cellStyle
	cells []string
}

// summaryTable lays out fixed-width columns. Cells are padded by display
// width before styling so ANSI sequences do not disturb alignment. Only the
// first cell of a row carries the row's severity color.
type summaryTable struct {
	title   string
	columns []column
	rows    []summaryRow
}

func (t *summaryTable) add(style cellStyle, cells ...string) {
	t.rows = append(t.rows, summaryRow{style: style, cells: cells})
}

func (t *summaryTable) width() int {
	total := len(t.columns) - 1
	for _, col := range t.columns {
		total += col.width
	}
	return total
}

func (t *summaryTable) render(styles *pretty.Styles) string {
	rule := styles.TableSeparator.Render(strings.Repeat("─", t.width()))

	header := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = styles.TableHeader.Render(col.pad(col.title))
	}

	lines := []string{styles.Bold.Render(t.title), rule, strings.Join(header, " "), rule}
	for _, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			cells[i] = col.pad(row.cells[i])
		}
		var first lipgloss.Style
		switch row.style {
		case errorRow:
			first = styles.TableErrorRow
		case warnRow:
			first = styles.TableWarnRow
		}
		if row.style != plainRow {
			cells[0] = first.Render(cells[0])
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func (c column) pad(s string) string {
	if c.right {
		return runewidth.FillLeft(s, c.width)
	}
	return pretty.PadDisplay(s, c.width)
}

func truncateEnd(s string, limit int) string {
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit+1, "…")
}

func truncateStart(s string, limit int) string {
	width := runewidth.StringWidth(s)
	if width <= limit {
		return s
	}
	return "…" + runewidth.TruncateLeft(s, width-(limit-1), "")
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
