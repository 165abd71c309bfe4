package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
	"github.com/yaklabco/gotslint/pkg/span"
)

// StylishReporter prints diagnostics as aligned columns grouped by file.
type StylishReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewStylishReporter creates a new stylish reporter.
func NewStylishReporter(opts Options) *StylishReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &StylishReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *StylishReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range collectFiles(result, r.opts, r.styles, r.bw) {
		if len(file.diagnostics) == 0 {
			continue
		}
		total += len(file.diagnostics)
		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.path, len(file.diagnostics)))
			r.writeRows(&file, "  ", false)
			fmt.Fprintln(r.bw)
		} else {
			r.writeRows(&file, "", true)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// stylishRow holds the plain text columns of one diagnostic.
type stylishRow struct {
	diag     *lint.Diagnostic
	severity string
	location string
}

// writeRows prints the file's diagnostics with every column padded to the
// widest entry so messages line up.
func (r *StylishReporter) writeRows(file *fileDiagnostics, indent string, withPath bool) {
	rows := make([]stylishRow, len(file.diagnostics))
	var sevWidth, locWidth, ruleWidth int
	for i := range file.diagnostics {
		diag := &file.diagnostics[i]
		location := fmt.Sprintf("%d:%d", diag.Start.Line, diag.Start.Column)
		if withPath {
			location = file.path + ":" + location
		}
		rows[i] = stylishRow{
			diag:     diag,
			severity: strings.ToUpper(string(severityOf(diag))),
			location: location,
		}
		sevWidth = max(sevWidth, runewidth.StringWidth(rows[i].severity))
		locWidth = max(locWidth, runewidth.StringWidth(location))
		ruleWidth = max(ruleWidth, runewidth.StringWidth(diag.RuleName))
	}

	var index *span.LineIndex
	if r.opts.ShowContext && file.source != nil {
		index = span.NewLineIndex(file.source)
	}

	for _, row := range rows {
		// Padding goes on the plain text so escape codes do not skew widths.
		sev := r.styles.FormatSeverity(severityOf(row.diag))
		sev += strings.Repeat(" ", sevWidth-runewidth.StringWidth(row.severity))
		fmt.Fprintf(r.bw, "%s%s  %s  %s  %s\n",
			indent,
			sev,
			r.styles.Location.Render(pretty.PadDisplay(row.location, locWidth)),
			r.styles.RuleName.Render(pretty.PadDisplay(row.diag.RuleName, ruleWidth)),
			r.styles.Message.Render(row.diag.Message),
		)
		if index != nil {
			writeContext(r.bw, r.styles, index, file.source, row.diag)
		}
	}
}

func writeContext(w io.Writer, styles *pretty.Styles, index *span.LineIndex, source []byte, diag *lint.Diagnostic) {
	line := index.LineText(source, diag.Start.Line)
	if line == nil {
		return
	}
	fmt.Fprint(w, styles.FormatSourceContext(string(line), diag.Start.Column))
}
