package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
	"github.com/yaklabco/gotslint/pkg/span"
)

// Lines of source shown around the marked line in a code frame.
const (
	frameLinesAbove = 2
	frameLinesBelow = 3
)

// CodeFrameReporter prints each diagnostic followed by the surrounding
// source, marking the offending line and column.
type CodeFrameReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewCodeFrameReporter creates a new code frame reporter.
func NewCodeFrameReporter(opts Options) *CodeFrameReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &CodeFrameReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *CodeFrameReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var total int
	for _, file := range collectFiles(result, r.opts, r.styles, r.bw) {
		if len(file.diagnostics) == 0 {
			continue
		}
		fmt.Fprintln(r.bw, r.styles.FilePath.Render(file.path))

		index := span.NewLineIndex(file.source)
		for i := range file.diagnostics {
			diag := &file.diagnostics[i]
			r.writeHeading(diag)
			if file.source != nil {
				fmt.Fprint(r.bw, r.frame(index, file.source, diag))
			}
			fmt.Fprintln(r.bw)
			total++
		}
	}

	if total == 0 {
		fmt.Fprintln(r.bw)
	}
	return total, nil
}

func (r *CodeFrameReporter) writeHeading(diag *lint.Diagnostic) {
	message := r.styles.Warning.Render(diag.Message)
	if severityOf(diag) == config.SeverityError {
		message = r.styles.Error.Render(diag.Message)
	}
	fmt.Fprintf(r.bw, "%s %s\n", message, r.styles.Dim.Render("("+diag.RuleName+")"))
}

// frame renders the source lines around the diagnostic's start position.
func (r *CodeFrameReporter) frame(index *span.LineIndex, source []byte, diag *lint.Diagnostic) string {
	marked := max(diag.Start.Line, 1)
	first := max(marked-frameLinesAbove, 1)
	last := min(marked+frameLinesBelow, index.LineCount())
	width := len(strconv.Itoa(last))

	var sb strings.Builder
	for n := first; n <= last; n++ {
		text := string(index.LineText(source, n))
		number := fmt.Sprintf("%*d", width, n)

		if n != marked {
			sb.WriteString(r.gutter("  "+number+" |", text) + "\n")
			continue
		}

		sb.WriteString(r.styles.Marker.Render(">") + r.gutter(" "+number+" |", text) + "\n")
		padding := pretty.CaretPadding(text, diag.Start.Column)
		sb.WriteString(r.styles.Gutter.Render("  "+strings.Repeat(" ", width)+" | ") +
			padding + r.styles.Marker.Render("^") + "\n")
	}
	return sb.String()
}

// gutter joins a styled line-number gutter and the line text. Empty lines
// get no trailing space.
func (r *CodeFrameReporter) gutter(prefix, text string) string {
	if text == "" {
		return r.styles.Gutter.Render(prefix)
	}
	return r.styles.Gutter.Render(prefix+" ") + r.styles.SourceLine.Render(text)
}
