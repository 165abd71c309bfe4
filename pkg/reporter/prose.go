package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// ProseReporter prints one "SEVERITY: path:line:col - message" line per
// diagnostic, preceded by a line for each file the fix loop changed.
type ProseReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewProseReporter creates a new prose reporter.
func NewProseReporter(opts Options) *ProseReporter {
	return &ProseReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ProseReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	files := collectFiles(result, r.opts, pretty.NewStyles(false), r.bw)

	var fixed bool
	for _, file := range files {
		if n := file.fixedCount(); n > 0 {
			fmt.Fprintf(r.bw, "Fixed %d error(s) in %s\n", n, file.path)
			fixed = true
		}
	}

	var total int
	for _, file := range files {
		for i := range file.diagnostics {
			if fixed && total == 0 {
				fmt.Fprintln(r.bw)
			}
			diag := &file.diagnostics[i]
			fmt.Fprintf(r.bw, "%s: %s:%d:%d - %s\n",
				strings.ToUpper(string(severityOf(diag))),
				file.path, diag.Start.Line, diag.Start.Column,
				diag.Message,
			)
			total++
		}
	}
	return total, nil
}
