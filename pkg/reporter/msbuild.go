package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// MSBuildReporter prints diagnostics in the format Visual Studio and
// MSBuild parse: "path(line,col): severity ruleName: message".
type MSBuildReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewMSBuildReporter creates a new MSBuild reporter.
func NewMSBuildReporter(opts Options) *MSBuildReporter {
	return &MSBuildReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *MSBuildReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var total int
	for _, file := range collectFiles(result, r.opts, pretty.NewStyles(false), r.bw) {
		for i := range file.diagnostics {
			diag := &file.diagnostics[i]
			fmt.Fprintf(r.bw, "%s(%d,%d): %s %s: %s\n",
				file.path, diag.Start.Line, diag.Start.Column,
				severityOf(diag), camelize(diag.RuleName), diag.Message,
			)
			total++
		}
	}
	return total, nil
}

// camelize turns a dashed rule name into lower camel case:
// "no-var-keyword" becomes "noVarKeyword".
func camelize(name string) string {
	parts := strings.Split(name, "-")
	var sb strings.Builder
	sb.Grow(len(name))
	sb.WriteString(parts[0])
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
