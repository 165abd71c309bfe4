package reporter

import (
	"fmt"
	"io"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// fileDiagnostics is one file's share of a result, ready for printing.
type fileDiagnostics struct {
	path        string
	diagnostics []lint.Diagnostic
	source      []byte
	result      *lint.PipelineResult
}

// collectFiles walks result in order, writing file errors to errOut and
// returning the files that produced a pipeline result.
func collectFiles(result *runner.Result, opts Options, styles *pretty.Styles, errOut io.Writer) []fileDiagnostics {
	if result == nil {
		return nil
	}

	files := make([]fileDiagnostics, 0, len(result.Files))
	for _, file := range result.Files {
		path := analysis.MakeRelativePath(file.Path, opts.WorkingDir)
		if file.Error != nil {
			writeFileError(errOut, styles, path, file.Error)
			continue
		}
		if file.Result == nil {
			continue
		}
		files = append(files, fileDiagnostics{
			path:        path,
			diagnostics: file.Result.Diagnostics,
			source:      file.Result.Source,
			result:      file.Result,
		})
	}
	return files
}

func writeFileError(w io.Writer, styles *pretty.Styles, path string, err error) {
	fmt.Fprintf(w, "%s: %s\n",
		styles.FilePath.Render(path),
		styles.Error.Render(fmt.Sprintf("error: %v", err)),
	)
}

// severityOf returns the severity of diag, defaulting to warning.
func severityOf(diag *lint.Diagnostic) config.Severity {
	if diag.Severity == "" {
		return config.SeverityWarning
	}
	return diag.Severity
}

// fixedCount returns the number of edits the fix loop applied to the file.
func (f *fileDiagnostics) fixedCount() int {
	if f.result == nil || f.result.Fix == nil {
		return 0
	}
	return f.result.Fix.EditsApplied
}
