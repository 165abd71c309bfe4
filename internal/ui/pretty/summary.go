package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gotslint/pkg/runner"
)

// FormatSummaryOneLine renders run statistics as the line printed after
// stylish output, e.g.
//
//	12 issues (8 errors, 4 warnings) in 3 files, 6 fixable, 2 fixed in 1 file
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.DiagnosticsTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(" ("+count(stats.FilesProcessed, "file")+" checked)"))
	} else {
		head := count(stats.DiagnosticsTotal, "issue")
		if breakdown := s.severityBreakdown(stats); breakdown != "" {
			head += " (" + breakdown + ")"
		}
		parts = append(parts, head+" in "+count(stats.FilesWithIssues, "file"))

		if stats.DiagnosticsFixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
		}
		if stats.FilesUnconverged > 0 {
			parts = append(parts, s.Warning.Render(fmt.Sprintf("%d not converged", stats.FilesUnconverged)))
		}
	}

	if stats.DiagnosticsFixed > 0 {
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("%d fixed in %s", stats.DiagnosticsFixed, count(stats.FilesModified, "file"))))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d not written", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

func (s *Styles) severityBreakdown(stats runner.Stats) string {
	var out []string
	if stats.Errors > 0 {
		out = append(out, s.Error.Render(count(stats.Errors, "error")))
	}
	if stats.Warnings > 0 {
		out = append(out, s.Warning.Render(count(stats.Warnings, "warning")))
	}
	return strings.Join(out, ", ")
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
