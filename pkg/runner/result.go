package runner

import (
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats totals a run. Diagnostic counts are taken after fixing, so they
// describe what remains in the files.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesErrored    int
	FilesWithIssues int
	// FilesSkipped were not written because they changed on disk while
	// being fixed.
	FilesSkipped int
	FilesModified int
	// FilesCached were answered from the result cache without parsing.
	FilesCached int
	// FilesUnconverged used up their fix pass budget.
	FilesUnconverged int

	DiagnosticsTotal   int
	DiagnosticsFixable int
	// DiagnosticsFixed counts edits applied across all fix passes.
	DiagnosticsFixed int
	Errors           int
	Warnings         int
	// RuleFailures counts internal diagnostics left by rules that failed.
	RuleFailures int
}

// Result is a whole run. Files are sorted by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether the run found error-severity diagnostics or
// could not process a file.
func (r *Result) HasFailures() bool {
	return r != nil && (r.Stats.Errors > 0 || r.Stats.FilesErrored > 0)
}

// HasIssues reports whether any diagnostic was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

func (r *Result) add(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.add(outcome)
}

func (s *Stats) add(outcome FileOutcome) {
	if outcome.Error != nil {
		s.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	s.FilesProcessed++
	s.FilesSkipped += b2i(res.Skipped)
	s.FilesModified += b2i(res.Written)
	s.FilesCached += b2i(res.Cached)
	if res.Fix != nil {
		s.DiagnosticsFixed += res.Fix.EditsApplied
		s.FilesUnconverged += b2i(res.Fix.BudgetExhausted)
	}

	s.DiagnosticsTotal += len(res.Diagnostics)
	s.DiagnosticsFixable += res.FixableCount()
	s.FilesWithIssues += b2i(len(res.Diagnostics) > 0)
	for i := range res.Diagnostics {
		diag := &res.Diagnostics[i]
		s.RuleFailures += b2i(diag.Internal)
		if diag.Severity == config.SeverityError {
			s.Errors++
		} else {
			s.Warnings++
		}
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
