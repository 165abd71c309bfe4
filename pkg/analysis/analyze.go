// Package analysis aggregates a run's results into per-file and per-rule
// views for the formats that print totals.
package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
	"github.com/yaklabco/gotslint/pkg/span"
)

// ReportVersion is written to Report.Version.
const ReportVersion = "1.0.0"

// MakeRelativePath returns absPath relative to workDir, or absPath itself
// when workDir is empty or no relative form exists.
func MakeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	if rel, err := filepath.Rel(workDir, absPath); err == nil {
		return rel
	}
	return absPath
}

// Analyze folds result into a Report in one pass over the diagnostics.
// A nil result yields an empty report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	agg := aggregator{
		files: make(map[string]*fileGroup),
		rules: make(map[string]*ruleGroup),
	}

	for _, file := range result.Files {
		report.Totals.Files++
		switch {
		case file.Error != nil:
			report.Totals.FilesFailed++
			continue
		case file.Result == nil:
			continue
		}

		diags := file.Result.Diagnostics
		if len(diags) == 0 {
			continue
		}
		report.Totals.FilesWithIssues++

		path := MakeRelativePath(file.Path, opts.WorkingDir)
		for i := range diags {
			diag := &diags[i]
			agg.add(path, diag, &report.Totals)
			if opts.wants(ViewDiagnostics) {
				report.Diagnostics = append(report.Diagnostics, NewDiagnosticEntry(path, diag))
			}
		}
	}

	if opts.wants(ViewByRule) {
		report.ByRule = agg.byRule(opts.Sort)
	}
	if opts.wants(ViewByFile) {
		report.ByFile = agg.byFile(opts.Sort)
	}
	return report
}

// NewDiagnosticEntry converts a diagnostic to its report form. Positions
// become 0-based; a missing severity reads as warning.
func NewDiagnosticEntry(path string, diag *lint.Diagnostic) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath: path,
		RuleName: diag.RuleName,
		Severity: string(severityOf(diag)),
		Message:  diag.Message,
		Start:    positionEntry(diag.Start, diag.Span.Start),
		End:      positionEntry(diag.End, diag.Span.End),
		Internal: diag.Internal,
		Fixable:  diag.HasFix(),
	}
	if !entry.Fixable {
		return entry
	}
	entry.Fixes = make([]FixEntry, 0, len(diag.Fix.Replacements))
	for _, r := range diag.Fix.Replacements {
		entry.Fixes = append(entry.Fixes, FixEntry{
			InnerStart:  r.Span.Start,
			InnerLength: r.Span.Len(),
			InnerText:   r.NewText,
		})
	}
	return entry
}

func positionEntry(pos span.Position, offset int) PositionEntry {
	return PositionEntry{
		Line:      max(pos.Line-1, 0),
		Character: max(pos.Column-1, 0),
		Position:  offset,
	}
}

func severityOf(diag *lint.Diagnostic) config.Severity {
	return cmp.Or(diag.Severity, config.SeverityWarning)
}

type fileGroup struct {
	FileAnalysis
	rules map[string]struct{}
}

type ruleGroup struct {
	RuleAnalysis
	files map[string]struct{}
}

type aggregator struct {
	files map[string]*fileGroup
	rules map[string]*ruleGroup
}

func (a *aggregator) add(path string, diag *lint.Diagnostic, totals *Totals) {
	file, ok := a.files[path]
	if !ok {
		file = &fileGroup{FileAnalysis: FileAnalysis{Path: path}, rules: make(map[string]struct{})}
		a.files[path] = file
	}
	rule, ok := a.rules[diag.RuleName]
	if !ok {
		rule = &ruleGroup{RuleAnalysis: RuleAnalysis{RuleName: diag.RuleName}, files: make(map[string]struct{})}
		a.rules[diag.RuleName] = rule
	}

	totals.Issues++
	file.Issues++
	rule.Issues++
	file.rules[diag.RuleName] = struct{}{}
	rule.files[path] = struct{}{}

	switch severityOf(diag) {
	case config.SeverityError:
		totals.Errors++
		file.Errors++
		rule.Errors++
	case config.SeverityWarning:
		totals.Warnings++
		file.Warnings++
		rule.Warnings++
	}

	if diag.HasFix() {
		totals.Fixable++
		rule.Fixable = true
	}
	if diag.Internal {
		totals.RuleFailures++
	}
}

func (a *aggregator) byFile(order SortOrder) []FileAnalysis {
	out := make([]FileAnalysis, 0, len(a.files))
	for _, g := range a.files {
		g.Rules = slices.Sorted(maps.Keys(g.rules))
		out = append(out, g.FileAnalysis)
	}
	sortGroups(out, order)
	return out
}

func (a *aggregator) byRule(order SortOrder) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(a.rules))
	for _, g := range a.rules {
		g.Files = slices.Sorted(maps.Keys(g.files))
		out = append(out, g.RuleAnalysis)
	}
	sortGroups(out, order)
	return out
}

func sortGroups[T interface{ counts() counts }](groups []T, order SortOrder) {
	slices.SortFunc(groups, func(x, y T) int {
		a, b := x.counts(), y.counts()
		var c int
		switch order {
		case SortName:
		case SortSeverity:
			c = cmp.Or(cmp.Compare(b.errors, a.errors), cmp.Compare(b.warnings, a.warnings), cmp.Compare(b.issues, a.issues))
		default:
			c = cmp.Compare(b.issues, a.issues)
		}
		return cmp.Or(c, cmp.Compare(a.name, b.name))
	})
}
