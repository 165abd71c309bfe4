package analysis

import "time"

// Report is the aggregated form of a run that the JSON and summary
// formats render. The JSON names follow tslint's --format json output so
// existing consumers keep working.
type Report struct {
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis    `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis    `json:"byRule,omitempty"`
	Totals      Totals            `json:"summary"`
	Version     string            `json:"version"`
	Timestamp   time.Time         `json:"timestamp"`
}

// DiagnosticEntry is one finding.
type DiagnosticEntry struct {
	FilePath string        `json:"name"`
	RuleName string        `json:"ruleName"`
	Severity string        `json:"ruleSeverity"`
	Message  string        `json:"failure"`
	Start    PositionEntry `json:"startPosition"`
	End      PositionEntry `json:"endPosition"`
	Internal bool          `json:"internal,omitempty"`
	Fixable  bool          `json:"fixable"`
	Fixes    []FixEntry    `json:"fix,omitempty"`
}

// PositionEntry locates one end of a finding. Line and Character count
// from 0; Position is the byte offset.
type PositionEntry struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Position  int `json:"position"`
}

// FixEntry is one replacement of a finding's fix.
type FixEntry struct {
	InnerStart  int    `json:"innerStart"`
	InnerLength int    `json:"innerLength"`
	InnerText   string `json:"innerText"`
}

// Totals aggregates the whole run.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesFailed     int `json:"filesFailed"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixable         int `json:"fixable"`
	RuleFailures    int `json:"ruleFailures"`
}

// FileAnalysis aggregates the findings of one file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the findings of one rule across files.
type RuleAnalysis struct {
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}

// counts is the part every group sorts on.
type counts struct {
	name                     string
	issues, errors, warnings int
}

func (f FileAnalysis) counts() counts {
	return counts{f.Path, f.Issues, f.Errors, f.Warnings}
}

func (r RuleAnalysis) counts() counts {
	return counts{r.RuleName, r.Issues, r.Errors, r.Warnings}
}
