package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/analysis"
)

func renderSummary(t *testing.T, order SummaryOrder, report *analysis.Report) string {
	t.Helper()

	var buf bytes.Buffer
	renderer := NewSummaryRenderer(Options{Writer: &buf, Color: "never", SummaryOrder: order})
	require.NoError(t, renderer.Render(context.Background(), report))
	return buf.String()
}

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderRules, &analysis.Report{})

	assert.Contains(t, output, "No issues found")
}

func TestSummaryRenderer_FailedFilesOnly(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		Totals: analysis.Totals{Files: 2, FilesFailed: 1},
	})

	assert.NotContains(t, output, "No issues found")
	assert.Contains(t, output, "(1 failed)")
}

func TestSummaryRenderer_ShowsRulesTable(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleName: "no-trailing-whitespace", Issues: 5, Errors: 3, Warnings: 2, Fixable: true},
			{RuleName: "no-console", Issues: 2, Errors: 2},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "src/index.ts", Issues: 4, Errors: 3, Warnings: 1},
		},
		Totals: analysis.Totals{Issues: 7, Errors: 5, Warnings: 2, Files: 1, FilesWithIssues: 1},
	})

	assert.Contains(t, output, "Rules Summary")
	assert.Contains(t, output, "no-trailing-whitespace")
	assert.Contains(t, output, "no-console")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "src/index.ts")
	assert.Less(t, strings.Index(output, "Rules Summary"), strings.Index(output, "Files Summary"))
}

func TestSummaryRenderer_FilesFirstOrder(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderFiles, &analysis.Report{
		ByRule: []analysis.RuleAnalysis{{RuleName: "eofline", Issues: 1}},
		ByFile: []analysis.FileAnalysis{{Path: "a.ts", Issues: 1}},
		Totals: analysis.Totals{Issues: 1, Files: 1, FilesWithIssues: 1},
	})

	filesIdx := strings.Index(output, "Files Summary")
	rulesIdx := strings.Index(output, "Rules Summary")

	assert.Greater(t, rulesIdx, filesIdx, "Files should come before Rules when SummaryOrderFiles")
}

func TestSummaryRenderer_ShowsTotals(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		Totals: analysis.Totals{
			Issues:          10,
			Errors:          6,
			Warnings:        4,
			Files:           5,
			FilesWithIssues: 3,
		},
	})

	assert.Contains(t, output, "10 issues")
	assert.Contains(t, output, "6 errors")
	assert.Contains(t, output, "4 warnings")
	assert.Contains(t, output, "in 3 files")
}

func TestSummaryRenderer_FixableIndicator(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleName: "fixable-rule", Issues: 1, Fixable: true},
			{RuleName: "not-fixable", Issues: 1},
		},
		Totals: analysis.Totals{Issues: 2},
	})

	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "fixable-rule"):
			assert.Contains(t, line, "✓")
		case strings.HasPrefix(line, "not-fixable"):
			assert.NotContains(t, line, "✓")
		}
	}
}

func TestSummaryRenderer_TruncatesLongNames(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("r", maxRuleNameLength+10)
	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		ByRule: []analysis.RuleAnalysis{{RuleName: long, Issues: 1}},
		Totals: analysis.Totals{Issues: 1},
	})

	assert.NotContains(t, output, long)
	assert.Contains(t, output, strings.Repeat("r", maxRuleNameLength)+"…")
}

func TestSummaryRenderer_FixableTotalAndRuleCount(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		ByFile: []analysis.FileAnalysis{
			{Path: "src/a.ts", Issues: 3, Errors: 3, Rules: []string{"semicolon", "no-var-keyword"}},
		},
		Totals: analysis.Totals{Issues: 3, Errors: 3, Fixable: 2, Files: 1, FilesWithIssues: 1},
	})

	assert.Contains(t, output, "3 issues (3 errors) in 1 file, 2 fixable with --fix")
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "src/a.ts") {
			assert.True(t, strings.HasSuffix(line, " 2"), "rule count column: %q", line)
		}
	}
}

func TestSummaryRenderer_TruncatesLongPathsFromStart(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("d/", 40) + "index.ts"
	output := renderSummary(t, SummaryOrderRules, &analysis.Report{
		ByFile: []analysis.FileAnalysis{{Path: long, Issues: 1}},
		Totals: analysis.Totals{Issues: 1},
	})

	assert.NotContains(t, output, long)
	assert.Contains(t, output, "…")
	assert.Contains(t, output, "/index.ts")
}

func TestCamelize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"no-var-keyword": "noVarKeyword",
		"eofline":        "eofline",
		"triple-equals":  "tripleEquals",
		"trailing-":      "trailing",
	}
	for in, want := range tests {
		assert.Equal(t, want, camelize(in), in)
	}
}
