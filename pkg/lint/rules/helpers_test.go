package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
)

//nolint:gochecknoglobals // Shared across tests; the parser is concurrency safe.
var testParser = treesitter.New()

func activeRule(rule lint.Rule, options map[string]any) []lint.ActiveRule {
	return []lint.ActiveRule{{
		Rule:     rule,
		Severity: rule.DefaultSeverity(),
		Options:  options,
		AutoFix:  rule.CanFix(),
	}}
}

// lintSource runs one rule over src and returns its diagnostics.
func lintSource(t *testing.T, rule lint.Rule, path, src string, options map[string]any) []lint.Diagnostic {
	t.Helper()

	res, err := lint.NewLinter(testParser, nil).Lint(context.Background(), path, []byte(src), activeRule(rule, options))
	require.NoError(t, err)
	for _, d := range res.Diagnostics {
		require.False(t, d.Internal, d.Message)
	}
	return res.Diagnostics
}

// fixSource runs one rule's fixes to a fixed point and returns the text.
func fixSource(t *testing.T, rule lint.Rule, path, src string, options map[string]any) string {
	t.Helper()

	res, err := lint.NewLinter(testParser, nil).LintAndFix(context.Background(), path, []byte(src), activeRule(rule, options), 0)
	require.NoError(t, err)
	require.False(t, res.BudgetExhausted, "fixes did not converge")
	return string(res.FinalText)
}

func messages(diags []lint.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}
