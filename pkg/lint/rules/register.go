package rules

import "github.com/yaklabco/gotslint/pkg/lint"

// All returns a fresh instance of every built-in rule.
func All() []lint.Rule {
	return []lint.Rule{
		// Functionality
		NewNoNullKeywordRule(),
		NewNoVarKeywordRule(),
		NewTripleEqualsRule(),
		NewNoDebuggerRule(),
		NewNoConsoleRule(),

		// Style
		NewSemicolonRule(),
		NewQuotemarkRule(),

		// Layout
		NewTrailingWhitespaceRule(),
		NewConsecutiveBlankLinesRule(),
		NewEOFLineRule(),
	}
}

// NewRegistry returns a registry holding all built-in rules.
func NewRegistry() *lint.Registry {
	return lint.NewRegistry(All()...)
}
