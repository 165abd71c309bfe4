package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Semicolon messages.
const (
	MissingSemicolonMessage     = "Missing semicolon"
	UnnecessarySemicolonMessage = "Unnecessary semicolon"
)

// Semicolon styles.
const (
	SemicolonAlways = "always"
	SemicolonNever  = "never"
)

// terminatedStatements are the grammar types that end with a semicolon
// or with automatic semicolon insertion.
//
//nolint:gochecknoglobals // Static lookup table
var terminatedStatements = map[string]bool{
	"expression_statement":   true,
	"variable_declaration":   true,
	"lexical_declaration":    true,
	"return_statement":       true,
	"throw_statement":        true,
	"break_statement":        true,
	"continue_statement":     true,
	"debugger_statement":     true,
	"import_statement":       true,
	"type_alias_declaration": true,
	"do_statement":           true,
}

// SemicolonRule enforces (style "always") or forbids (style "never")
// semicolons at the end of statements.
type SemicolonRule struct {
	lint.BaseRule
}

// NewSemicolonRule creates the semicolon rule.
func NewSemicolonRule() *SemicolonRule {
	return &SemicolonRule{
		BaseRule: lint.NewBaseRule("semicolon", "Enforces consistent semicolon usage at the end of every statement.", true),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *SemicolonRule) DefaultOptions() map[string]any {
	return map[string]any{"style": SemicolonAlways}
}

// Apply checks statement terminators.
func (r *SemicolonRule) Apply(ctx *lint.WalkContext) error {
	never := ctx.OptionString("style", SemicolonAlways) == SemicolonNever
	text := ctx.Text()

	return ctx.Walk(func(n *syntax.Node) lint.Action {
		if !terminatedStatements[n.Type] || !isStatementContext(n) || containsError(n) {
			return lint.Continue
		}

		last := n.Child(n.ChildCount() - 1)
		hasSemicolon := last != nil && last.Kind == syntax.KindSemicolon

		switch {
		case !never && !hasSemicolon:
			ctx.Report(span.At(n.Span.End), MissingSemicolonMessage, fix.New(fix.Insert(n.Span.End, ";")))
		case never && hasSemicolon && !asiHazard(text, last.Span.End):
			ctx.ReportNode(last, UnnecessarySemicolonMessage, fix.New(fix.Delete(last.Span.Start, last.Span.End)))
		}
		return lint.Continue
	})
}

// isStatementContext excludes declarations that are part of a for header,
// whose separator belongs to the loop.
func isStatementContext(n *syntax.Node) bool {
	if n.Parent == nil {
		return true
	}
	switch n.Parent.Type {
	case "for_statement", "for_in_statement":
		return false
	}
	return true
}

func containsError(n *syntax.Node) bool {
	return syntax.FindFirst(n, func(c *syntax.Node) bool { return c.Kind == syntax.KindError }) != nil
}

// asiHazard reports whether removing a semicolon at offset would join the
// statement with the next one.
func asiHazard(text []byte, offset int) bool {
	for i := offset; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '(', '[', '`', '+', '-', '/':
			return true
		default:
			return false
		}
	}
	return false
}
