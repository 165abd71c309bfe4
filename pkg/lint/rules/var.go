package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// VarKeywordMessage is reported for every var declaration.
const VarKeywordMessage = "Forbidden 'var' keyword, use 'let' or 'const' instead"

// NoVarKeywordRule disallows var. The fix rewrites the keyword to let;
// ambient `declare var` declarations are left alone.
type NoVarKeywordRule struct {
	lint.BaseRule
}

// NewNoVarKeywordRule creates the no-var-keyword rule.
func NewNoVarKeywordRule() *NoVarKeywordRule {
	return &NoVarKeywordRule{
		BaseRule: lint.NewBaseRule("no-var-keyword", "Disallows usage of the `var` keyword.", true),
	}
}

// Apply reports var keywords.
func (r *NoVarKeywordRule) Apply(ctx *lint.WalkContext) error {
	return ctx.Walk(func(n *syntax.Node) lint.Action {
		if n.Kind != syntax.KindVarKeyword {
			return lint.Continue
		}
		if decl := n.Parent; decl != nil && decl.Parent != nil && decl.Parent.Type == "ambient_declaration" {
			return lint.Continue
		}
		ctx.ReportNode(n, VarKeywordMessage, fix.New(fix.ReplaceNode(n, "let")))
		return lint.Continue
	})
}
