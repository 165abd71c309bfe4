package rules

import (
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// TripleEqualsRule requires === and !== instead of == and !=.
type TripleEqualsRule struct {
	lint.BaseRule
}

// NewTripleEqualsRule creates the triple-equals rule.
func NewTripleEqualsRule() *TripleEqualsRule {
	return &TripleEqualsRule{
		BaseRule: lint.NewBaseRule("triple-equals", "Requires `===` and `!==` in place of `==` and `!=`.", true),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *TripleEqualsRule) DefaultOptions() map[string]any {
	return map[string]any{
		"allow-null-check":      false,
		"allow-undefined-check": false,
	}
}

// Apply reports loose equality operators.
func (r *TripleEqualsRule) Apply(ctx *lint.WalkContext) error {
	allowNull := ctx.OptionBool("allow-null-check", false)
	allowUndefined := ctx.OptionBool("allow-undefined-check", false)

	return ctx.Walk(func(n *syntax.Node) lint.Action {
		var strict string
		switch n.Kind {
		case syntax.KindEqualsEquals:
			strict = "==="
		case syntax.KindExclamationEquals:
			strict = "!=="
		default:
			return lint.Continue
		}

		bin := n.Parent
		if bin != nil && bin.Kind == syntax.KindBinaryExpression {
			if allowNull && hasOperandOfKind(bin, syntax.KindNullLiteral) {
				return lint.Continue
			}
			if allowUndefined && hasOperandOfKind(bin, syntax.KindUndefined) {
				return lint.Continue
			}
		}

		loose := ctx.NodeText(n)
		ctx.ReportNode(n, loose+" should be "+strict,
			fix.New(fix.Replace(n.Span.Start, n.Span.End, strict)))
		return lint.Continue
	})
}

func hasOperandOfKind(bin *syntax.Node, kind syntax.NodeKind) bool {
	for _, field := range []string{"left", "right"} {
		if op := bin.ChildByField(field); op != nil && op.Kind == kind {
			return true
		}
	}
	return false
}
