package rules

import (
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// NullKeywordMessage is reported for every null literal.
const NullKeywordMessage = "Use 'undefined' instead of 'null'"

// NoNullKeywordRule disallows the null keyword literal. Type syntax is not
// inspected, so `let x: string | null` is allowed.
type NoNullKeywordRule struct {
	lint.BaseRule
}

// NewNoNullKeywordRule creates the no-null-keyword rule.
func NewNoNullKeywordRule() *NoNullKeywordRule {
	return &NoNullKeywordRule{
		BaseRule: lint.NewBaseRule("no-null-keyword", "Disallows use of the `null` keyword literal.", false),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *NoNullKeywordRule) DefaultOptions() map[string]any {
	return map[string]any{"allow-equality": false}
}

// Apply reports null literals.
func (r *NoNullKeywordRule) Apply(ctx *lint.WalkContext) error {
	allowEquality := ctx.OptionBool("allow-equality", false)

	return ctx.WalkWith(lint.WalkOptions{Message: NullKeywordMessage}, func(n *syntax.Node) lint.Action {
		if n.Kind != syntax.KindNullLiteral {
			return lint.Continue
		}
		if allowEquality && isLooseEqualityOperand(n) {
			return lint.Skip
		}
		return lint.RecordAndSkip
	})
}

// isLooseEqualityOperand reports whether n is an operand of == or !=.
func isLooseEqualityOperand(n *syntax.Node) bool {
	op := binaryOperator(n.Parent)
	return op != nil && (op.Kind == syntax.KindEqualsEquals || op.Kind == syntax.KindExclamationEquals)
}

// binaryOperator returns the operator token of a binary expression.
func binaryOperator(n *syntax.Node) *syntax.Node {
	if n == nil || n.Kind != syntax.KindBinaryExpression {
		return nil
	}
	return n.ChildByField("operator")
}
