package rules

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// NoConsoleRule disallows calls to console methods. With no "methods"
// option every console method is banned.
type NoConsoleRule struct {
	lint.BaseRule
}

// NewNoConsoleRule creates the no-console rule. It is off by default.
func NewNoConsoleRule() *NoConsoleRule {
	return &NoConsoleRule{
		BaseRule: lint.NewBaseRule("no-console", "Bans the use of specified `console` methods.", false).
			WithDefaults(false, config.SeverityError),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *NoConsoleRule) DefaultOptions() map[string]any {
	return map[string]any{"methods": []string{}}
}

// Apply reports banned console calls.
func (r *NoConsoleRule) Apply(ctx *lint.WalkContext) error {
	banned := ctx.OptionStringSlice("methods", nil)

	return ctx.Walk(func(n *syntax.Node) lint.Action {
		if n.Kind != syntax.KindCallExpression {
			return lint.Continue
		}
		callee := n.ChildByField("function")
		if callee == nil || callee.Kind != syntax.KindMemberExpression {
			return lint.Continue
		}
		object := callee.ChildByField("object")
		property := callee.ChildByField("property")
		if object == nil || property == nil || ctx.NodeText(object) != "console" {
			return lint.Continue
		}

		method := ctx.NodeText(property)
		if len(banned) > 0 && !slices.Contains(banned, method) {
			return lint.Continue
		}
		ctx.ReportNode(callee, fmt.Sprintf("Calls to 'console.%s' are not allowed.", method), nil)
		return lint.Continue
	})
}
