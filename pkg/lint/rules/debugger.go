package rules

import (
	"bytes"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// DebuggerMessage is reported for every debugger statement.
const DebuggerMessage = "Use of debugger statements is forbidden"

// NoDebuggerRule disallows debugger statements. The fix removes the
// statement, and its whole line when nothing else is on it.
type NoDebuggerRule struct {
	lint.BaseRule
}

// NewNoDebuggerRule creates the no-debugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: lint.NewBaseRule("no-debugger", "Disallows `debugger` statements.", true),
	}
}

// Apply reports debugger statements.
func (r *NoDebuggerRule) Apply(ctx *lint.WalkContext) error {
	tree := ctx.Tree()
	return ctx.Walk(func(n *syntax.Node) lint.Action {
		if n.Kind != syntax.KindDebuggerStatement {
			return lint.Continue
		}
		rs := removalSpan(tree, n.Span)
		ctx.ReportNode(n, DebuggerMessage, fix.New(fix.Delete(rs.Start, rs.End)))
		return lint.Skip
	})
}

// removalSpan widens sp to its full line, terminator included, when the
// line holds nothing but sp and whitespace.
func removalSpan(tree *syntax.Tree, sp span.Span) span.Span {
	start := tree.Lines.Position(sp.Start)
	end := tree.Lines.Position(sp.End)
	if start.Line != end.Line {
		return sp
	}

	line, ok := tree.Lines.Line(start.Line)
	if !ok {
		return sp
	}
	before := tree.Text[line.Start:sp.Start]
	after := tree.Text[sp.End:line.NewlineStart]
	if len(bytes.TrimSpace(before)) != 0 || len(bytes.TrimSpace(after)) != 0 {
		return sp
	}
	return span.New(line.Start, line.End)
}
