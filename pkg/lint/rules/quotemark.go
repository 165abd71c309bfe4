package rules

import (
	"strings"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Quote styles.
const (
	QuoteDouble = "double"
	QuoteSingle = "single"
)

// QuotemarkRule enforces one quote character for string literals. With
// avoid-escape, a string may use the other quote to avoid escaping.
type QuotemarkRule struct {
	lint.BaseRule
}

// NewQuotemarkRule creates the quotemark rule.
func NewQuotemarkRule() *QuotemarkRule {
	return &QuotemarkRule{
		BaseRule: lint.NewBaseRule("quotemark", "Enforces quote character for string literals.", true),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *QuotemarkRule) DefaultOptions() map[string]any {
	return map[string]any{
		"quote":        QuoteDouble,
		"avoid-escape": true,
	}
}

// Apply reports string literals using the other quote character.
func (r *QuotemarkRule) Apply(ctx *lint.WalkContext) error {
	want := byte('"')
	if ctx.OptionString("quote", QuoteDouble) == QuoteSingle {
		want = '\''
	}
	avoidEscape := ctx.OptionBool("avoid-escape", true)

	return ctx.WalkWith(lint.WalkOptions{IncludeTypes: true}, func(n *syntax.Node) lint.Action {
		if n.Kind != syntax.KindStringLiteral {
			return lint.Continue
		}
		if n.Parent != nil && n.Parent.Type == "jsx_attribute" {
			return lint.Skip
		}

		raw := ctx.NodeText(n)
		if len(raw) < 2 {
			return lint.Skip
		}
		have := raw[0]
		if have == want || (have != '"' && have != '\'') || raw[len(raw)-1] != have {
			return lint.Skip
		}

		inner := raw[1 : len(raw)-1]
		if avoidEscape && strings.IndexByte(inner, want) >= 0 {
			return lint.Skip
		}

		requoted := string(want) + requote(inner, have, want) + string(want)
		ctx.ReportNode(n, string(have)+" should be "+string(want),
			fix.New(fix.Replace(n.Span.Start, n.Span.End, requoted)))
		return lint.Skip
	})
}

// requote rewrites string content quoted with from for quoting with to:
// escaped from quotes lose their backslash and bare to quotes gain one.
func requote(inner string, from, to byte) string {
	var b strings.Builder
	b.Grow(len(inner) + 2)
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\' && i+1 < len(inner):
			next := inner[i+1]
			if next != from {
				b.WriteByte(c)
			}
			b.WriteByte(next)
			i++
		case c == to:
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
