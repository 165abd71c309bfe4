package lint

import (
	"context"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// WalkContext is one rule's private session over one tree. Its only
// mutation surface is reporting: rules cannot see other rules' findings or
// alter the tree.
//
// Design note: WalkContext stores context.Context rather than taking it as
// a parameter on every method. It is a short-lived parameter object created
// per rule run, and rules observe cancellation through Cancelled.
type WalkContext struct {
	ctx     context.Context
	tree    *syntax.Tree
	rule    string
	message string
	options map[string]any
	diags   []Diagnostic
}

// NewWalkContext creates a session for rule over tree. message is the
// default text used by Record actions. Exposed for rule tests; the
// coordinator builds its own.
func NewWalkContext(ctx context.Context, tree *syntax.Tree, rule Rule, options map[string]any) *WalkContext {
	return &WalkContext{
		ctx:     ctx,
		tree:    tree,
		rule:    rule.Name(),
		message: rule.Description(),
		options: options,
	}
}

// Context returns the run's context.
func (c *WalkContext) Context() context.Context {
	return c.ctx
}

// Cancelled returns true if the run's context has been cancelled.
func (c *WalkContext) Cancelled() bool {
	return c.ctx.Err() != nil
}

// Tree returns the tree being linted.
func (c *WalkContext) Tree() *syntax.Tree {
	return c.tree
}

// Root returns the tree root.
func (c *WalkContext) Root() *syntax.Node {
	return c.tree.Root
}

// Text returns the file text. It must not be modified.
func (c *WalkContext) Text() []byte {
	return c.tree.Text
}

// NodeText returns the source text of n as a string.
func (c *WalkContext) NodeText(n *syntax.Node) string {
	return string(c.tree.NodeText(n))
}

// RuleName returns the name of the rule this session belongs to.
func (c *WalkContext) RuleName() string {
	return c.rule
}

// Report records a finding over sp with an optional fix.
func (c *WalkContext) Report(sp span.Span, message string, f *fix.Fix) {
	c.diags = append(c.diags, Diagnostic{
		RuleName: c.rule,
		Span:     sp,
		Message:  message,
		Fix:      f,
	})
}

// ReportNode records a finding over n's span with an optional fix.
func (c *WalkContext) ReportNode(n *syntax.Node, message string, f *fix.Fix) {
	c.Report(n.Span, message, f)
}

// Diagnostics returns what has been reported so far.
func (c *WalkContext) Diagnostics() []Diagnostic {
	return c.diags
}

// Option returns a rule-specific option value, or the default if not set.
func (c *WalkContext) Option(key string, defaultValue any) any {
	if v, ok := c.options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (c *WalkContext) OptionInt(key string, defaultValue int) int {
	switch val := c.Option(key, defaultValue).(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (c *WalkContext) OptionString(key string, defaultValue string) string {
	if s, ok := c.Option(key, defaultValue).(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (c *WalkContext) OptionBool(key string, defaultValue bool) bool {
	if b, ok := c.Option(key, defaultValue).(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (c *WalkContext) OptionStringSlice(key string, defaultValue []string) []string {
	switch val := c.Option(key, defaultValue).(type) {
	case []string:
		return val
	case []any:
		// YAML and TOML decode lists as []any.
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
