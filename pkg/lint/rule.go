// Package lint provides the rule contract, the tree walker, the rule
// execution coordinator and the fix convergence loop for gotslint.
package lint

import (
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/span"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleName is the name of the rule that produced this diagnostic.
	RuleName string

	// Span is the byte range the diagnostic covers.
	Span span.Span

	// Message is the human-readable description of the issue.
	Message string

	// Severity is set by the coordinator from the active rule.
	Severity config.Severity

	// Fix is the proposed correction, or nil.
	Fix *fix.Fix

	// FilePath is the path of the linted file.
	FilePath string

	// Start and End are the 1-based positions of Span.
	Start span.Position
	End   span.Position

	// Internal is true for the diagnostic that stands in for a rule that
	// failed while running. Internal diagnostics are never suppressed.
	Internal bool
}

// HasFix returns true if this diagnostic carries a fix.
func (d *Diagnostic) HasFix() bool {
	return !d.Fix.IsEmpty()
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// Name returns the unique rule name (e.g., "no-var-keyword").
	Name() string

	// Description returns a one-sentence description of what the rule checks.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// CanFix returns whether this rule proposes fixes.
	CanFix() bool

	// Apply inspects the tree held by ctx and reports findings through it.
	//
	// Rules must:
	//   - Report violations through ctx, never return them as errors.
	//   - Treat the tree and text as read-only.
	//   - Return an error only for internal failures.
	Apply(ctx *WalkContext) error
}

// BaseRule provides default metadata for Rule implementations.
// Embed it and implement Apply.
type BaseRule struct {
	name     string
	desc     string
	fixable  bool
	enabled  bool
	severity config.Severity
}

// NewBaseRule creates a BaseRule that is enabled by default with error
// severity.
func NewBaseRule(name, desc string, fixable bool) BaseRule {
	return BaseRule{
		name:     name,
		desc:     desc,
		fixable:  fixable,
		enabled:  true,
		severity: config.SeverityError,
	}
}

// WithDefaults returns a copy with the given default enablement and severity.
func (r BaseRule) WithDefaults(enabled bool, severity config.Severity) BaseRule {
	r.enabled = enabled
	r.severity = severity
	return r
}

// Name returns the rule name.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns the rule description.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns whether the rule is enabled by default.
func (r *BaseRule) DefaultEnabled() bool {
	return r.enabled
}

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return r.severity
}

// CanFix returns whether this rule proposes fixes.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}
