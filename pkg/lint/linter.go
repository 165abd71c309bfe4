package lint

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// State is the convergence loop state.
type State int

const (
	StateInitial State = iota
	StateLinted
	StateStable
	StateEdited
	StateBudgetExhausted
)

var stateNames = [...]string{
	StateInitial:         "initial",
	StateLinted:          "linted",
	StateStable:          "stable",
	StateEdited:          "edited",
	StateBudgetExhausted: "budget-exhausted",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// LintResult is the outcome of a single pass without fixing.
type LintResult struct {
	Path        string
	Tree        *syntax.Tree
	Diagnostics []Diagnostic
	Stats       RunStats
}

// FixResult is the outcome of the convergence loop.
type FixResult struct {
	Path string

	// Original is the text the loop started from.
	Original []byte

	// FinalText is the text after the last applied plan.
	FinalText []byte

	// Diagnostics are those of the last pass performed. When the loop
	// stopped Stable they describe FinalText. When the budget ran out they
	// were computed before the last plan was applied.
	Diagnostics []Diagnostic

	// Tree is the tree of the last pass performed.
	Tree *syntax.Tree

	// PassesUsed counts parse and lint cycles. It never exceeds the budget.
	PassesUsed int

	BudgetExhausted bool
	State           State

	// EditsApplied counts replacements applied over all passes.
	EditsApplied int

	// FixedDiagnostics counts diagnostics whose fix was applied.
	FixedDiagnostics int

	// Conflicts counts fixes deferred because they overlapped an accepted
	// fix, summed over passes.
	Conflicts int

	// InvalidFixes counts fixes dropped by validation, summed over passes.
	InvalidFixes int
}

// Changed reports whether FinalText differs from Original.
func (r *FixResult) Changed() bool {
	return !bytes.Equal(r.Original, r.FinalText)
}

// Linter combines a parser and an engine into the single-pass and
// fix-to-fixed-point operations.
type Linter struct {
	Parser Parser
	Engine *Engine
}

// NewLinter creates a Linter. A nil engine gets NewEngine defaults.
func NewLinter(parser Parser, engine *Engine) *Linter {
	if engine == nil {
		engine = NewEngine()
	}
	return &Linter{Parser: parser, Engine: engine}
}

// Lint parses text and runs rules over it once.
func (l *Linter) Lint(ctx context.Context, path string, text []byte, rules []ActiveRule) (*LintResult, error) {
	tree, err := l.Parser.Parse(ctx, path, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}

	diags, stats := l.Engine.Run(ctx, &File{Path: path, Tree: tree}, rules)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lint %s: %w", path, err)
	}

	return &LintResult{Path: path, Tree: tree, Diagnostics: diags, Stats: stats}, nil
}

// LintAndFix lints text, applies a conflict-free subset of the proposed
// fixes and repeats on the new text until no fix can be applied or
// maxPasses parse and lint cycles have run. Only fixes from rules with
// AutoFix set are applied. maxPasses <= 0 means config.DefaultMaxFixPasses.
func (l *Linter) LintAndFix(
	ctx context.Context,
	path string,
	text []byte,
	rules []ActiveRule,
	maxPasses int,
) (*FixResult, error) {
	if maxPasses <= 0 {
		maxPasses = config.DefaultMaxFixPasses
	}

	logger := logging.FromContext(ctx)
	observer := observerOrNop(l.Engine.Observer)

	autoFix := make(map[string]bool, len(rules))
	for _, ar := range rules {
		if ar.AutoFix {
			autoFix[ar.Rule.Name()] = true
		}
	}

	result := &FixResult{Path: path, Original: text, State: StateInitial}
	current := text

	for {
		pass, err := l.Lint(ctx, path, current, rules)
		if err != nil {
			return nil, err
		}
		result.PassesUsed++
		result.State = StateLinted
		result.Diagnostics = pass.Diagnostics
		result.Tree = pass.Tree

		candidates := fixCandidates(pass.Diagnostics, autoFix)
		if len(candidates) == 0 {
			result.State = StateStable
			break
		}

		plan := fix.Resolve(candidates, len(current))
		for _, inv := range plan.Invalid {
			d := &result.Diagnostics[inv.Order]
			logger.Debug("dropping invalid fix",
				logging.FieldPath, path,
				logging.FieldRule, d.RuleName,
				logging.FieldSpan, d.Span.String(),
				logging.FieldError, inv.Err)
			d.Fix = nil
		}
		if len(plan.Rejected) > 0 {
			logger.Debug("deferring conflicting fixes",
				logging.FieldPath, path,
				logging.FieldPass, result.PassesUsed,
				logging.FieldConflicts, len(plan.Rejected))
		}
		for _, order := range plan.Rejected {
			result.Diagnostics[order].Fix = nil
		}
		result.InvalidFixes += len(plan.Invalid)
		result.Conflicts += len(plan.Rejected)
		observer.PassDone(len(plan.Accepted), len(plan.Rejected), len(plan.Invalid))

		if plan.IsEmpty() {
			result.State = StateStable
			break
		}

		next, err := fix.Apply(current, plan)
		if err != nil {
			return nil, fmt.Errorf("apply fixes to %s: %w", path, err)
		}
		current = next
		result.EditsApplied += len(plan.Replacements)
		result.FixedDiagnostics += len(plan.Accepted)
		result.State = StateEdited

		if result.PassesUsed >= maxPasses {
			result.State = StateBudgetExhausted
			result.BudgetExhausted = true
			logger.Warn("fix pass budget exhausted; fixes may be oscillating",
				logging.FieldPath, path,
				logging.FieldMaxPasses, maxPasses,
				logging.FieldEdits, result.EditsApplied)
			break
		}
	}

	result.FinalText = current
	observer.FixDone(result.State, result.PassesUsed)
	return result, nil
}

// fixCandidates returns one candidate per fixable diagnostic. Order is the
// diagnostic's index, so ties follow diagnostic order.
func fixCandidates(diags []Diagnostic, autoFix map[string]bool) []fix.Candidate {
	var out []fix.Candidate
	for i := range diags {
		d := &diags[i]
		if d.Internal || !d.HasFix() || !autoFix[d.RuleName] {
			continue
		}
		out = append(out, fix.Candidate{Fix: d.Fix, Order: i})
	}
	return out
}
