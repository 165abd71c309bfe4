package lint

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/suppress"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

const tracerName = "github.com/yaklabco/gotslint/pkg/lint"

// ActiveRule is a rule together with its resolved settings for a run.
type ActiveRule struct {
	Rule Rule

	// Severity is applied to every diagnostic the rule produces. Empty
	// means the rule's default severity.
	Severity config.Severity

	// Options are the rule-specific options from configuration.
	Options map[string]any

	// AutoFix allows the convergence loop to apply this rule's fixes.
	AutoFix bool
}

// File is the input of one coordinator run.
type File struct {
	Path string
	Tree *syntax.Tree
}

// RunStats summarizes one coordinator run.
type RunStats struct {
	Rules      int
	Failed     int
	Reported   int
	Suppressed int
	Malformed  int
}

// Engine runs active rules over one tree and collects their diagnostics.
// An Engine holds no per-run state and may be shared across goroutines.
type Engine struct {
	// Concurrency bounds how many rules run at once. Zero or negative
	// means GOMAXPROCS; 1 runs rules sequentially. Output is identical
	// either way.
	Concurrency int

	// Known reports whether a rule name exists, for suppression directives.
	// Nil accepts every name.
	Known func(name string) bool

	// Observer receives per-rule events. Nil disables them.
	Observer Observer
}

// NewEngine creates an Engine with default concurrency.
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) concurrency() int {
	if e.Concurrency > 0 {
		return e.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

type ruleOutput struct {
	diags  []Diagnostic
	failed bool
}

// Run executes every rule against file and returns the surviving
// diagnostics ordered by span start, then rule order, then emission order.
//
// A rule that returns an error or panics contributes exactly one internal
// diagnostic and its partial output is discarded; the other rules are not
// affected.
func (e *Engine) Run(ctx context.Context, file *File, rules []ActiveRule) ([]Diagnostic, RunStats) {
	ctx, sp := otel.Tracer(tracerName).Start(ctx, "lint.Run", trace.WithAttributes(
		attribute.String("gotslint.path", file.Path),
		attribute.Int("gotslint.rules", len(rules)),
	))
	defer sp.End()

	stats := RunStats{Rules: len(rules)}
	outputs := make([]ruleOutput, len(rules))

	var group errgroup.Group
	group.SetLimit(e.concurrency())
	for i, ar := range rules {
		group.Go(func() error {
			outputs[i] = e.runRule(ctx, file, ar)
			return nil
		})
	}
	_ = group.Wait()

	regions := suppress.ScanDialect(file.Tree.Text, suppress.DialectFor(file.Tree.Language), e.Known)
	stats.Malformed = len(regions.Malformed)
	if stats.Malformed > 0 {
		logger := logging.FromContext(ctx)
		for _, m := range regions.Malformed {
			logger.Debug("ignoring malformed directive",
				logging.FieldPath, file.Path,
				logging.FieldSpan, m.Span.String(),
				logging.FieldDirective, m.Text,
				logging.FieldReason, m.Reason)
		}
	}

	type entry struct {
		diag Diagnostic
		rule int
		emit int
	}
	var entries []entry
	for i, out := range outputs {
		if out.failed {
			stats.Failed++
		}
		stats.Reported += len(out.diags)
		for j, d := range out.diags {
			if !d.Internal && regions.Suppresses(d.RuleName, d.Span) {
				stats.Suppressed++
				continue
			}
			entries = append(entries, entry{diag: d, rule: i, emit: j})
		}
	}
	observerOrNop(e.Observer).Suppressed(stats.Suppressed)

	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.diag.Span.Start, b.diag.Span.Start); c != 0 {
			return c
		}
		if c := cmp.Compare(a.rule, b.rule); c != 0 {
			return c
		}
		return cmp.Compare(a.emit, b.emit)
	})

	diags := make([]Diagnostic, len(entries))
	for i, en := range entries {
		d := en.diag
		if !d.Internal {
			d.Severity = severityFor(rules[en.rule])
		}
		d.FilePath = file.Path
		d.Start = file.Tree.Lines.Position(d.Span.Start)
		d.End = file.Tree.Lines.Position(d.Span.End)
		diags[i] = d
	}

	sp.SetAttributes(
		attribute.Int("gotslint.diagnostics", len(diags)),
		attribute.Int("gotslint.suppressed", stats.Suppressed),
	)
	return diags, stats
}

func severityFor(ar ActiveRule) config.Severity {
	if ar.Severity != "" && ar.Severity != config.SeverityOff {
		return ar.Severity
	}
	return ar.Rule.DefaultSeverity()
}

func (e *Engine) runRule(ctx context.Context, file *File, ar ActiveRule) ruleOutput {
	name := ar.Rule.Name()
	ctx, sp := otel.Tracer(tracerName).Start(ctx, "lint.rule", trace.WithAttributes(
		attribute.String("gotslint.rule", name),
	))
	defer sp.End()

	wc := NewWalkContext(ctx, file.Tree, ar.Rule, ar.Options)

	start := time.Now()
	err := applyRule(ar.Rule, wc)
	elapsed := time.Since(start)

	if err != nil {
		sp.RecordError(err)
		sp.SetStatus(codes.Error, "rule failed")
		logging.FromContext(ctx).Debug("rule failed",
			logging.FieldPath, file.Path,
			logging.FieldRule, name,
			logging.FieldError, err)
		observerOrNop(e.Observer).RuleDone(name, elapsed, 1, true)
		return ruleOutput{diags: []Diagnostic{internalDiagnostic(name, err)}, failed: true}
	}

	observerOrNop(e.Observer).RuleDone(name, elapsed, len(wc.diags), false)
	return ruleOutput{diags: wc.diags}
}

// applyRule runs the rule and converts errors and panics into a RuleError.
func applyRule(rule Rule, wc *WalkContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &RuleError{Rule: rule.Name(), Cause: fmt.Errorf("panic: %v", r), Panicked: true}
		}
	}()

	if applyErr := rule.Apply(wc); applyErr != nil {
		return &RuleError{Rule: rule.Name(), Cause: applyErr}
	}
	return nil
}

func internalDiagnostic(rule string, err error) Diagnostic {
	return Diagnostic{
		RuleName: rule,
		Span:     span.Span{},
		Message:  err.Error(),
		Severity: config.SeverityError,
		Internal: true,
	}
}
