// Package reporter renders lint results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// Reporter writes a run's results and returns the number of issues it
// reported.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an analysis.Report. Formats that need per-rule or
// per-file aggregates are renderers; the rest read runner.Result directly.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

// analyzed adapts a Renderer to Reporter by running the analysis first.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

var _ Reporter = analyzed{}

func (a analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func analyze(renderer Renderer, opts Options) Reporter {
	return analyzed{
		renderer: renderer,
		opts: analysis.Options{
			Sort:       opts.Sort,
			WorkingDir: opts.WorkingDir,
		},
	}
}

// constructors maps each format to its reporter.
//
//nolint:gochecknoglobals // read-only format table
var constructors = map[Format]func(Options) Reporter{
	FormatStylish:   func(o Options) Reporter { return NewStylishReporter(o) },
	FormatCodeFrame: func(o Options) Reporter { return NewCodeFrameReporter(o) },
	FormatProse:     func(o Options) Reporter { return NewProseReporter(o) },
	FormatMSBuild:   func(o Options) Reporter { return NewMSBuildReporter(o) },
	FormatDiff:      func(o Options) Reporter { return NewDiffReporter(o) },
	FormatJSON:      func(o Options) Reporter { return analyze(NewJSONRenderer(o), o) },
	FormatSummary:   func(o Options) Reporter { return analyze(NewSummaryRenderer(o), o) },
}

// New returns the reporter for opts.Format, stylish when empty. A nil
// Writer means stdout.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatStylish
	}
	construct, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return construct(opts), nil
}
