package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// Runner orchestrates multi-file linting using a lint.Pipeline.
type Runner struct {
	// Pipeline handles per-file processing with safety guarantees.
	Pipeline *lint.Pipeline
}

// New creates a new Runner with the given pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are returned in discovery order regardless of completion order.
// A failing file does not stop the others; its error is recorded on its
// outcome.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	result, err := r.RunFiles(ctx, files, opts)
	if result != nil {
		result.Stats.FilesDiscovered = len(files)
	}
	return result, err
}

// RunFiles processes an explicit list of files, skipping discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for idx, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if groupCtx.Err() != nil {
				return nil
			}
			outcomes[idx] = r.processFile(groupCtx, path, opts)
			done[idx] = true
			return nil
		})
	}
	_ = group.Wait()

	for idx := range files {
		if done[idx] {
			result.add(outcomes[idx])
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	ctx = logging.WithFields(ctx, logging.FieldPath, path)

	pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Rules, opts.Pipeline)
	if err != nil {
		logging.FromContext(ctx).Debug("file failed", logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Result = pr
	return outcome
}
