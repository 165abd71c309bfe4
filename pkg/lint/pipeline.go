package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/fsutil"
)

// ResultCache stores lint-only results keyed by path and content.
// pkg/cache provides an on-disk implementation.
type ResultCache interface {
	Get(path string, text []byte) ([]Diagnostic, bool)
	Put(path string, text []byte, diags []Diagnostic)
}

// PipelineResult contains the result of processing a single file.
type PipelineResult struct {
	Path string

	// Diagnostics are the final diagnostics for the file.
	Diagnostics []Diagnostic

	// Source is the text Diagnostics refer to. After a fix loop that ran
	// out of passes it is the text of the last pass, not the final text.
	Source []byte

	// Fix is the convergence loop outcome, nil when not fixing.
	Fix *FixResult

	// Original is the file state before processing.
	Original *fsutil.Snapshot

	// Modified is true if fixing changed the content.
	Modified bool

	// ModifiedContent is the new content (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff in dry-run mode.
	Diff *fix.Diff

	// Skipped is true if the file was not written.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	// Cached is true if diagnostics came from the result cache.
	Cached bool
}

// HasIssues returns true if any diagnostics were found.
func (pr *PipelineResult) HasIssues() bool {
	return len(pr.Diagnostics) > 0
}

// FixableCount returns the number of diagnostics that still carry a fix.
func (pr *PipelineResult) FixableCount() int {
	count := 0
	for i := range pr.Diagnostics {
		if pr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Fix enables the convergence loop.
	Fix bool

	// DryRun computes a diff instead of writing.
	DryRun bool

	// Backup configures backups before writing.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses a content hash to detect concurrent
	// modification; otherwise only mod time and size are checked.
	StrictRaceDetection bool

	// RejectSyntaxErrors refuses to write fixed content whose final parse
	// has errors the original did not have.
	RejectSyntaxErrors bool

	// MaxFixPasses bounds the convergence loop. 0 means the default.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		RejectSyntaxErrors:  true,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts
	}
	opts.Fix = cfg.Fix
	opts.DryRun = cfg.DryRun
	opts.MaxFixPasses = cfg.FixPasses()
	opts.Backup = fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
	return opts
}

// Pipeline runs the linter over files and writes fixes safely.
type Pipeline struct {
	Linter *Linter

	// Cache is consulted for lint-only runs. Nil disables caching.
	Cache ResultCache
}

// NewPipeline creates a pipeline around linter.
func NewPipeline(linter *Linter) *Pipeline {
	return &Pipeline{Linter: linter}
}

// ProcessFile reads, lints and optionally fixes path.
//
// Writing follows these steps:
//  1. Read and snapshot the original file.
//  2. Lint, or run the convergence loop when fixing.
//  3. Generate a diff and stop in dry-run mode.
//  4. Skip the file if it changed on disk meanwhile.
//  5. Create a backup if enabled.
//  6. Write the new content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	rules []ActiveRule,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, snap, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, rules, opts)
	if err != nil {
		return nil, err
	}
	result.Original = snap

	if !result.Modified || opts.DryRun || result.Skipped {
		return result, nil
	}

	changed, err := snap.Changed(ctx, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	created, err := opts.Backup.Save(ctx, path, content, snap.Mode)
	if err != nil {
		return nil, fmt.Errorf("create backup: %w", err)
	}
	result.BackupCreated = created

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent lints in-memory content and, in fix mode, runs the
// convergence loop. It never touches the file system.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	rules []ActiveRule,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path, Source: content}

	if !opts.Fix {
		if p.Cache != nil {
			if diags, ok := p.Cache.Get(path, content); ok {
				result.Diagnostics = diags
				result.Cached = true
				return result, nil
			}
		}

		lr, err := p.Linter.Lint(ctx, path, content, rules)
		if err != nil {
			return nil, err
		}
		result.Diagnostics = lr.Diagnostics
		if p.Cache != nil {
			p.Cache.Put(path, content, lr.Diagnostics)
		}
		return result, nil
	}

	fr, err := p.Linter.LintAndFix(ctx, path, content, rules, opts.MaxFixPasses)
	if err != nil {
		return nil, err
	}
	result.Fix = fr
	result.Diagnostics = fr.Diagnostics
	if fr.Tree != nil {
		result.Source = fr.Tree.Text
	}

	if !fr.Changed() {
		return result, nil
	}
	result.Modified = true
	result.ModifiedContent = fr.FinalText

	if opts.RejectSyntaxErrors {
		if reason := p.syntaxRegression(ctx, path, content, fr); reason != "" {
			result.Skipped = true
			result.SkipReason = reason
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, content, fr.FinalText)
	}

	return result, nil
}

// syntaxRegression returns a reason if the fixed text parses with errors
// that the original did not have.
func (p *Pipeline) syntaxRegression(ctx context.Context, path string, original []byte, fr *FixResult) string {
	before, err := p.Linter.Parser.Parse(ctx, path, original)
	if err != nil || before.HasErrors {
		return ""
	}

	after := fr.Tree
	if fr.State == StateBudgetExhausted || after == nil {
		after, err = p.Linter.Parser.Parse(ctx, path, fr.FinalText)
		if err != nil {
			return fmt.Sprintf("re-parse failed: %v", err)
		}
	}
	if after.HasErrors {
		return "fixes introduced syntax errors"
	}
	return ""
}

// categorizeError wraps an error with the matching pipeline sentinel.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}
