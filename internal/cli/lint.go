package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/configloader"
	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/analysis"
	"github.com/yaklabco/gotslint/pkg/cache"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
	"github.com/yaklabco/gotslint/pkg/metrics"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
	"github.com/yaklabco/gotslint/pkg/reporter"
	"github.com/yaklabco/gotslint/pkg/runner"
)

var (
	// ErrLintIssuesFound is returned when lint issues are found.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrConfigInvalid is returned when configuration cannot be loaded.
	ErrConfigInvalid = errors.New("failed to load configuration")
)

type lintFlags struct {
	format       string
	ignore       []string
	extensions   []string
	enable       []string
	disable      []string
	fixRules     []string
	strict       bool
	noContext    bool
	compact      bool
	summaryOrder string
	sortOrder    string

	// Parsed from summaryOrder and sortOrder by applyLintFlags.
	order reporter.SummaryOrder
	sort  analysis.SortOrder
	cache        bool
	cacheDir     string
	clearCache   bool
	cpuprofile   string
	memprofile   string
	trace        string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint TypeScript and JavaScript files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint TypeScript and JavaScript files for style and correctness issues.

By default, lints all .ts, .tsx, .mts, .cts, .js, .jsx, .mjs and .cjs files
in the current directory and subdirectories, skipping node_modules.
Specify paths to lint specific files or directories.

With --fix, fixes are applied repeatedly until the file stops changing or
the pass budget (--max-fix-passes) is exhausted.

Examples:
  gotslint lint                      # Lint current directory
  gotslint lint src/                 # Lint src directory
  gotslint lint app.ts               # Lint single file
  gotslint lint --fix                # Lint and auto-fix issues
  gotslint lint --fix --dry-run      # Show fixes without applying
  gotslint lint --format diff        # Preview fixes as a unified diff
  gotslint lint --format json        # Output as JSON for CI
  gotslint lint --strict             # Treat warnings as errors`

// lintSession holds everything built from a loaded configuration that is
// reused across runs, such as successive watch iterations.
type lintSession struct {
	cfg      *config.Config
	registry *lint.Registry
	rules    []lint.ActiveRule
	pipeline *lint.Pipeline
	runner   *runner.Runner
	cache    *cache.DiskCache
	metrics  *metrics.Metrics
	workDir  string
}

func runLint(cmd *cobra.Command, args []string, cfg *config.Config, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	stopProfiling, err := startProfiling(flags)
	if err != nil {
		return err
	}
	defer stopProfiling()

	session, err := newLintSession(ctx, cmd, cfg, flags, info)
	if err != nil {
		return err
	}

	exitCode, err := session.run(ctx, cmd, args, flags)
	if err != nil {
		return err
	}
	if exitCode != ExitSuccess {
		return &ExitError{Code: exitCode}
	}
	return nil
}

func newLintSession(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	flags *lintFlags,
	info BuildInfo,
) (*lintSession, error) {
	logger := logging.FromContext(ctx)

	if err := applyLintFlags(cmd, cfg, flags); err != nil {
		return nil, err
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	registry := rules.NewRegistry()

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Registry:     registry,
		CLIConfig:    cfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigInvalid, err)
	}

	finalCfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.Sources) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.Paths())
	}

	// The diff format only has something to show when fixes are computed
	// without being written.
	if finalCfg.Format == config.FormatDiff {
		finalCfg.Fix = true
		finalCfg.DryRun = true
	}
	if finalCfg.DryRun && !finalCfg.Fix {
		logger.Warn("--dry-run has no effect without --fix")
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldConcurrency, finalCfg.Concurrency,
		logging.FieldMaxPasses, finalCfg.FixPasses(),
	)

	active := lint.ResolveRules(registry, finalCfg)
	if len(active) == 0 {
		logger.Warn("no rules are enabled")
	}

	engine := lint.NewEngine()
	engine.Concurrency = finalCfg.Concurrency
	engine.Known = registry.Has

	session := &lintSession{
		cfg:      finalCfg,
		registry: registry,
		rules:    active,
		workDir:  workDir,
	}

	if finalCfg.MetricsFile != "" {
		session.metrics = metrics.New()
		engine.Observer = session.metrics
	}

	session.pipeline = lint.NewPipeline(lint.NewLinter(treesitter.New(), engine))

	if finalCfg.Cache.Enabled {
		diskCache, err := openCache(finalCfg, info.Version, active, flags.clearCache)
		if err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
		} else {
			diskCache.SetLogger(logger)
			session.cache = diskCache
			session.pipeline.Cache = diskCache
		}
	}

	session.runner = runner.New(session.pipeline)
	return session, nil
}

func openCache(cfg *config.Config, version string, active []lint.ActiveRule, reset bool) (*cache.DiskCache, error) {
	fingerprint, err := cache.Fingerprint(version, active)
	if err != nil {
		return nil, fmt.Errorf("fingerprint rules: %w", err)
	}
	diskCache, err := cache.Open(cfg.Cache.Dir, fingerprint)
	if err != nil {
		return nil, err
	}
	if reset {
		if err := diskCache.Clear(); err != nil {
			return nil, fmt.Errorf("clear cache: %w", err)
		}
	}
	return diskCache, nil
}

// run lints paths once and reports to the command's writers.
func (s *lintSession) run(ctx context.Context, cmd *cobra.Command, paths []string, flags *lintFlags) (int, error) {
	logger := logging.FromContext(ctx)

	runOpts := runner.OptionsFromConfig(s.cfg, paths, s.rules)
	runOpts.WorkingDir = s.workDir

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := s.runner.Run(ctx, runOpts)
	if err != nil {
		return ExitLintErrors, fmt.Errorf("lint run failed: %w", err)
	}

	logger.Debug("lint run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldCacheHits, result.Stats.FilesCached,
	)

	if err := s.report(ctx, cmd, result, flags); err != nil {
		return ExitLintErrors, err
	}

	if s.metrics != nil {
		recordFileOutcomes(s.metrics, result)
		if err := s.metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			logger.Warn("metrics not written", logging.FieldError, err)
		}
	}

	return ExitCodeFromResult(result, flags.strict), nil
}

func (s *lintSession) report(ctx context.Context, cmd *cobra.Command, result *runner.Result, flags *lintFlags) error {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:       cmd.OutOrStdout(),
		Format:       s.cfg.Format,
		Color:        colorMode,
		ShowContext:  !flags.noContext,
		ShowSummary:  true,
		GroupByFile:  true,
		Compact:      flags.compact,
		SummaryOrder: flags.order,
		Sort:         flags.sort,
		WorkingDir:   s.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logging.FromContext(ctx).Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}

func recordFileOutcomes(m *metrics.Metrics, result *runner.Result) {
	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			m.FileDone("error")
		case file.Result == nil:
			continue
		case file.Result.Skipped:
			m.FileDone("skipped")
		case file.Result.Written:
			m.FileDone("fixed")
		case file.Result.HasIssues():
			m.FileDone("issues")
		default:
			m.FileDone("ok")
		}
	}
}

// applyLintFlags parses the string flags and copies them into typed config
// values. Only flags the user set are copied so lower config layers are
// not masked.
func applyLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) error {
	if cmd.Flags().Changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return usageError(err)
		}
		cfg.Format = format
	}
	var err error
	if flags.order, err = reporter.ParseSummaryOrder(flags.summaryOrder); err != nil {
		return usageError(err)
	}
	if flags.sort, err = analysis.ParseSortOrder(flags.sortOrder); err != nil {
		return usageError(err)
	}
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	if cmd.Flags().Changed("cache") {
		cfg.Cache.Enabled = flags.cache
	}
	if flags.cacheDir != "" {
		cfg.Cache.Dir = flags.cacheDir
		cfg.Cache.Enabled = true
	}
	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes without applying them")
	cmd.Flags().IntVar(&cfg.MaxFixPasses, "max-fix-passes", 0,
		fmt.Sprintf("maximum parse and lint passes when fixing (0 = %d)", config.DefaultMaxFixPasses))
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatStylish),
		"output format: stylish, codeFrame, json, prose, msbuild, summary, diff")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of files linted in parallel (0 = auto)")
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", 0, "number of rules run in parallel per file (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to lint, e.g. .ts,.tsx")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule names to disable")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rule names")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", string(reporter.SummaryOrderRules),
		"order of tables in summary output: rules, files")
	cmd.Flags().StringVar(&flags.sortOrder, "sort", string(analysis.SortCount),
		"row order of summary tables: count, name, severity")
	cmd.Flags().BoolVar(&flags.cache, "cache", false, "reuse lint results for unchanged files")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "result cache directory (implies --cache)")
	cmd.Flags().BoolVar(&flags.clearCache, "clear-cache", false, "empty the result cache before linting")
	cmd.Flags().StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to file")

	// Profiling flags.
	cmd.Flags().StringVar(&flags.cpuprofile, "cpuprofile", "", "write CPU profile to file")
	cmd.Flags().StringVar(&flags.memprofile, "memprofile", "", "write memory profile to file")
	cmd.Flags().StringVar(&flags.trace, "trace", "", "write execution trace to file")
}

// startProfiling starts the requested profiles. The returned function
// stops them and writes the heap profile.
func startProfiling(flags *lintFlags) (func(), error) {
	var closers []io.Closer
	var stops []func()

	stop := func() {
		for i := len(stops) - 1; i >= 0; i-- {
			stops[i]()
		}
		for _, c := range closers {
			_ = c.Close()
		}
	}

	if flags.cpuprofile != "" {
		f, err := os.Create(flags.cpuprofile)
		if err != nil {
			return stop, fmt.Errorf("create CPU profile: %w", err)
		}
		closers = append(closers, f)
		if err := pprof.StartCPUProfile(f); err != nil {
			stop()
			return func() {}, fmt.Errorf("start CPU profile: %w", err)
		}
		stops = append(stops, pprof.StopCPUProfile)
	}

	if flags.trace != "" {
		f, err := os.Create(flags.trace)
		if err != nil {
			stop()
			return func() {}, fmt.Errorf("create trace: %w", err)
		}
		closers = append(closers, f)
		if err := trace.Start(f); err != nil {
			stop()
			return func() {}, fmt.Errorf("start trace: %w", err)
		}
		stops = append(stops, trace.Stop)
	}

	if flags.memprofile != "" {
		path := flags.memprofile
		stops = append(stops, func() {
			f, err := os.Create(path)
			if err != nil {
				logging.Default().Warn("memory profile not written", logging.FieldError, err)
				return
			}
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				logging.Default().Warn("memory profile not written", logging.FieldError, err)
			}
		})
	}

	return stop, nil
}
