package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// defaultDebounce is how long watch waits for further events before linting.
const defaultDebounce = 200 * time.Millisecond

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

type watchFlags struct {
	lint     lintFlags
	debounce time.Duration
	noClear  bool
}

func newWatchCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Lint files again whenever they change",
		Long: `Lint TypeScript and JavaScript files, then watch the given paths and
lint changed files again until interrupted.

Accepts the same flags as lint. With --fix, changed files are fixed as
they are saved.

Examples:
  gotslint watch                 # Watch current directory
  gotslint watch src/ --fix      # Watch src and fix on save`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, &cfg, flags, info)
		},
	}

	addLintFlags(cmd, &cfg, &flags.lint)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce,
		"time to wait for further changes before linting")
	cmd.Flags().BoolVar(&flags.noClear, "no-clear", false, "do not clear the terminal between runs")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, cfg *config.Config, flags *watchFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	session, err := newLintSession(ctx, cmd, cfg, &flags.lint, info)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	excludes, err := runner.CompileGlobs(append(runner.DefaultExcludes(), session.cfg.Ignore...))
	if err != nil {
		return errors.Join(ErrConfigInvalid, err)
	}
	dirs := watchDirs{watcher: watcher, workDir: session.workDir, excludes: excludes}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for _, root := range roots {
		if err := dirs.add(root); err != nil {
			return err
		}
	}

	clearOutput := !flags.noClear && isTerminal(cmd.OutOrStdout())

	if _, err := session.run(ctx, cmd, args, &flags.lint); err != nil {
		return err
	}
	logger.Info("watching for changes", logging.FieldPaths, roots)

	pending := make(map[string]struct{})
	timer := time.NewTimer(flags.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := dirs.add(event.Name); err != nil {
						logger.Warn("cannot watch directory", logging.FieldPath, event.Name, logging.FieldError, err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !slices.Contains(session.cfg.Extensions, strings.ToLower(filepath.Ext(event.Name))) {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(flags.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			changed := existingFiles(pending)
			clear(pending)
			if len(changed) == 0 {
				continue
			}
			if clearOutput {
				_, _ = io.WriteString(cmd.OutOrStdout(), clearScreen)
			}
			logger.Debug("files changed", logging.FieldFiles, changed)
			if _, err := session.run(ctx, cmd, changed, &flags.lint); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				logger.Error("lint failed", logging.FieldError, err)
			}
			if session.cache != nil {
				stats := session.cache.Stats()
				logger.Debug("cache stats", logging.FieldCacheHits, stats.Hits)
			}
		}
	}
}

type watchDirs struct {
	watcher  *fsnotify.Watcher
	workDir  string
	excludes runner.GlobSet
}

// add watches root and every directory below it that discovery would
// descend into.
func (w watchDirs) add(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(entry.Name(), ".") || w.excluded(path)) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

func (w watchDirs) excluded(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(w.workDir, abs)
	if err != nil {
		rel = abs
	}
	return w.excludes.Match(rel)
}

// existingFiles returns the sorted pending paths that still exist.
func existingFiles(pending map[string]struct{}) []string {
	files := make([]string, 0, len(pending))
	for path := range pending {
		if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
