package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// GlobSet is a compiled list of path patterns. Patterns use "/" as the
// separator; "*" stays within one path segment and "**" spans segments.
// A pattern without "/" is also tried against the base name, "**/x" also
// matches a top-level x, "x/**" also matches x itself and "a/**/b" also
// matches a/b.
type GlobSet struct {
	full []glob.Glob
	base []glob.Glob
}

// CompileGlobs compiles patterns into a GlobSet.
func CompileGlobs(patterns []string) (GlobSet, error) {
	var set GlobSet
	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
		if pattern == "" {
			continue
		}

		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			variants = append(variants, dir)
		}
		if strings.Contains(pattern, "/**/") {
			variants = append(variants, strings.ReplaceAll(pattern, "/**/", "/"))
		}

		for _, variant := range variants {
			compiled, err := glob.Compile(variant, '/')
			if err != nil {
				return GlobSet{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.full = append(set.full, compiled)
		}
		if !strings.Contains(pattern, "/") {
			compiled, err := glob.Compile(pattern, '/')
			if err != nil {
				return GlobSet{}, fmt.Errorf("invalid glob %q: %w", pattern, err)
			}
			set.base = append(set.base, compiled)
		}
	}
	return set, nil
}

// Empty reports whether the set has no patterns.
func (s GlobSet) Empty() bool {
	return len(s.full) == 0
}

// Match reports whether relPath matches any pattern in the set.
func (s GlobSet) Match(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	matches := func(g glob.Glob) bool { return g.Match(relPath) }
	if slices.ContainsFunc(s.full, matches) {
		return true
	}
	base := relPath[strings.LastIndexByte(relPath, '/')+1:]
	return slices.ContainsFunc(s.base, func(g glob.Glob) bool { return g.Match(base) })
}

// discovery holds the state of one Discover call.
type discovery struct {
	workDir    string
	extensions []string
	include    GlobSet
	exclude    GlobSet
	follow     bool

	seen  map[string]struct{}
	files []string
}

// Discover expands opts.Paths into the sorted, de-duplicated list of
// absolute source paths to lint. Explicit file arguments are subject to the
// same extension and glob filters as files found by walking. Hidden entries
// and anything under DefaultExcludes are skipped while walking.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := CompileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := CompileGlobs(opts.effectiveExcludes())
	if err != nil {
		return nil, err
	}

	d := &discovery{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, arg := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := arg
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			d.consider(path)
			continue
		}
		if err := d.walk(ctx, path); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func (d *discovery) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// consider adds path if it passes the extension and glob filters.
func (d *discovery) consider(path string) {
	ext := filepath.Ext(path)
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return
	}
	rel := d.rel(path)
	if d.exclude.Match(rel) {
		return
	}
	if !d.include.Empty() && !d.include.Match(rel) {
		return
	}
	if _, dup := d.seen[path]; dup {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discovery) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if path != root && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case entry.IsDir():
			if path != root && d.exclude.Match(d.rel(path)) {
				return filepath.SkipDir
			}
		case entry.Type()&fs.ModeSymlink != 0:
			return d.symlink(ctx, path)
		default:
			d.consider(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink considers a file link as a file. A directory link is walked at
// its target only when following is enabled, which keeps WalkDir from
// looping. Broken links are ignored.
func (d *discovery) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken link
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreadable target
	}
	if !info.IsDir() {
		d.consider(path)
		return nil
	}
	if !d.follow {
		return nil
	}
	return d.walk(ctx, target)
}
