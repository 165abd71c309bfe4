package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/runner"
)

// makeTree creates files (slash-separated, relative to dir) with fixed content.
func makeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("let a = 1;\n"), 0o644))
	}
}

func discover(t *testing.T, opts runner.Options) []string {
	t.Helper()

	discovered, err := runner.Discover(context.Background(), opts)
	require.NoError(t, err)
	return discovered
}

// relative makes discovered paths relative to dir for comparison.
func relative(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "index.ts")

	got := discover(t, runner.Options{Paths: []string{"index.ts"}, WorkingDir: dir})
	assert.Equal(t, []string{filepath.Join(dir, "index.ts")}, got)
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"index.ts",
		"src/app.tsx",
		"src/util.mjs",
		"src/legacy.cjs",
		"lib/types.d.ts",
		"README.md",
		"src/style.css",
	)

	got := relative(t, dir, discover(t, runner.Options{WorkingDir: dir}))
	assert.Equal(t, []string{
		"index.ts",
		"lib/types.d.ts",
		"src/app.tsx",
		"src/legacy.cjs",
		"src/util.mjs",
	}, got)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.ts", "b.js", "c.jsx", "d.TS")

	got := relative(t, dir, discover(t, runner.Options{WorkingDir: dir, Extensions: []string{".ts"}}))
	assert.Equal(t, []string{"a.ts", "d.TS"}, got)
}

func TestDiscover_Excludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir,
		"index.ts",
		"dist/index.js",
		"node_modules/lib/index.js",
		"src/deep/node_modules/x/y.ts",
		"src/app.ts",
		"src/app.generated.ts",
	)

	tests := []struct {
		name     string
		excludes []string
		want     []string
	}{
		{
			name: "node_modules always skipped",
			want: []string{"dist/index.js", "index.ts", "src/app.generated.ts", "src/app.ts"},
		},
		{
			name:     "directory glob",
			excludes: []string{"dist/**"},
			want:     []string{"index.ts", "src/app.generated.ts", "src/app.ts"},
		},
		{
			name:     "file name glob",
			excludes: []string{"*.generated.ts"},
			want:     []string{"dist/index.js", "index.ts", "src/app.ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := discover(t, runner.Options{WorkingDir: dir, ExcludeGlobs: tt.excludes})
			assert.Equal(t, tt.want, relative(t, dir, got))
		})
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "index.ts", "src/a.ts", "src/b.ts", "test/a.test.ts")

	got := discover(t, runner.Options{WorkingDir: dir, IncludeGlobs: []string{"src/**"}})
	assert.Equal(t, []string{"src/a.ts", "src/b.ts"}, relative(t, dir, got))
}

func TestDiscover_HiddenEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "index.ts", ".eslintrc.js", ".git/hooks/x.js", "src/.cache/y.ts")

	got := discover(t, runner.Options{WorkingDir: dir})
	assert.Equal(t, []string{"index.ts"}, relative(t, dir, got))
}

func TestDiscover_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "z.ts", "a.ts", "m.ts", "sub/b.ts")

	got := discover(t, runner.Options{
		WorkingDir: dir,
		Paths:      []string{"z.ts", ".", "./a.ts", "sub"},
	})
	assert.Equal(t, []string{"a.ts", "m.ts", "sub/b.ts", "z.ts"}, relative(t, dir, got))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing.ts"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "a.ts", "b.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	makeTree(t, dir, "real/a.ts")
	external := t.TempDir()
	makeTree(t, external, "ext.ts")

	if err := os.Symlink(external, filepath.Join(dir, "real", "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "real", "a.ts"), filepath.Join(dir, "real", "alias.ts")))

	got := relative(t, dir, discover(t, runner.Options{WorkingDir: dir}))
	assert.Equal(t, []string{"real/a.ts", "real/alias.ts"}, got)

	followed := discover(t, runner.Options{WorkingDir: dir, FollowSymlinks: true})
	assert.Len(t, followed, 3)
	assert.Contains(t, followed, filepath.Join(external, "ext.ts"))
}

func TestGlobSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		match   []string
		miss    []string
	}{
		{"*.d.ts", []string{"types.d.ts", "src/lib/types.d.ts"}, []string{"types.ts"}},
		{"dist/**", []string{"dist", "dist/a.js", "dist/x/y.js"}, []string{"src/dist.ts", "distro/a.js"}},
		{"**/node_modules", []string{"node_modules", "a/b/node_modules"}, []string{"a/node_modules_x"}},
		{"src/*.ts", []string{"src/a.ts"}, []string{"src/deep/a.ts", "a.ts"}},
		{"./src/**/*.spec.ts", []string{"src/a.spec.ts", "src/x/y/a.spec.ts"}, []string{"test/a.spec.ts"}},
		{"src/{a,b}.ts", []string{"src/a.ts", "src/b.ts"}, []string{"src/c.ts"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			t.Parallel()

			set, err := runner.CompileGlobs([]string{tt.pattern})
			require.NoError(t, err)
			for _, path := range tt.match {
				assert.True(t, set.Match(path), "%q should match %q", tt.pattern, path)
			}
			for _, path := range tt.miss {
				assert.False(t, set.Match(path), "%q should not match %q", tt.pattern, path)
			}
		})
	}
}

func TestCompileGlobs_Invalid(t *testing.T) {
	t.Parallel()

	_, err := runner.CompileGlobs([]string{"src/[a-"})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   t.TempDir(),
		ExcludeGlobs: []string{"src/[a-"},
	})
	require.Error(t, err)

	empty, err := runner.CompileGlobs(nil)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
	assert.False(t, empty.Match("a.ts"))
}
