//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "gotslint"
	binPath = "bin/" + binary
	mainPkg = "./cmd/" + binary
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":      Build,
	"t":      Test.Default,
	"l":      Lint.Default,
	"c":      Check,
	"i":      Install,
	"fmt":    Lint.Fmt,
	"golden": Test.Golden,
	"fuzz":   Test.Fuzz,
	"cmp":    Bench.Corpus,
	"cmpf":   Bench.Fast,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// cgoEnv is the environment for every compile. The tree-sitter grammars
// are C, so cgo must be on even when the caller's environment disables it.
func cgoEnv() map[string]string {
	return map[string]string{"CGO_ENABLED": "1"}
}

// Build compiles bin/gotslint with version info when sources changed.
func Build() error {
	rebuild, err := target.Dir(binPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binPath, "is up to date")
		return nil
	}
	fmt.Println("Building", binary+"...")
	return sh.RunWithV(cgoEnv(), "go", "build", "-ldflags", ldflags(), "-o", binPath, mainPkg)
}

// Check formats, lints and tests.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build and coverage output.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install runs go install with version info.
func Install() error {
	return sh.RunWithV(cgoEnv(), "go", "install", "-ldflags", ldflags(), mainPkg)
}

// Uninstall removes the binary go install placed.
func Uninstall() error {
	path, err := installedBinary()
	if err != nil {
		return err
	}
	switch err := os.Remove(path); {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Println(binary, "is not installed")
	case err != nil:
		return fmt.Errorf("remove %s: %w", path, err)
	default:
		fmt.Println("Removed", path)
	}
	return nil
}

// Deps downloads and tidies modules.
func Deps() error {
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage renders coverage.out as HTML.
func Coverage() error {
	st.Deps(Test.Default)
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs the whole suite under gotestsum with the race detector and
// coverage. TEST_FORMAT selects the gotestsum format.
func (Test) Default() error {
	return gotestsum(cmp.Or(os.Getenv("TEST_FORMAT"), "pkgname-and-test-fails"),
		"-race", "-coverprofile=coverage.out", "-covermode=atomic", "./...")
}

// Verbose runs the suite with standard-verbose output.
func (Test) Verbose() error {
	return gotestsum("standard-verbose", "-race", "./...")
}

// Golden regenerates the rule golden files under pkg/lint/rules/testdata.
// Review the diff before committing.
func (Test) Golden() error {
	fmt.Println("Updating rule golden files...")
	return sh.RunWithV(cgoEnv(), "go", "test", "./pkg/lint/rules/", "-run", "TestGolden", "-update")
}

// Fuzz runs each fuzz target for FUZZ_TIME, 30s by default.
func (Test) Fuzz() error {
	budget := cmp.Or(os.Getenv("FUZZ_TIME"), "30s")
	targets := []struct{ pkg, name string }{
		{"./pkg/fix/", "FuzzResolveApply"},
		{"./pkg/fix/", "FuzzGenerateDiff"},
		{"./pkg/fsutil/", "FuzzWriteAtomicRoundTrip"},
	}
	for _, t := range targets {
		fmt.Printf("Fuzzing %s %s for %s...\n", t.pkg, t.name, budget)
		err := sh.RunWithV(cgoEnv(), "go", "test", t.pkg, "-run", "^$", "-fuzz", "^"+t.name+"$", "-fuzztime", budget)
		if err != nil {
			return err
		}
	}
	return nil
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without fixing.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck fails when gofmt would change a file.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nrun 'stave fmt'", out)
	}
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	return sh.RunWithV(cgoEnv(), "go", "vet", "./...")
}

// Gate runs everything CI requires, cheapest first.
func (CI) Gate() {
	st.SerialDeps(Lint.FmtCheck, Lint.Vet, Lint.CI, Build, Test.Default, CI.ModTidy, CI.SelfCheck)
	fmt.Println("✓ CI gate passed")
}

// ModTidy fails when go mod tidy changes go.mod or go.sum.
func (CI) ModTidy() error {
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if !bytes.Equal(before, after) {
		return errors.New("go mod tidy changed go.mod or go.sum; commit the result")
	}
	return nil
}

// SelfCheck smoke-tests the built binary: the rules listing must be valid,
// and a dry-run fix over the golden inputs must complete. Files with
// findings make lint exit 1, so only exit codes above 1 fail the check.
func (CI) SelfCheck() error {
	st.Deps(Build)
	if _, err := sh.Output(binPath, "rules", "--format", "json"); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	ran, err := sh.Exec(nil, os.Stdout, os.Stderr, binPath,
		"lint", "--fix", "--dry-run", "--format", "summary", "--color", "never", "pkg/lint/rules/testdata")
	if !ran {
		return fmt.Errorf("lint did not start: %w", err)
	}
	if code := sh.ExitStatus(err); code > 1 {
		return fmt.Errorf("lint exited %d: %w", code, err)
	}
	fmt.Printf("✓ %s self-check on %s/%s\n", binary, runtime.GOOS, runtime.GOARCH)
	return nil
}

// Default runs every Go benchmark.
func (Bench) Default() error {
	return gotestsum("pkgname-and-test-fails", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Corpus times the built binary over BENCH_DIR, by default the rule golden
// inputs. Lint findings do not fail the target.
func (Bench) Corpus() error {
	st.Deps(Build)
	dir := cmp.Or(os.Getenv("BENCH_DIR"), "pkg/lint/rules/testdata")
	start := time.Now()
	_ = sh.RunV(binPath, "lint", "--format", "summary", "--color", "never", "--cache=false", dir)
	fmt.Printf("✓ linted %s in %s\n", dir, time.Since(start).Round(time.Millisecond))
	return nil
}

// Fast runs only the engine, fix and rule benchmarks.
func (Bench) Fast() error {
	return sh.RunWithV(cgoEnv(), "go", "test", "-run=^$", "-bench=.", "-benchmem",
		"./pkg/lint/...", "./pkg/fix/...", "./pkg/langdetect/...")
}

func gotestsum(format string, goTestArgs ...string) error {
	procs := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	args := append([]string{"tool", "gotestsum", "-f", format, "--", "-p", procs, "-parallel", procs}, goTestArgs...)
	return sh.RunWithV(cgoEnv(), "go", args...)
}

func readModFiles() ([]byte, error) {
	var all []byte
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		all = append(all, data...)
	}
	return all, nil
}

func git(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags injects version, commit and build date into main.
func ldflags() string {
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s",
		cmp.Or(git("describe", "--tags", "--always", "--dirty"), "dev"),
		cmp.Or(git("rev-parse", "--short", "HEAD"), "none"),
		time.Now().UTC().Format(time.RFC3339))
}

func installedBinary() (string, error) {
	if gobin := os.Getenv("GOBIN"); gobin != "" {
		return filepath.Join(gobin, binary), nil
	}
	gopath := os.Getenv("GOPATH")
	if gopath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		gopath = filepath.Join(home, "go")
	}
	return filepath.Join(gopath, "bin", binary), nil
}
