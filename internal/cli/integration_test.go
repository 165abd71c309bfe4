package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/internal/cli"
	"github.com/yaklabco/gotslint/pkg/fsutil"
)

// testSourceWithIssues triggers no-var-keyword on line 1 and no-debugger on line 2.
const testSourceWithIssues = "var a = 1;\ndebugger;\n"

// testSourceVarOnly triggers only no-var-keyword, whose fix leaves a clean file.
const testSourceVarOnly = "var a = 1;\n"

// setupProject writes a source file and a config file into a temp dir and
// returns their paths.
func setupProject(t *testing.T, source, configName, configContent string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	srcFile := filepath.Join(dir, "app.ts")
	require.NoError(t, os.WriteFile(srcFile, []byte(source), 0644))

	cfgFile := filepath.Join(dir, configName)
	require.NoError(t, os.WriteFile(cfgFile, []byte(configContent), 0644))

	return srcFile, cfgFile
}

// runCLI executes the root command with args and returns stdout, stderr
// and the command error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo())

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestIntegration_LintReportsIssues(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--no-context", "--color", "never", srcFile)

	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCode(err))

	assert.Contains(t, stdout, "no-var-keyword")
	assert.Contains(t, stdout, "no-debugger")
	assert.Contains(t, stdout, "1:1")
	assert.Contains(t, stdout, "2:1")
	assert.Contains(t, stdout, "2 issues")
}

func TestIntegration_CleanFileSucceeds(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, "let a = 1;\n", ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--color", "never", srcFile)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")
}

func TestIntegration_ConfigDisablesRule(t *testing.T) {
	t.Parallel()

	configContent := `
rules:
  no-var-keyword:
    enabled: false
`
	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", configContent)

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--no-context", "--color", "never", srcFile)

	require.Error(t, err, "no-debugger still reports an error")
	assert.NotContains(t, stdout, "no-var-keyword", "disabled rule should not appear in output")
	assert.Contains(t, stdout, "no-debugger")
}

func TestIntegration_TOMLConfigSeverity(t *testing.T) {
	t.Parallel()

	configContent := `
[rules.no-var-keyword]
severity = "warning"
`
	srcFile, cfgFile := setupProject(t, testSourceVarOnly, ".gotslint.toml", configContent)

	t.Run("warnings pass", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--no-context", "--color", "never", srcFile)
		require.NoError(t, err)
		assert.Contains(t, stdout, "WARNING")
		assert.Contains(t, stdout, "no-var-keyword")
	})

	t.Run("strict fails on warnings", func(t *testing.T) {
		t.Parallel()

		_, _, err := runCLI(t, "lint", "--config", cfgFile, "--strict", "--color", "never", srcFile)
		require.Error(t, err)
		assert.Equal(t, cli.ExitLintWarnings, cli.ExitCode(err))
	})
}

func TestIntegration_EnableDisableFlags(t *testing.T) {
	t.Parallel()

	source := "console.log(1);\ndebugger;\n"
	srcFile, cfgFile := setupProject(t, source, ".gotslint.yaml", "rules: {}\n")

	t.Run("no-console is off by default", func(t *testing.T) {
		t.Parallel()

		stdout, _, _ := runCLI(t, "lint", "--config", cfgFile, "--no-context", "--color", "never", srcFile)
		assert.NotContains(t, stdout, "no-console")
		assert.Contains(t, stdout, "no-debugger")
	})

	t.Run("enable and disable by name", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runCLI(t, "lint", "--config", cfgFile,
			"--enable", "no-console", "--disable", "no-debugger",
			"--no-context", "--color", "never", srcFile)
		require.Error(t, err)
		assert.Contains(t, stdout, "no-console")
		assert.NotContains(t, stdout, "no-debugger")
	})
}

func TestIntegration_FixWritesFile(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceVarOnly, ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--fix", "--color", "never", srcFile)
	require.NoError(t, err, "the only issue is fixed")

	got, readErr := os.ReadFile(srcFile)
	require.NoError(t, readErr)
	assert.Equal(t, "let a = 1;\n", string(got))
	assert.Contains(t, stdout, "fixed")

	backup, readErr := os.ReadFile(fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}.Path(srcFile))
	require.NoError(t, readErr, "sidecar backup should exist")
	assert.Equal(t, testSourceVarOnly, string(backup))
}

func TestIntegration_FixNoBackups(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	_, _, err := runCLI(t, "lint", "--config", cfgFile, "--fix", "--no-backups", "--color", "never", srcFile)
	require.NoError(t, err)

	got, readErr := os.ReadFile(srcFile)
	require.NoError(t, readErr)
	assert.Equal(t, "let a = 1;\n", string(got))
	assert.False(t, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}.Exists(srcFile))
}

func TestIntegration_DiffFormatDoesNotWrite(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceVarOnly, ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "diff", "--color", "never", srcFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "-var a = 1;")
	assert.Contains(t, stdout, "+let a = 1;")

	got, readErr := os.ReadFile(srcFile)
	require.NoError(t, readErr)
	assert.Equal(t, testSourceVarOnly, string(got), "diff format must not modify the file")
}

func TestIntegration_JSONFormat(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "JSON", srcFile)
	require.Error(t, err)

	var failures []struct {
		Name     string `json:"name"`
		RuleName string `json:"ruleName"`
		Failure  string `json:"failure"`
		Start    struct {
			Line      int `json:"line"`
			Character int `json:"character"`
		} `json:"startPosition"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &failures))
	require.Len(t, failures, 2)

	assert.Equal(t, "no-var-keyword", failures[0].RuleName)
	assert.Equal(t, 0, failures[0].Start.Line)
	assert.Equal(t, 0, failures[0].Start.Character)
	assert.Equal(t, "no-debugger", failures[1].RuleName)
	assert.Equal(t, 1, failures[1].Start.Line)
}

func TestIntegration_ProseFormat(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "prose", srcFile)
	require.Error(t, err)
	assert.Contains(t, stdout, "ERROR: ")
	assert.Contains(t, stdout, "app.ts:1:1 - Forbidden 'var' keyword")
}

func TestIntegration_InvalidFormat(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceVarOnly, ".gotslint.yaml", "rules: {}\n")

	_, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "xml", srcFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceVarOnly, ".gotslint.yaml", "max_fix_passes: -3\n")

	_, _, err := runCLI(t, "lint", "--config", cfgFile, srcFile)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cli.ErrConfigInvalid))
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_CacheDir(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")
	cacheDir := t.TempDir()

	first, _, err := runCLI(t, "lint", "--config", cfgFile, "--cache-dir", cacheDir,
		"--format", "json", srcFile)
	require.Error(t, err)

	entries, readErr := os.ReadDir(cacheDir)
	require.NoError(t, readErr)
	assert.NotEmpty(t, entries, "first run should populate the cache")

	second, _, err := runCLI(t, "lint", "--config", cfgFile, "--cache-dir", cacheDir,
		"--format", "json", srcFile)
	require.Error(t, err)
	assert.JSONEq(t, first, second, "cached results should match fresh results")
}

func TestIntegration_MetricsFile(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")
	metricsFile := filepath.Join(t.TempDir(), "gotslint.prom")

	_, _, err := runCLI(t, "lint", "--config", cfgFile, "--metrics-file", metricsFile, "--color", "never", srcFile)
	require.Error(t, err)

	data, readErr := os.ReadFile(metricsFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "gotslint_rule_runs_total")
	assert.Contains(t, string(data), `gotslint_files_total{status="issues"} 1`)
}

func TestIntegration_RulesCommandWithFormat(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "rules", "--format", "json")
	require.NoError(t, err)

	var rules []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rules))

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r["name"].(string))
	}
	for _, want := range []string{
		"no-null-keyword", "no-var-keyword", "triple-equals", "no-debugger",
		"no-trailing-whitespace", "semicolon", "no-consecutive-blank-lines",
		"eofline", "quotemark", "no-console",
	} {
		assert.Contains(t, names, want)
	}
}

func TestIntegration_InitCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	for _, format := range []string{"yaml", "toml"} {
		output := filepath.Join(dir, "gotslint."+format)

		_, _, err := runCLI(t, "init", "--full", "--format", format, "--output", output)
		require.NoError(t, err)

		data, readErr := os.ReadFile(output)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), "no-var-keyword")

		_, _, err = runCLI(t, "init", "--format", format, "--output", output)
		require.Error(t, err, "existing file requires --force")

		_, _, err = runCLI(t, "init", "--force", "--format", format, "--output", output)
		require.NoError(t, err)
	}

	_, _, err := runCLI(t, "init", "--format", "json", "--output", filepath.Join(dir, "x.json"))
	require.Error(t, err)
}

func TestIntegration_InitStdout(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCLI(t, "init", "--full", "--format", "toml", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "max_fix_passes")
	assert.Contains(t, stdout, "no-var-keyword")

	_, _, err = runCLI(t, "init", "--stdout", "--output", "x.yaml")
	require.Error(t, err, "--stdout and --output conflict")
}

func TestIntegration_GeneratedConfigLoads(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, ".gotslint.yaml")
	_, _, err := runCLI(t, "init", "--full", "--output", cfgFile)
	require.NoError(t, err)

	srcFile := filepath.Join(dir, "app.ts")
	require.NoError(t, os.WriteFile(srcFile, []byte("let a = 1;\n"), 0644))

	_, _, err = runCLI(t, "lint", "--config", cfgFile, "--color", "never", srcFile)
	require.NoError(t, err)
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "summary", "--color", "never", srcFile)
	require.Error(t, err)

	assert.Contains(t, stdout, "Rules Summary", "summary format should show Rules Summary table")
	assert.Contains(t, stdout, "Files Summary", "summary format should show Files Summary table")
	assert.Contains(t, stdout, "Total:", "summary format should show Total line")
}

func TestIntegration_SummaryOrder(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	tests := []struct {
		order      string
		rulesFirst bool
	}{
		{"rules", true},
		{"files", false},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			t.Parallel()

			stdout, _, _ := runCLI(t, "lint", "--config", cfgFile, "--format", "summary",
				"--summary-order", tt.order, "--color", "never", srcFile)

			rulesIdx := strings.Index(stdout, "Rules Summary")
			filesIdx := strings.Index(stdout, "Files Summary")
			require.NotEqual(t, -1, rulesIdx)
			require.NotEqual(t, -1, filesIdx)
			assert.Equal(t, tt.rulesFirst, rulesIdx < filesIdx)
		})
	}
}

func TestIntegration_SummaryFormatNoIssues(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, "let a = 1;\n", ".gotslint.yaml", "rules: {}\n")

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "summary", "--color", "never", srcFile)
	require.NoError(t, err)

	assert.Contains(t, stdout, "No issues found")
	assert.NotContains(t, stdout, "Rules Summary")
}

func TestIntegration_DirectoryWalkSkipsNodeModules(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules", "dep"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "node_modules", "dep", "index.js"),
		[]byte(testSourceWithIssues), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.ts"), []byte("let a = 1;\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("var x\n"), 0644))

	cfgFile := filepath.Join(dir, ".gotslint.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("rules: {}\n"), 0644))

	stdout, _, err := runCLI(t, "lint", "--config", cfgFile, "--color", "never", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No issues found")
	assert.Contains(t, stdout, "1 file checked")
}

func TestIntegration_SortOrder(t *testing.T) {
	t.Parallel()

	srcFile, cfgFile := setupProject(t, testSourceWithIssues, ".gotslint.yaml", "rules: {}\n")

	stdout, _, _ := runCLI(t, "lint", "--config", cfgFile, "--format", "summary",
		"--sort", "name", "--color", "never", srcFile)
	assert.Contains(t, stdout, "Rules Summary")

	_, _, err := runCLI(t, "lint", "--config", cfgFile, "--format", "summary", "--sort", "sideways", srcFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown sort order")
}
