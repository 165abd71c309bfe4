package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
)

// EnvPrefix starts every configuration environment variable.
const EnvPrefix = "GOTSLINT_"

// ErrInvalidEnv wraps every malformed environment value.
var ErrInvalidEnv = errors.New("invalid environment variable")

// EnvVar documents one configuration environment variable.
type EnvVar struct {
	// Name is the full variable name, e.g. GOTSLINT_FIX.
	Name string
	// Key is the dotted config key the variable overrides.
	Key  string
	Help string

	apply func(cfg *config.Config, raw string) error
}

func boolEnv(field func(*config.Config) *bool) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%q is not a boolean (true, false, 1, 0)", raw)
		}
		*field(cfg) = v
		return nil
	}
}

func intEnv(field func(*config.Config) *int) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%q is not an integer", raw)
		}
		*field(cfg) = v
		return nil
	}
}

func stringEnv(field func(*config.Config) *string) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		*field(cfg) = raw
		return nil
	}
}

// listEnv splits on commas, trims each element and drops empty ones.
func listEnv(field func(*config.Config) *[]string) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		var items []string
		for item := range strings.SplitSeq(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*field(cfg) = items
		return nil
	}
}

// envVars is applied in order; the first malformed value stops loading.
//
//nolint:gochecknoglobals // read-only table
var envVars = []EnvVar{
	{EnvPrefix + "FIX", "fix", "apply fixes: true or false",
		boolEnv(func(c *config.Config) *bool { return &c.Fix })},
	{EnvPrefix + "DRY_RUN", "dry_run", "report fixes without writing: true or false",
		boolEnv(func(c *config.Config) *bool { return &c.DryRun })},
	{EnvPrefix + "JOBS", "jobs", "files linted in parallel, 0 for auto",
		intEnv(func(c *config.Config) *int { return &c.Jobs })},
	{EnvPrefix + "CONCURRENCY", "concurrency", "rules run in parallel per file, 0 for GOMAXPROCS, 1 for sequential",
		intEnv(func(c *config.Config) *int { return &c.Concurrency })},
	{EnvPrefix + "MAX_FIX_PASSES", "max_fix_passes", "upper bound on fix passes per file",
		intEnv(func(c *config.Config) *int { return &c.MaxFixPasses })},
	{EnvPrefix + "FORMAT", "format", "output format: stylish, codeFrame, json, prose, msbuild, summary or diff",
		func(c *config.Config, raw string) error { c.Format = config.OutputFormat(raw); return nil }},
	{EnvPrefix + "BACKUPS_ENABLED", "backups.enabled", "back up files before fixing: true or false",
		boolEnv(func(c *config.Config) *bool { return &c.Backups.Enabled })},
	{EnvPrefix + "BACKUPS_MODE", "backups.mode", "backup location: sidecar, xdg or none",
		stringEnv(func(c *config.Config) *string { return &c.Backups.Mode })},
	{EnvPrefix + "NO_BACKUPS", "no_backups", "skip backups: true or false",
		boolEnv(func(c *config.Config) *bool { return &c.NoBackups })},
	{EnvPrefix + "CACHE", "cache.enabled", "reuse results for unchanged files: true or false",
		boolEnv(func(c *config.Config) *bool { return &c.Cache.Enabled })},
	{EnvPrefix + "CACHE_DIR", "cache.dir", "result cache directory",
		stringEnv(func(c *config.Config) *string { return &c.Cache.Dir })},
	{EnvPrefix + "METRICS_FILE", "metrics_file", "write Prometheus metrics here after the run",
		stringEnv(func(c *config.Config) *string { return &c.MetricsFile })},
	{EnvPrefix + "IGNORE", "ignore", "comma-separated ignore globs",
		listEnv(func(c *config.Config) *[]string { return &c.Ignore })},
	{EnvPrefix + "EXTENSIONS", "extensions", "comma-separated file extensions",
		listEnv(func(c *config.Config) *[]string { return &c.Extensions })},
}

// EnvVars lists the supported variables in application order.
func EnvVars() []EnvVar {
	return envVars
}

// EnvVarName returns the variable overriding key, or "".
func EnvVarName(key string) string {
	for _, v := range envVars {
		if v.Key == key {
			return v.Name
		}
	}
	return ""
}

// LoadFromEnv applies every set, non-empty variable to cfg. Errors wrap
// ErrInvalidEnv and name the variable.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		raw := os.Getenv(v.Name)
		if raw == "" {
			continue
		}
		if err := v.apply(cfg, raw); err != nil {
			return fmt.Errorf("%w %s: %w", ErrInvalidEnv, v.Name, err)
		}
	}
	return nil
}
