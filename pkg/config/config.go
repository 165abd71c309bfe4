// Package config defines core configuration types for gotslint.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"

	// SeverityOff disables a rule. It never appears on a diagnostic.
	SeverityOff Severity = "off"
)

// IsValid returns true for the known severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityOff:
		return true
	default:
		return false
	}
}

// ParseSeverity parses a case-insensitive severity name. "warn" and
// "none" are accepted as aliases for warning and off.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "off", "none":
		return SeverityOff, nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// RuleConfig holds per-rule configuration options.
type RuleConfig struct {
	Enabled  *bool          `yaml:"enabled,omitempty"  toml:"enabled,omitempty"`
	Severity *string        `yaml:"severity,omitempty" toml:"severity,omitempty"`
	AutoFix  *bool          `yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`
	Options  map[string]any `yaml:"options,omitempty"  toml:"options,omitempty"`
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode"    toml:"mode"` // "sidecar" or "xdg"
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Dir overrides the cache directory. Empty means the XDG cache dir.
	Dir string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatStylish   OutputFormat = "stylish"
	FormatCodeFrame OutputFormat = "codeFrame"
	FormatJSON      OutputFormat = "json"
	FormatProse     OutputFormat = "prose"
	FormatMSBuild   OutputFormat = "msbuild"
	FormatSummary   OutputFormat = "summary"
	FormatDiff      OutputFormat = "diff"
)

// OutputFormats lists every supported output format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{
		FormatStylish, FormatCodeFrame, FormatJSON, FormatProse,
		FormatMSBuild, FormatSummary, FormatDiff,
	}
}

// IsValid returns true if the format is a known output format.
func (f OutputFormat) IsValid() bool {
	for _, known := range OutputFormats() {
		if f == known {
			return true
		}
	}
	return false
}

// DefaultMaxFixPasses bounds the fix loop when no other limit is configured.
const DefaultMaxFixPasses = 10

// Config is the root configuration structure.
type Config struct {
	// Rules contains per-rule configuration keyed by rule name.
	Rules map[string]RuleConfig `yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions are the file extensions linted when walking directories.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// MaxFixPasses bounds the number of parse and lint cycles when fixing.
	MaxFixPasses int `yaml:"max_fix_passes,omitempty" toml:"max_fix_passes,omitempty"`

	// Concurrency bounds parallel rule execution within one pass.
	// 0 means GOMAXPROCS, 1 means sequential.
	Concurrency int `yaml:"concurrency,omitempty" toml:"concurrency,omitempty"`

	Backups BackupsConfig `yaml:"backups" toml:"backups"`
	Cache   CacheConfig   `yaml:"cache"   toml:"cache"`

	// CLI-level options (not persisted to config files).

	Fix          bool         `yaml:"-" toml:"-"`
	DryRun       bool         `yaml:"-" toml:"-"`
	Format       OutputFormat `yaml:"-" toml:"-"`
	Jobs         int          `yaml:"-" toml:"-"`
	EnableRules  []string     `yaml:"-" toml:"-"`
	DisableRules []string     `yaml:"-" toml:"-"`
	FixRules     []string     `yaml:"-" toml:"-"`
	NoBackups    bool         `yaml:"-" toml:"-"`
	MetricsFile  string       `yaml:"-" toml:"-"`
}

// DefaultExtensions are the extensions linted when none are configured.
func DefaultExtensions() []string {
	return []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Rules:        make(map[string]RuleConfig),
		Extensions:   DefaultExtensions(),
		MaxFixPasses: DefaultMaxFixPasses,
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatStylish,
	}
}

// FixPasses returns the configured pass budget, or DefaultMaxFixPasses.
func (c *Config) FixPasses() int {
	if c == nil || c.MaxFixPasses <= 0 {
		return DefaultMaxFixPasses
	}
	return c.MaxFixPasses
}
