package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fsutil"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// ValidationError is one finding about a configuration value.
type ValidationError struct {
	// Field is the dotted path of the value, e.g. rules.semicolon.severity.
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field, e.Message} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ": ")
}

// ValidationResult collects the findings of Validate. Errors stop a load;
// warnings are reported and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// inFile stamps path on every finding.
func (r *ValidationResult) inFile(path string) *ValidationResult {
	for i := range r.Errors {
		r.Errors[i].FilePath = path
	}
	for i := range r.Warnings {
		r.Warnings[i].FilePath = path
	}
	return r
}

// Validate checks cfg. Findings come in a fixed order: top-level fields,
// then rules by name, then ignore globs. Rule names missing from registry
// are warnings; a nil registry skips that check.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("format", cfg.Format, "invalid format %q; want one of %s", cfg.Format, formatNames())
	}
	for _, n := range []struct {
		field string
		value int
		zero  string
	}{
		{"jobs", cfg.Jobs, "auto"},
		{"concurrency", cfg.Concurrency, "GOMAXPROCS"},
		{"max_fix_passes", cfg.MaxFixPasses, "the default"},
	} {
		if n.value < 0 {
			result.errorf(n.field, n.value, "%s must be >= 0 (0 means %s)", n.field, n.zero)
		}
	}
	if cfg.Backups.Mode != "" && !validBackupMode(cfg.Backups.Mode) {
		result.errorf("backups.mode", cfg.Backups.Mode,
			"invalid backup mode %q; want sidecar, xdg or none", cfg.Backups.Mode)
	}
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.errorf(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	validateRules(cfg, registry, result)

	for i, pattern := range cfg.Ignore {
		if _, err := runner.CompileGlobs([]string{pattern}); err != nil {
			result.errorf(fmt.Sprintf("ignore[%d]", i), pattern, "%v", err)
		}
	}
	return result
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	known := func(name string) bool { return registry == nil || registry.Has(name) }

	for _, name := range slices.Sorted(maps.Keys(cfg.Rules)) {
		if !known(name) {
			result.warnf("rules."+name, name, "unknown rule %q; it will be ignored", name)
		}
		if sev := cfg.Rules[name].Severity; sev != nil {
			if _, err := config.ParseSeverity(*sev); err != nil {
				result.errorf("rules."+name+".severity", *sev,
					"invalid severity %q; want error, warning or off", *sev)
			}
		}
	}

	for _, list := range []struct {
		flag  string
		names []string
	}{
		{"enable", cfg.EnableRules},
		{"disable", cfg.DisableRules},
		{"fix-rules", cfg.FixRules},
	} {
		for _, name := range list.names {
			if !known(name) {
				result.warnf(list.flag, name, "unknown rule %q in --%s", name, list.flag)
			}
		}
	}
}

func validBackupMode(mode string) bool {
	switch fsutil.BackupMode(mode) {
	case fsutil.BackupModeSidecar, fsutil.BackupModeXDG, fsutil.BackupModeNone:
		return true
	}
	return false
}

func formatNames() string {
	formats := config.OutputFormats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
