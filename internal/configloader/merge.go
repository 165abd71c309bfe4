package configloader

import (
	"maps"

	"github.com/yaklabco/gotslint/pkg/config"
)

// MergeAll layers configs left to right and returns the result. Nil
// entries are skipped; inputs are never mutated.
func MergeAll(configs ...*config.Config) *config.Config {
	var out *config.Config
	for _, next := range configs {
		out = merge(out, next)
	}
	return out
}

// merge returns base with top laid over it. A field in top only wins when
// it is set: non-zero scalars, non-nil slices, and true for booleans, so a
// layer can switch a boolean on but never off. Rule entries merge per
// field.
func merge(base, top *config.Config) *config.Config {
	switch {
	case base == nil:
		return top
	case top == nil:
		return base
	}

	out := *base

	setIfNonZero(&out.Format, top.Format)
	setIfNonZero(&out.Jobs, top.Jobs)
	setIfNonZero(&out.MaxFixPasses, top.MaxFixPasses)
	setIfNonZero(&out.Concurrency, top.Concurrency)
	setIfNonZero(&out.MetricsFile, top.MetricsFile)
	setIfNonZero(&out.Backups.Mode, top.Backups.Mode)
	setIfNonZero(&out.Cache.Dir, top.Cache.Dir)

	setIfNonZero(&out.Fix, top.Fix)
	setIfNonZero(&out.DryRun, top.DryRun)
	setIfNonZero(&out.NoBackups, top.NoBackups)
	setIfNonZero(&out.Backups.Enabled, top.Backups.Enabled)
	setIfNonZero(&out.Cache.Enabled, top.Cache.Enabled)

	replaceIfSet(&out.Ignore, top.Ignore)
	replaceIfSet(&out.Extensions, top.Extensions)
	replaceIfSet(&out.EnableRules, top.EnableRules)
	replaceIfSet(&out.DisableRules, top.DisableRules)
	replaceIfSet(&out.FixRules, top.FixRules)

	out.Rules = mergeRules(base.Rules, top.Rules)
	return &out
}

func setIfNonZero[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

func replaceIfSet[T any](dst *[]T, v []T) {
	if v != nil {
		*dst = v
	}
}

func setIfNonNil[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func mergeRules(base, top map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && top == nil {
		return nil
	}
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]config.RuleConfig, len(top))
	}
	for name, rc := range top {
		prev, ok := out[name]
		if !ok {
			out[name] = rc
			continue
		}
		merged := prev.Clone()
		setIfNonNil(&merged.Enabled, rc.Enabled)
		setIfNonNil(&merged.Severity, rc.Severity)
		setIfNonNil(&merged.AutoFix, rc.AutoFix)
		if rc.Options != nil {
			if merged.Options == nil {
				merged.Options = make(map[string]any, len(rc.Options))
			}
			maps.Copy(merged.Options, rc.Options)
		}
		out[name] = merged
	}
	return out
}
