package lint

import (
	"slices"

	"github.com/yaklabco/gotslint/pkg/config"
)

// ResolveRules turns configuration into the ordered list of active rules.
// Rules are ordered by name, which makes the fix tie-break stable for a
// given rule set. Unknown rule names in cfg are ignored; configloader
// reports them as warnings.
func ResolveRules(registry *Registry, cfg *config.Config) []ActiveRule {
	var active []ActiveRule
	for _, rule := range registry.Rules() {
		if ar, enabled := resolveRule(rule, cfg); enabled {
			active = append(active, ar)
		}
	}
	return active
}

func resolveRule(rule Rule, cfg *config.Config) (ActiveRule, bool) {
	ar := ActiveRule{
		Rule:     rule,
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	enabled := rule.DefaultEnabled()

	if cfg == nil {
		ar.AutoFix = false
		return ar, enabled
	}

	name := rule.Name()
	if rc, ok := cfg.Rules[name]; ok {
		ar.Options = rc.Options
		if rc.Enabled != nil {
			enabled = *rc.Enabled
		}
		if rc.Severity != nil {
			if sev, err := config.ParseSeverity(*rc.Severity); err == nil {
				if sev == config.SeverityOff {
					enabled = false
				} else {
					ar.Severity = sev
					if rc.Enabled == nil {
						enabled = true
					}
				}
			}
		}
		if rc.AutoFix != nil {
			ar.AutoFix = *rc.AutoFix && rule.CanFix()
		}
	}

	// Command-line lists win over file configuration.
	if slices.Contains(cfg.EnableRules, name) {
		enabled = true
	}
	if slices.Contains(cfg.DisableRules, name) {
		enabled = false
	}
	if len(cfg.FixRules) > 0 {
		ar.AutoFix = rule.CanFix() && slices.Contains(cfg.FixRules, name)
	}
	if !cfg.Fix {
		ar.AutoFix = false
	}

	return ar, enabled
}

// RuleInfos describes every registered rule for templates and listings.
func RuleInfos(registry *Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, len(rules))
	for i, rule := range rules {
		infos[i] = config.RuleInfo{
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			CanFix:      rule.CanFix(),
		}
		if o, ok := rule.(interface{ DefaultOptions() map[string]any }); ok {
			infos[i].Options = o.DefaultOptions()
		}
	}
	return infos
}
