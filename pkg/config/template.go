package config

import (
	"bytes"
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	Name        string
	Description string
	Enabled     bool
	Severity    Severity
	CanFix      bool
	Options     map[string]any
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is "yaml" (default) or "toml".
	Format string

	// Rules lists the rules to document. Nil produces a minimal template.
	Rules []RuleInfo
}

// GenerateTemplate creates a starter configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", "yaml", "yml":
		return yamlTemplate(opts.Rules), nil
	case "toml":
		return tomlTemplate(opts.Rules)
	default:
		return nil, fmt.Errorf("unsupported template format %q", opts.Format)
	}
}

func sortedRules(rules []RuleInfo) []RuleInfo {
	out := slices.Clone(rules)
	slices.SortFunc(out, func(a, b RuleInfo) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

func yamlTemplate(rules []RuleInfo) []byte {
	var buf bytes.Buffer

	buf.WriteString(`# gotslint configuration

# Maximum parse and lint cycles when fixing.
max_fix_passes: 10

# Parallel rule execution per file (0 = GOMAXPROCS, 1 = sequential).
# concurrency: 0

# Glob patterns for files to skip.
ignore:
  - "node_modules/**"
  - "dist/**"

backups:
  enabled: true
  mode: sidecar

cache:
  enabled: false

rules:
`)

	if len(rules) == 0 {
		buf.WriteString("  # no-var-keyword:\n  #   severity: error\n")
		return buf.Bytes()
	}

	for _, r := range sortedRules(rules) {
		fmt.Fprintf(&buf, "  # %s\n", wrapComment(r.Description, commentWrapWidth, "  # "))
		if r.CanFix {
			buf.WriteString("  # Fixable.\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", r.Name)
		fmt.Fprintf(&buf, "    enabled: %t\n", r.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", r.Severity)
		if len(r.Options) > 0 {
			buf.WriteString("    options:\n")
			for _, k := range slices.Sorted(maps.Keys(r.Options)) {
				fmt.Fprintf(&buf, "      %s: %s\n", k, scalar(r.Options[k]))
			}
		}
	}

	return buf.Bytes()
}

func tomlTemplate(rules []RuleInfo) ([]byte, error) {
	cfg := NewConfig()
	cfg.Extensions = nil
	cfg.Ignore = []string{"node_modules/**", "dist/**"}
	for _, r := range rules {
		enabled := r.Enabled
		severity := string(r.Severity)
		cfg.Rules[r.Name] = RuleConfig{Enabled: &enabled, Severity: &severity, Options: r.Options}
	}

	body, err := cfg.ToTOML()
	if err != nil {
		return nil, err
	}
	return append([]byte("# gotslint configuration\n\n"), body...), nil
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}

// wrapComment wraps text to maxWidth, continuing lines with prefix.
func wrapComment(text string, maxWidth int, prefix string) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n"+prefix)
}
