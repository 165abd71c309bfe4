package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used when writing YAML.
const yamlIndent = 2

// ToYAML serializes the persisted part of the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(yamlIndent)

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToTOML serializes the persisted part of the configuration as TOML.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// FromTOML parses a configuration from TOML bytes.
func FromTOML(data []byte) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Extensions = slices.Clone(c.Extensions)
	clone.EnableRules = slices.Clone(c.EnableRules)
	clone.DisableRules = slices.Clone(c.DisableRules)
	clone.FixRules = slices.Clone(c.FixRules)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleConfig, len(c.Rules))
		for k, v := range c.Rules {
			clone.Rules[k] = v.Clone()
		}
	}

	return &clone
}

// Clone creates a deep copy of a RuleConfig. Nested values inside Options
// are shared.
func (rc RuleConfig) Clone() RuleConfig {
	clone := RuleConfig{}

	if rc.Enabled != nil {
		enabled := *rc.Enabled
		clone.Enabled = &enabled
	}
	if rc.Severity != nil {
		severity := *rc.Severity
		clone.Severity = &severity
	}
	if rc.AutoFix != nil {
		autoFix := *rc.AutoFix
		clone.AutoFix = &autoFix
	}
	if rc.Options != nil {
		clone.Options = maps.Clone(rc.Options)
	}

	return clone
}
