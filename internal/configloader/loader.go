// Package configloader resolves the effective configuration from config
// files, the environment and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

// LoadOptions controls Load.
type LoadOptions struct {
	// WorkingDir starts the project config search; "" means the process
	// working directory.
	WorkingDir string

	// ExplicitPath comes from --config and layers above the project file.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Registry resolves rule names during validation. Nil means the
	// built-in rules.
	Registry *lint.Registry

	// CLIConfig holds flag values and layers above everything else.
	CLIConfig *config.Config
}

// LoadResult is a resolved configuration.
type LoadResult struct {
	Config *config.Config

	// Sources are the files read, lowest precedence first.
	Sources []Source

	// Warnings are non-fatal validation findings.
	Warnings []string
}

// Paths returns the paths of r.Sources.
func (r *LoadResult) Paths() []string {
	paths := make([]string, len(r.Sources))
	for i, s := range r.Sources {
		paths[i] = s.Path
	}
	return paths
}

// Load merges, lowest precedence first: defaults, the system file, the
// user file, the project file, the --config file, GOTSLINT_* variables and
// CLIConfig. Each file and the merged result are validated; the first
// validation error is returned as a *ValidationError, naming the file when
// one file is at fault.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	sources, err := DiscoverSources(ctx, workDir, opts)
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig()
	for _, src := range sources {
		fileCfg, err := LoadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.Scope, err)
		}
		if v := Validate(fileCfg, nil).inFile(src.Path); !v.Valid() {
			return nil, &v.Errors[0]
		}
		cfg = merge(cfg, fileCfg)
		logger.Debug("loaded config", logging.FieldPath, src.Path, logging.FieldConfig, string(src.Scope))
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, err
		}
	}
	cfg = merge(cfg, opts.CLIConfig)

	registry := opts.Registry
	if registry == nil {
		registry = rules.NewRegistry()
	}
	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result := &LoadResult{Config: cfg, Sources: sources}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}
	return result, nil
}

// LoadFile reads one config file, TOML when the extension says so and
// YAML otherwise.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	decode := config.FromYAML
	if isTOML(path) {
		decode = config.FromTOML
	}
	cfg, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
