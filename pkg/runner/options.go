// Package runner lints many files concurrently.
package runner

import (
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
)

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// to lint. Defaults to config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// DefaultExcludes are always added.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent files.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Rules are the active rules applied to every file.
	Rules []lint.ActiveRule

	// Pipeline controls fixing, dry runs and backups.
	Pipeline lint.PipelineOptions
}

// OptionsFromConfig fills the file selection and pipeline options from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string, rules []lint.ActiveRule) Options {
	opts := Options{
		Paths:    paths,
		Rules:    rules,
		Pipeline: lint.PipelineOptionsFromConfig(cfg),
	}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

// DefaultExcludes are directories never descended into.
func DefaultExcludes() []string {
	return []string{"**/node_modules", "**/node_modules/**"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveExcludes() []string {
	return append(DefaultExcludes(), o.ExcludeGlobs...)
}
