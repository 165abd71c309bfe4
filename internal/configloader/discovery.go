package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
)

// Scope names the layer a config file belongs to. Later scopes override
// earlier ones.
type Scope string

const (
	ScopeSystem   Scope = "system"
	ScopeUser     Scope = "user"
	ScopeProject  Scope = "project"
	ScopeExplicit Scope = "explicit"
)

// Source is one config file taking part in a load.
type Source struct {
	Scope Scope
	Path  string
}

// Names searched in each project directory, most preferred first.
//
//nolint:gochecknoglobals // read-only table
var projectNames = []string{
	".gotslint.yaml", ".gotslint.yml", ".gotslint.toml",
	"gotslint.yaml", "gotslint.yml", "gotslint.toml",
}

// Names searched in the system and user config directories.
//
//nolint:gochecknoglobals // read-only table
var dirNames = []string{"config.yaml", "config.yml", "config.toml"}

// A directory holding one of these ends the upward project search.
//
//nolint:gochecknoglobals // read-only table
var vcsMarkers = []string{".git", ".hg", ".svn"}

// DiscoverSources returns the config files a load in workDir reads, in
// precedence order from lowest to highest. Scopes disabled by opts are
// left out; missing files are not errors. An explicit path is included
// whether or not it exists so that loading reports it.
func DiscoverSources(ctx context.Context, workDir string, opts LoadOptions) ([]Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	var sources []Source
	add := func(scope Scope, path string) {
		if path != "" {
			sources = append(sources, Source{Scope: scope, Path: path})
		}
	}

	if !opts.IgnoreSystemConfig {
		add(ScopeSystem, firstFile(systemConfigDir(), dirNames))
	}
	if !opts.IgnoreUserConfig {
		if dir := UserConfigDir(); dir != "" {
			add(ScopeUser, firstFile(dir, dirNames))
		}
	}
	if !opts.IgnoreProjectConfig {
		path, err := FindProjectConfig(ctx, workDir)
		if err != nil {
			return nil, err
		}
		add(ScopeProject, path)
	}
	add(ScopeExplicit, opts.ExplicitPath)
	return sources, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		base := os.Getenv("ProgramData")
		if base == "" {
			base = `C:\ProgramData`
		}
		return filepath.Join(base, "gotslint")
	}
	return "/etc/gotslint"
}

// UserConfigDir is $XDG_CONFIG_HOME/gotslint or ~/.config/gotslint, or ""
// when neither can be determined.
func UserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gotslint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gotslint")
}

// FindProjectConfig walks up from startDir ("" for the working directory)
// and returns the first project config file, or "" if the walk reaches a
// VCS root, the home directory or the filesystem root first. The
// directory that ends the walk is still searched.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("discover config: %w", err)
		}
		if path := firstFile(dir, projectNames); path != "" {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// isTOML reports whether path names a TOML file. Everything else is read
// as YAML.
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
