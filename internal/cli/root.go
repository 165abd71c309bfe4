// Package cli wires the gotslint commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/logging"
)

// BuildInfo is stamped into main at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags every command sees.
type globalFlags struct {
	config    string
	color     string
	debug     bool
	logLevel  string
	logFormat string
}

const rootLong = `gotslint lints TypeScript and JavaScript.

Sources are parsed with tree-sitter and checked by configurable rules that
run in parallel. With --fix, non-conflicting fixes are applied and the file
is re-linted until it stops changing. Every fix is validated before it is
written; --dry-run and backups keep the originals safe.`

// NewRootCommand builds the gotslint command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "gotslint",
		Short:         "Lint and fix TypeScript and JavaScript",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return flags.apply()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file layered above the discovered project config")
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")
	pf.BoolVar(&flags.debug, "debug", false, "shorthand for --log-level debug")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error (env "+logging.EnvLevel+")")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text, json, logfmt (env "+logging.EnvFormat+")")

	root.AddCommand(
		newLintCommand(info),
		newWatchCommand(info),
		newRulesCommand(),
		newInitCommand(),
		newVersionCommand(info),
	)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	installHelp(root)
	return root
}

// apply checks the global flags and reconfigures the default logger for
// the ones that were set. Unset flags leave the environment's choice.
func (f *globalFlags) apply() error {
	switch f.color {
	case "auto", "always", "never":
	default:
		return usageError(fmt.Errorf("--color %q: want auto, always or never", f.color))
	}

	level := f.logLevel
	if f.debug {
		level = "debug"
	}
	if level == "" && f.logFormat == "" {
		return nil
	}

	if level == "" {
		level = os.Getenv(logging.EnvLevel)
	}
	format := f.logFormat
	if format == "" {
		format = os.Getenv(logging.EnvFormat)
	}
	logger := logging.New(level)
	logger.SetFormatter(logging.ParseFormatter(format))
	logging.SetDefault(logger)
	return nil
}
