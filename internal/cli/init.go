package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/configloader"
	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fsutil"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

const configFileMode fs.FileMode = 0o644

type initFlags struct {
	force  bool
	full   bool
	stdout bool
	format string
	output string
}

const initLong = `Write a starter configuration file.

The default is a short .gotslint.yaml in the current directory. --full
documents every built-in rule with its default severity and options.

Examples:
  gotslint init
  gotslint init --full --format toml
  gotslint init --output ci/.gotslint.yaml
  gotslint init --full --stdout > gotslint.yaml`

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long:  initLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print the template instead of writing a file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "file to write (default .gotslint.<format>)")
	cmd.MarkFlagsMutuallyExclusive("stdout", "output")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	content, err := renderTemplate(flags.format, flags.full)
	if err != nil {
		return err
	}

	if flags.stdout {
		_, err := cmd.OutOrStdout().Write(content)
		return err
	}

	path := flags.output
	if path == "" {
		path = ".gotslint." + flags.format
	}

	logger := logging.NewInteractive()
	switch _, err := os.Lstat(path); {
	case err == nil && !flags.force:
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	case err == nil:
		logger.Warn("overwriting", logging.FieldPath, path)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("check %s: %w", path, err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), path, content, configFileMode); err != nil {
		return err
	}

	logger.Info("wrote configuration", logging.FieldPath, path)
	logger.Info("run 'gotslint rules' to list the rules it can enable")
	return nil
}

// renderTemplate generates the template and loads it back, so a template
// that the loader would reject is never written.
func renderTemplate(format string, full bool) ([]byte, error) {
	decode := config.FromYAML
	switch format {
	case "yaml":
	case "toml":
		decode = config.FromTOML
	default:
		return nil, usageError(fmt.Errorf("invalid format %q: want yaml or toml", format))
	}

	registry := rules.NewRegistry()
	opts := config.TemplateOptions{Format: format}
	if full {
		opts.Rules = lint.RuleInfos(registry)
	}
	content, err := config.GenerateTemplate(opts)
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}

	cfg, err := decode(content)
	if err != nil {
		return nil, fmt.Errorf("generated template does not parse: %w", err)
	}
	if result := configloader.Validate(configloader.MergeAll(config.NewConfig(), cfg), registry); !result.Valid() {
		return nil, fmt.Errorf("generated template is invalid: %w", &result.Errors[0])
	}
	return content, nil
}
