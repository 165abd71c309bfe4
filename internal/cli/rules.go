package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Severity    string         `json:"severity"`
	Enabled     bool           `json:"enabled"`
	Fixable     bool           `json:"fixable"`
	Options     map[string]any `json:"options,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their descriptions, default
severity, whether they are enabled by default, and whether they support
auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos := lint.RuleInfos(rules.NewRegistry())

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), infos)
			case "text", "":
			default:
				return fmt.Errorf("invalid format %q: must be text or json", flags.format)
			}

			logger := logging.NewInteractive()
			logger.Info("available rules")

			for _, info := range infos {
				fixable := "-"
				if info.CanFix {
					fixable = "yes"
				}
				severity := info.Severity
				if !info.Enabled {
					severity = config.SeverityOff
				}

				logger.Info(info.Name,
					logging.FieldSeverity, severity,
					logging.FieldFixable, fixable,
					logging.FieldDescription, info.Description,
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []config.RuleInfo) error {
	out := make([]ruleInfo, 0, len(infos))
	for _, info := range infos {
		out = append(out, ruleInfo{
			Name:        info.Name,
			Description: info.Description,
			Severity:    string(info.Severity),
			Enabled:     info.Enabled,
			Fixable:     info.CanFix,
			Options:     info.Options,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
