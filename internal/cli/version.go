package cli

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotslint/internal/logging"
	"github.com/yaklabco/gotslint/pkg/langdetect"
	"github.com/yaklabco/gotslint/pkg/lint/rules"
)

// versionReport is the --json shape of the version command.
type versionReport struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Built     string   `json:"built"`
	Go        string   `json:"go"`
	Languages []string `json:"languages"`
	Rules     int      `json:"rules"`
}

func newVersionCommand(info BuildInfo) *cobra.Command {
	var short, asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the version, commit hash and build date of gotslint, together with
the Go toolchain it was built with, the supported languages and the number
of built-in rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := buildVersionReport(info)
			out := cmd.OutOrStdout()

			switch {
			case short:
				_, err := fmt.Fprintln(out, report.Version)
				return err
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			logger := log.NewWithOptions(out, log.Options{})
			logger.Info("gotslint",
				logging.FieldVersion, report.Version,
				logging.FieldCommit, report.Commit,
				logging.FieldBuilt, report.Built,
				logging.FieldGo, report.Go,
				logging.FieldLanguages, strings.Join(report.Languages, ","),
				logging.FieldRules, report.Rules,
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")

	return cmd
}

// buildVersionReport fills gaps left by ldflags from the module build info,
// which is what "go install" binaries carry.
func buildVersionReport(info BuildInfo) versionReport {
	report := versionReport{
		Version: info.Version,
		Commit:  info.Commit,
		Built:   info.Date,
		Go:      runtime.Version(),
		Rules:   rules.NewRegistry().Len(),
	}
	for _, lang := range langdetect.Languages() {
		report.Languages = append(report.Languages, string(lang))
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return report
	}
	if (report.Version == "" || report.Version == "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		report.Version = bi.Main.Version
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if report.Commit == "" || report.Commit == "none" {
				report.Commit = setting.Value
			}
		case "vcs.time":
			if report.Built == "" || report.Built == "unknown" {
				report.Built = setting.Value
			}
		}
	}
	return report
}
