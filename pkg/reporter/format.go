package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gotslint/pkg/config"
)

// Format represents an output format.
type Format = config.OutputFormat

// Output formats supported by the reporter.
const (
	FormatStylish   = config.FormatStylish
	FormatCodeFrame = config.FormatCodeFrame
	FormatJSON      = config.FormatJSON
	FormatProse     = config.FormatProse
	FormatMSBuild   = config.FormatMSBuild
	FormatSummary   = config.FormatSummary
	FormatDiff      = config.FormatDiff
)

// ParseFormat parses a format name case-insensitively. An empty name
// selects stylish.
func ParseFormat(formatStr string) (Format, error) {
	if formatStr == "" {
		return FormatStylish, nil
	}
	names := make([]string, 0, len(config.OutputFormats()))
	for _, f := range config.OutputFormats() {
		if strings.EqualFold(formatStr, string(f)) {
			return f, nil
		}
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", formatStr, strings.Join(names, ", "))
}
