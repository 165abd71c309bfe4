package reporter

import (
	"fmt"
	"io"
	"os"

	"github.com/yaklabco/gotslint/pkg/analysis"
)

// Reporters buffer their output in chunks of this size.
const bufWriterSize = 64 << 10

// SummaryOrder picks which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// ParseSummaryOrder parses a summary order; "" selects rules.
func ParseSummaryOrder(name string) (SummaryOrder, error) {
	switch order := SummaryOrder(name); order {
	case "":
		return SummaryOrderRules, nil
	case SummaryOrderRules, SummaryOrderFiles:
		return order, nil
	default:
		return "", fmt.Errorf("unknown summary order %q (valid: rules, files)", name)
	}
}

// Options configures a reporter. Not every format reads every field.
type Options struct {
	Writer io.Writer
	Format Format

	// Color is "auto", "always" or "never".
	Color string

	// ShowContext prints the offending source line under stylish findings.
	ShowContext bool
	// ShowSummary appends a totals line to stylish and diff output.
	ShowSummary bool
	// GroupByFile prints stylish findings under a per-file header.
	GroupByFile bool
	// Compact writes JSON without indentation.
	Compact bool

	SummaryOrder SummaryOrder
	// Sort orders the rows of the summary tables.
	Sort analysis.SortOrder

	// WorkingDir makes printed paths relative when set.
	WorkingDir string
}

// DefaultOptions returns stylish output on stdout with grouping and a
// summary line.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		Format:       FormatStylish,
		Color:        "auto",
		ShowSummary:  true,
		GroupByFile:  true,
		SummaryOrder: SummaryOrderRules,
		Sort:         analysis.SortCount,
	}
}
