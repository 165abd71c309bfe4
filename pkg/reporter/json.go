package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gotslint/pkg/analysis"
)

// JSONRenderer writes the flat diagnostic list as a JSON array. Each entry
// carries its rule, severity, positions and fix replacements.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	entries := report.Diagnostics
	if entries == nil {
		entries = []analysis.DiagnosticEntry{}
	}

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
