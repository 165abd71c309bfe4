package lint

import (
	"context"

	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Parser turns source text into a syntax tree.
//
// The lint package defines this interface in the consumer package;
// parser/treesitter provides the implementation.
//
// Implementations must be:
//   - deterministic for a given (path, text) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O beyond what path selection needs).
type Parser interface {
	// Parse returns a tree whose Text is text and whose Path is path. The
	// path selects the grammar and is not read from disk. A tree with
	// recovered syntax errors is not a failure; an error means no tree
	// could be produced.
	Parse(ctx context.Context, path string, text []byte) (*syntax.Tree, error)
}
