package lint

import (
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Action tells the walker what to do after visiting a node.
type Action int

const (
	// Continue descends into the node's children.
	Continue Action = iota

	// Record reports the node with the default message, then descends.
	Record

	// RecordAndSkip reports the node with the default message and does not
	// descend.
	RecordAndSkip

	// Skip does not descend into the node's children.
	Skip
)

// VisitFunc is called once per visited node.
type VisitFunc func(n *syntax.Node) Action

// WalkOptions adjusts traversal.
type WalkOptions struct {
	// IncludeTypes visits type annotations and their contents. By default
	// type syntax below the walk root is neither visited nor descended.
	IncludeTypes bool

	// Message is reported for Record and RecordAndSkip. Empty means the
	// rule description.
	Message string
}

// Walk visits root and its descendants in pre-order, children in source
// order, calling visit on each. It returns the context error if the run is
// cancelled during the walk.
func Walk(ctx *WalkContext, root *syntax.Node, opts WalkOptions, visit VisitFunc) error {
	if root == nil {
		return nil
	}
	w := walker{ctx: ctx, opts: opts, visit: visit}
	if w.opts.Message == "" {
		w.opts.Message = ctx.message
	}
	w.node(root)
	return ctx.ctx.Err()
}

// Walk visits the whole tree with default options.
func (c *WalkContext) Walk(visit VisitFunc) error {
	return Walk(c, c.Root(), WalkOptions{}, visit)
}

// WalkWith visits the whole tree with the given options.
func (c *WalkContext) WalkWith(opts WalkOptions, visit VisitFunc) error {
	return Walk(c, c.Root(), opts, visit)
}

// Descend visits the subtree rooted at n with default options. Rules call
// it from a visit callback, usually returning Skip afterwards, to inspect
// a subtree in their own order.
func (c *WalkContext) Descend(n *syntax.Node, visit VisitFunc) error {
	return Walk(c, n, WalkOptions{}, visit)
}

type walker struct {
	ctx   *WalkContext
	opts  WalkOptions
	visit VisitFunc
	seen  int
}

// cancelCheckInterval is how many nodes are visited between context checks.
const cancelCheckInterval = 1024

func (w *walker) node(n *syntax.Node) bool {
	w.seen++
	if w.seen%cancelCheckInterval == 0 && w.ctx.Cancelled() {
		return false
	}

	switch w.visit(n) {
	case Skip:
		return true
	case RecordAndSkip:
		w.ctx.ReportNode(n, w.opts.Message, nil)
		return true
	case Record:
		w.ctx.ReportNode(n, w.opts.Message, nil)
	case Continue:
	}

	for _, c := range n.Children {
		if !w.opts.IncludeTypes && c.IsTypeSyntax() {
			continue
		}
		if !w.node(c) {
			return false
		}
	}
	return true
}
