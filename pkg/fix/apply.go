package fix

import (
	"fmt"
	"slices"
)

// Apply rewrites text with the plan's replacements and returns the new text.
// The input is never modified.
func Apply(text []byte, plan *EditPlan) ([]byte, error) {
	if plan.IsEmpty() {
		return slices.Clone(text), nil
	}
	return ApplyReplacements(text, plan.Replacements)
}

// ApplyReplacements rewrites text with replacements given in acceptance
// order. Replacements are applied from the highest offset to the lowest so
// that offsets of the ones still pending stay valid. Insertions at the same
// offset end up in acceptance order.
func ApplyReplacements(text []byte, replacements []Replacement) ([]byte, error) {
	ordered := slices.Clone(replacements)
	slices.Reverse(ordered)
	slices.SortStableFunc(ordered, func(a, b Replacement) int {
		return b.Span.Start - a.Span.Start
	})

	out := slices.Clone(text)
	limit := len(text)
	for _, r := range ordered {
		if r.Span.Start < 0 || r.Span.Start > r.Span.End || r.Span.End > limit {
			return nil, fmt.Errorf("%w: %s in text of length %d", ErrOutOfBounds, r.Span, len(text))
		}
		out = slices.Concat(out[:r.Span.Start], []byte(r.NewText), out[r.Span.End:])
		limit = r.Span.Start
	}

	return out, nil
}
