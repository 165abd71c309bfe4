package fix

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gotslint/pkg/span"
)

// Candidate is a fix proposed by one diagnostic in a pass.
type Candidate struct {
	// Fix is the proposed fix. Nil fixes are ignored.
	Fix *Fix

	// Order is the position of the owning diagnostic in the ordered
	// diagnostic list. It breaks ties between fixes with the same
	// earliest start and is the value reported in the plan.
	Order int
}

// Invalid records a candidate whose fix failed validation.
type Invalid struct {
	Order int
	Err   error
}

// EditPlan is the set of fixes selected for one pass.
type EditPlan struct {
	// Replacements holds the replacements of every accepted fix, in
	// acceptance order.
	Replacements []Replacement

	// Accepted lists the Order of each accepted candidate, in acceptance order.
	Accepted []int

	// Rejected lists the Order of each valid candidate that conflicted with
	// an already accepted fix.
	Rejected []int

	// Invalid lists candidates dropped by validation.
	Invalid []Invalid
}

// IsEmpty returns true if the plan accepts no replacements.
func (p *EditPlan) IsEmpty() bool {
	return p == nil || len(p.Replacements) == 0
}

// IsAccepted reports whether the candidate with the given order was accepted.
func (p *EditPlan) IsAccepted(order int) bool {
	return p != nil && slices.Contains(p.Accepted, order)
}

// Resolve selects a maximal set of mutually non-overlapping fixes for a text
// of textLen bytes.
//
// Invalid fixes are dropped. The remaining candidates are visited by the
// start of their earliest replacement, ties broken by Order, and each is
// accepted if none of its replacements overlaps a replacement already
// accepted. Given the same candidates, the plan is always the same.
func Resolve(candidates []Candidate, textLen int) *EditPlan {
	plan := &EditPlan{}

	valid := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Fix == nil {
			continue
		}
		if err := c.Fix.Validate(textLen); err != nil {
			plan.Invalid = append(plan.Invalid, Invalid{Order: c.Order, Err: err})
			continue
		}
		valid = append(valid, c)
	}

	slices.SortStableFunc(valid, func(a, b Candidate) int {
		if c := cmp.Compare(a.Fix.EarliestStart(), b.Fix.EarliestStart()); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})

	var taken []span.Span
	for _, c := range valid {
		if conflicts(c.Fix, taken) {
			plan.Rejected = append(plan.Rejected, c.Order)
			continue
		}
		for _, r := range c.Fix.Replacements {
			taken = append(taken, r.Span)
		}
		plan.Replacements = append(plan.Replacements, c.Fix.Replacements...)
		plan.Accepted = append(plan.Accepted, c.Order)
	}

	return plan
}

func conflicts(f *Fix, taken []span.Span) bool {
	for _, r := range f.Replacements {
		for _, t := range taken {
			if r.Span.Overlaps(t) {
				return true
			}
		}
	}
	return false
}
