package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/span"
)

func spanOf(start, end int) span.Span {
	return span.Span{Start: start, End: end}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("earlier start wins an overlap", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(5, 8, "abc")), Order: 0},
			{Fix: fix.New(fix.Replace(7, 10, "xyz")), Order: 1},
		}, 20)

		assert.Equal(t, []int{0}, plan.Accepted)
		assert.Equal(t, []int{1}, plan.Rejected)
		assert.Empty(t, plan.Invalid)
		assert.Equal(t, []fix.Replacement{fix.Replace(5, 8, "abc")}, plan.Replacements)
	})

	t.Run("candidate order does not override start offset", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(7, 10, "xyz")), Order: 0},
			{Fix: fix.New(fix.Replace(5, 8, "abc")), Order: 1},
		}, 20)

		assert.Equal(t, []int{1}, plan.Accepted)
		assert.Equal(t, []int{0}, plan.Rejected)
	})

	t.Run("order breaks ties on equal start", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(3, 6, "b")), Order: 4},
			{Fix: fix.New(fix.Replace(3, 5, "a")), Order: 2},
		}, 20)

		assert.Equal(t, []int{2}, plan.Accepted)
		assert.Equal(t, []int{4}, plan.Rejected)
	})

	t.Run("adjacent fixes both accepted", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(0, 3, "a")), Order: 0},
			{Fix: fix.New(fix.Replace(3, 6, "b")), Order: 1},
		}, 20)

		assert.Equal(t, []int{0, 1}, plan.Accepted)
		assert.Empty(t, plan.Rejected)
	})

	t.Run("insertions at the same point both accepted", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Insert(4, "a")), Order: 0},
			{Fix: fix.New(fix.Insert(4, "b")), Order: 1},
		}, 20)

		assert.Equal(t, []int{0, 1}, plan.Accepted)
	})

	t.Run("insertion inside an accepted replacement is rejected", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(2, 6, "x")), Order: 0},
			{Fix: fix.New(fix.Insert(4, "y")), Order: 1},
			{Fix: fix.New(fix.Insert(6, "z")), Order: 2},
		}, 20)

		assert.Equal(t, []int{0, 2}, plan.Accepted)
		assert.Equal(t, []int{1}, plan.Rejected)
	})

	t.Run("multi replacement fix is atomic", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(10, 12, "x")), Order: 0},
			{Fix: fix.New(fix.Insert(1, "("), fix.Insert(11, ")")), Order: 1},
		}, 20)

		assert.Equal(t, []int{1}, plan.Accepted)
		assert.Equal(t, []int{0}, plan.Rejected)
		assert.Len(t, plan.Replacements, 2)
	})

	t.Run("invalid fix dropped without blocking others", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve([]fix.Candidate{
			{Fix: fix.New(fix.Replace(0, 4, "x"), fix.Replace(2, 5, "y")), Order: 0},
			{Fix: fix.New(fix.Replace(1, 3, "z")), Order: 1},
			{Fix: fix.New(fix.Replace(18, 25, "")), Order: 2},
			{Fix: nil, Order: 3},
		}, 20)

		assert.Equal(t, []int{1}, plan.Accepted)
		assert.Empty(t, plan.Rejected)
		require.Len(t, plan.Invalid, 2)
		assert.Equal(t, 0, plan.Invalid[0].Order)
		assert.ErrorIs(t, plan.Invalid[0].Err, fix.ErrInvalidFix)
		assert.Equal(t, 2, plan.Invalid[1].Order)
		assert.ErrorIs(t, plan.Invalid[1].Err, fix.ErrOutOfBounds)
	})

	t.Run("no candidates gives empty plan", func(t *testing.T) {
		t.Parallel()

		plan := fix.Resolve(nil, 0)
		assert.True(t, plan.IsEmpty())
		assert.False(t, plan.IsAccepted(0))
	})
}

func TestResolve_NeverAcceptsOverlaps(t *testing.T) {
	t.Parallel()

	// Every fix [i, i+w) for a spread of widths, including insertions.
	var cands []fix.Candidate
	for i := range 30 {
		w := i % 4
		cands = append(cands, fix.Candidate{Fix: fix.New(fix.Replace(i%17, i%17+w, "#")), Order: i})
	}

	plan := fix.Resolve(cands, 40)
	for a := range plan.Replacements {
		for b := a + 1; b < len(plan.Replacements); b++ {
			assert.False(t, plan.Replacements[a].Span.Overlaps(plan.Replacements[b].Span),
				"%s overlaps %s", plan.Replacements[a].Span, plan.Replacements[b].Span)
		}
	}
	assert.Equal(t, len(cands), len(plan.Accepted)+len(plan.Rejected))

	again := fix.Resolve(cands, 40)
	assert.Equal(t, plan, again)

	_, err := fix.Apply(make([]byte, 40), plan)
	require.NoError(t, err)
}
