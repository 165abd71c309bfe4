package fix

import (
	"fmt"
	"strings"
)

// Diff is a line-based unified diff between the text before and after fixing.
type Diff struct {
	Path      string
	Original  []byte
	Modified  []byte
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section of a unified diff. Start lines are 1-based.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a single line of a hunk, without its prefix character.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind classifies a diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd exists only in the modified text.
	DiffLineAdd

	// DiffLineRemove exists only in the original text.
	DiffLineRemove
)

// Prefix returns the unified diff prefix character for the kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

const diffContext = 3

// GenerateDiff returns the unified diff of original and modified, or nil if
// the two have the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	before := diffLines(original)
	after := diffLines(modified)

	ops := diffOps(before, after)
	hunks := buildHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Original: original, Modified: modified, Hunks: hunks}
	for _, op := range ops {
		switch op.kind {
		case DiffLineAdd:
			d.Additions++
		case DiffLineRemove:
			d.Deletions++
		}
	}
	return d
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	p := strings.TrimPrefix(d.Path, "/")
	return "diff --git a/" + p + " b/" + p
}

// String renders the diff without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	p := strings.TrimPrefix(d.Path, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", p, p)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
		for _, l := range h.Lines {
			sb.WriteString(l.Kind.Prefix())
			sb.WriteString(l.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FullString renders the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff has at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func diffLines(text []byte) []string {
	if len(text) == 0 {
		return nil
	}
	lines := strings.Split(string(text), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps aligns before and after on a longest common subsequence of lines
// and emits removals ahead of additions between matched lines.
func diffOps(before, after []string) []diffOp {
	n, m := len(before), len(after)

	// suffix[i][j] is the LCS length of before[i:] and after[j:].
	suffix := make([][]int, n+1)
	for i := range suffix {
		suffix[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if before[i] == after[j] {
				suffix[i][j] = suffix[i+1][j+1] + 1
			} else {
				suffix[i][j] = max(suffix[i+1][j], suffix[i][j+1])
			}
		}
	}

	ops := make([]diffOp, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case before[i] == after[j]:
			ops = append(ops, diffOp{DiffLineContext, before[i]})
			i++
			j++
		case suffix[i+1][j] >= suffix[i][j+1]:
			ops = append(ops, diffOp{DiffLineRemove, before[i]})
			i++
		default:
			ops = append(ops, diffOp{DiffLineAdd, after[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, diffOp{DiffLineRemove, before[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, diffOp{DiffLineAdd, after[j]})
	}
	return ops
}

// buildHunks groups changed ops with diffContext lines of context. Changes
// separated by at most twice the context share a hunk.
func buildHunks(ops []diffOp) []DiffHunk {
	var hunks []DiffHunk

	// Line numbers before ops[k], per side.
	origLine, modLine := make([]int, len(ops)+1), make([]int, len(ops)+1)
	for k, op := range ops {
		origLine[k+1], modLine[k+1] = origLine[k], modLine[k]
		if op.kind != DiffLineAdd {
			origLine[k+1]++
		}
		if op.kind != DiffLineRemove {
			modLine[k+1]++
		}
	}

	k := 0
	for k < len(ops) {
		if ops[k].kind == DiffLineContext {
			k++
			continue
		}

		// Extend the change run until a context gap wider than 2*diffContext.
		last := k
		for next := k + 1; next < len(ops); next++ {
			if ops[next].kind == DiffLineContext {
				continue
			}
			if next-last-1 > 2*diffContext {
				break
			}
			last = next
		}

		from := max(0, k-diffContext)
		to := min(len(ops), last+1+diffContext)

		h := DiffHunk{OriginalStart: origLine[from] + 1, ModifiedStart: modLine[from] + 1}
		for _, op := range ops[from:to] {
			h.Lines = append(h.Lines, DiffLine{Kind: op.kind, Content: op.content})
			if op.kind != DiffLineAdd {
				h.OriginalCount++
			}
			if op.kind != DiffLineRemove {
				h.ModifiedCount++
			}
		}
		hunks = append(hunks, h)
		k = to
	}

	return hunks
}
