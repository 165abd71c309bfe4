package reporter

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gotslint/internal/ui/pretty"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/runner"
)

// maxParentHops bounds how far up a printed diff path may climb before the
// base name is printed instead.
const maxParentHops = 2

// DiffReporter prints the changes fixing made, or would make under
// --dry-run, as git-style unified diffs. Its count is the number of files
// with changes.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// diffStat accumulates the git-style "N files changed" line.
type diffStat struct {
	files, additions, deletions int
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var stat diffStat
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n", r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}
		diff := file.Result.Diff
		stat.files++
		stat.additions += diff.Additions
		stat.deletions += diff.Deletions
		r.writeFile(diff)
	}

	if stat.files > 0 && r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.statLine(stat))
	}
	return stat.files, nil
}

func (r *DiffReporter) writeFile(diff *fix.Diff) {
	path := r.displayPath(diff.Path)

	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(r.bw, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))
		for _, line := range hunk.Lines {
			style := r.styles.DiffContext
			switch line.Kind {
			case fix.DiffLineAdd:
				style = r.styles.DiffAdd
			case fix.DiffLineRemove:
				style = r.styles.DiffRemove
			}
			fmt.Fprintln(r.bw, style.Render(line.Kind.Prefix()+line.Content))
		}
	}
	fmt.Fprintln(r.bw)
}

// displayPath makes an absolute path relative to the working directory,
// falling back to the base name when that is impossible or climbs more
// than maxParentHops levels.
func (r *DiffReporter) displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	base := r.opts.WorkingDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return filepath.Base(path)
		}
		base = wd
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.Count(filepath.ToSlash(rel), "../") > maxParentHops {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

// statLine renders e.g. "2 files changed, 3 insertions(+), 1 deletion(-)".
func (r *DiffReporter) statLine(stat diffStat) string {
	parts := []string{plural(stat.files, "file") + " changed"}
	if stat.additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(stat.additions, "insertion")+"(+)"))
	}
	if stat.deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(stat.deletions, "deletion")+"(-)"))
	}
	return strings.Join(parts, ", ")
}
