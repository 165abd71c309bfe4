package rules

import (
	"fmt"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// Layout messages.
const (
	TrailingWhitespaceMessage = "trailing whitespace"
	EOFLineMessage            = "file should end with a newline"
)

// TrailingWhitespaceRule disallows spaces and tabs at the end of lines.
// Whitespace inside template strings is content and is never reported.
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule creates the no-trailing-whitespace rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule("no-trailing-whitespace", "Disallows trailing whitespace at the end of a line.", true).
			WithDefaults(true, config.SeverityWarning),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *TrailingWhitespaceRule) DefaultOptions() map[string]any {
	return map[string]any{
		"ignore-comments":    false,
		"ignore-blank-lines": false,
	}
}

// Apply checks each line for trailing whitespace.
func (r *TrailingWhitespaceRule) Apply(ctx *lint.WalkContext) error {
	tree := ctx.Tree()
	ignoreComments := ctx.OptionBool("ignore-comments", false)
	ignoreBlank := ctx.OptionBool("ignore-blank-lines", false)

	for line := 1; line <= tree.Lines.LineCount(); line++ {
		if line%512 == 0 && ctx.Cancelled() {
			return fmt.Errorf("rule cancelled: %w", ctx.Context().Err())
		}

		sp, ok := lint.TrailingWhitespace(tree, line)
		if !ok {
			continue
		}
		if ignoreBlank && lint.IsBlankLine(tree, line) {
			continue
		}
		if lint.InsideKinds(tree.Root, sp.Start, syntax.KindTemplateString) {
			continue
		}
		if ignoreComments && lint.InsideKinds(tree.Root, sp.Start, syntax.KindComment) {
			continue
		}

		ctx.Report(sp, TrailingWhitespaceMessage, fix.New(fix.Delete(sp.Start, sp.End)))
	}
	return nil
}

// ConsecutiveBlankLinesRule limits runs of blank lines to "max" (default 1).
// The fix removes the excess lines.
type ConsecutiveBlankLinesRule struct {
	lint.BaseRule
}

// NewConsecutiveBlankLinesRule creates the no-consecutive-blank-lines rule.
func NewConsecutiveBlankLinesRule() *ConsecutiveBlankLinesRule {
	return &ConsecutiveBlankLinesRule{
		BaseRule: lint.NewBaseRule("no-consecutive-blank-lines", "Disallows one or more blank lines in a row.", true).
			WithDefaults(true, config.SeverityWarning),
	}
}

// DefaultOptions returns the rule's option defaults.
func (r *ConsecutiveBlankLinesRule) DefaultOptions() map[string]any {
	return map[string]any{"max": 1}
}

// Apply reports runs of blank lines longer than allowed.
func (r *ConsecutiveBlankLinesRule) Apply(ctx *lint.WalkContext) error {
	tree := ctx.Tree()
	allowed := max(ctx.OptionInt("max", 1), 1)

	message := "Consecutive blank lines are forbidden"
	if allowed > 1 {
		message = fmt.Sprintf("Exceeds the %d allowed consecutive blank lines", allowed)
	}

	lineCount := tree.Lines.LineCount()
	// The last line of a newline-terminated file is empty and not a line.
	if info, ok := tree.Lines.Line(lineCount); ok && info.Start == len(tree.Text) {
		lineCount--
	}

	runStart := 0
	for line := 1; line <= lineCount+1; line++ {
		if line <= lineCount && lint.IsBlankLine(tree, line) && !insideTemplate(tree, line) {
			if runStart == 0 {
				runStart = line
			}
			continue
		}
		if runStart != 0 && line-runStart > allowed {
			first, _ := tree.Lines.Line(runStart + allowed)
			last, _ := tree.Lines.Line(line - 1)
			remove := span.New(first.Start, last.End)
			ctx.Report(span.New(first.Start, first.NewlineStart), message, fix.New(fix.Delete(remove.Start, remove.End)))
		}
		runStart = 0
	}
	return nil
}

func insideTemplate(tree *syntax.Tree, line int) bool {
	info, ok := tree.Lines.Line(line)
	return ok && lint.InsideKinds(tree.Root, info.Start, syntax.KindTemplateString)
}

// EOFLineRule requires a newline at the end of non-empty files.
type EOFLineRule struct {
	lint.BaseRule
}

// NewEOFLineRule creates the eofline rule.
func NewEOFLineRule() *EOFLineRule {
	return &EOFLineRule{
		BaseRule: lint.NewBaseRule("eofline", "Ensures the file ends with a newline.", true).
			WithDefaults(true, config.SeverityWarning),
	}
}

// Apply checks the final byte.
func (r *EOFLineRule) Apply(ctx *lint.WalkContext) error {
	text := ctx.Text()
	if len(text) == 0 || text[len(text)-1] == '\n' {
		return nil
	}
	end := len(text)
	ctx.Report(span.At(end), EOFLineMessage, fix.New(fix.Insert(end, "\n")))
	return nil
}
