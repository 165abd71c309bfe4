package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

func TestWalkContext_Options(t *testing.T) {
	t.Parallel()

	wc := lint.NewWalkContext(context.Background(), parse("a"), newFuncRule("opts", false, nil), map[string]any{
		"int":     3,
		"float":   4.0,
		"string":  "double",
		"bool":    true,
		"strings": []any{"a", 1, "b"},
		"wrong":   "not a number",
	})

	assert.Equal(t, 3, wc.OptionInt("int", 0))
	assert.Equal(t, 4, wc.OptionInt("float", 0))
	assert.Equal(t, 7, wc.OptionInt("wrong", 7))
	assert.Equal(t, 9, wc.OptionInt("missing", 9))
	assert.Equal(t, "double", wc.OptionString("string", "single"))
	assert.Equal(t, "single", wc.OptionString("int", "single"))
	assert.True(t, wc.OptionBool("bool", false))
	assert.Equal(t, []string{"a", "b"}, wc.OptionStringSlice("strings", nil))
	assert.Equal(t, []string{"x"}, wc.OptionStringSlice("missing", []string{"x"}))
}

func TestWalkContext_Accessors(t *testing.T) {
	t.Parallel()

	tree := parse("let x;")
	wc := lint.NewWalkContext(context.Background(), tree, newFuncRule("acc", false, nil), nil)

	assert.Equal(t, "acc", wc.RuleName())
	assert.Same(t, tree, wc.Tree())
	assert.Same(t, tree.Root, wc.Root())
	assert.Equal(t, "let x;", string(wc.Text()))
	assert.False(t, wc.Cancelled())

	ident := wc.Root().ChildOfKind(syntax.KindIdentifier)
	assert.Equal(t, "x", wc.NodeText(ident))

	wc.ReportNode(ident, "found x", nil)
	wc.Report(span.At(6), "at end", nil)
	diags := wc.Diagnostics()
	assert.Len(t, diags, 2)
	assert.Equal(t, span.New(4, 5), diags[0].Span)
	assert.Equal(t, "acc", diags[1].RuleName)
}

func TestLineHelpers(t *testing.T) {
	t.Parallel()

	tree := parse("a  \n\n\tb\t\nc")

	assert.Equal(t, "a  ", string(lint.LineContent(tree, 1)))
	assert.True(t, lint.IsBlankLine(tree, 2))
	assert.False(t, lint.IsBlankLine(tree, 3))

	sp, ok := lint.TrailingWhitespace(tree, 1)
	assert.True(t, ok)
	assert.Equal(t, span.New(1, 3), sp)

	sp, ok = lint.TrailingWhitespace(tree, 3)
	assert.True(t, ok)
	assert.Equal(t, span.New(7, 8), sp)

	_, ok = lint.TrailingWhitespace(tree, 4)
	assert.False(t, ok)
	_, ok = lint.TrailingWhitespace(tree, 9)
	assert.False(t, ok)
}

func TestInsideKinds(t *testing.T) {
	t.Parallel()

	tree := parse(`a = "b c"; // d`)

	assert.True(t, lint.InsideKinds(tree.Root, 6, syntax.KindStringLiteral))
	assert.False(t, lint.InsideKinds(tree.Root, 0, syntax.KindStringLiteral))
	assert.True(t, lint.InsideKinds(tree.Root, 13, syntax.KindComment, syntax.KindStringLiteral))
	assert.False(t, lint.InsideKinds(tree.Root, 100, syntax.KindComment))
}
