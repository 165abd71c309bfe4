package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/span"
)

func TestTrailingWhitespace(t *testing.T) {
	t.Parallel()

	src := "let a = 1;  \nlet b;\t\n"
	diags := lintSource(t, NewTrailingWhitespaceRule(), "a.ts", src, nil)
	require.Len(t, diags, 2)
	assert.Equal(t, span.New(10, 12), diags[0].Span)
	assert.Equal(t, config.SeverityWarning, diags[0].Severity)
	assert.Equal(t, TrailingWhitespaceMessage, diags[0].Message)

	assert.Equal(t, "let a = 1;\nlet b;\n", fixSource(t, NewTrailingWhitespaceRule(), "a.ts", src, nil))
}

func TestTrailingWhitespace_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		options map[string]any
		want    int
	}{
		{"template strings are content", "let s = `a  \nb`;\n", nil, 0},
		{"comments by default", "// note  \nlet a;\n", nil, 1},
		{"comments ignored", "// note  \nlet a;\n", map[string]any{"ignore-comments": true}, 0},
		{"blank lines by default", "let a;\n   \nlet b;\n", nil, 1},
		{"blank lines ignored", "let a;\n   \nlet b;\n", map[string]any{"ignore-blank-lines": true}, 0},
		{"crlf", "let a; \r\nlet b;\r\n", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, lintSource(t, NewTrailingWhitespaceRule(), "a.ts", tt.src, tt.options), tt.want)
		})
	}
}

func TestConsecutiveBlankLines(t *testing.T) {
	t.Parallel()

	src := "a;\n\n\n\nb;\n"

	diags := lintSource(t, NewConsecutiveBlankLinesRule(), "a.ts", src, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "Consecutive blank lines are forbidden", diags[0].Message)
	assert.Equal(t, span.Position{Line: 3, Column: 1}, diags[0].Start)
	assert.Equal(t, "a;\n\nb;\n", fixSource(t, NewConsecutiveBlankLinesRule(), "a.ts", src, nil))

	two := map[string]any{"max": 2}
	diags = lintSource(t, NewConsecutiveBlankLinesRule(), "a.ts", src, two)
	require.Len(t, diags, 1)
	assert.Equal(t, "Exceeds the 2 allowed consecutive blank lines", diags[0].Message)
	assert.Equal(t, "a;\n\n\nb;\n", fixSource(t, NewConsecutiveBlankLinesRule(), "a.ts", src, two))
}

func TestConsecutiveBlankLines_Edges(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lintSource(t, NewConsecutiveBlankLinesRule(), "a.ts", "let s = `\n\n\n`;\n", nil))
	assert.Empty(t, lintSource(t, NewConsecutiveBlankLinesRule(), "a.ts", "a;\n\nb;\n", nil))
	assert.Equal(t, "a;\n\n", fixSource(t, NewConsecutiveBlankLinesRule(), "a.ts", "a;\n\n\n\n", nil))
}

func TestEOFLine(t *testing.T) {
	t.Parallel()

	diags := lintSource(t, NewEOFLineRule(), "a.ts", "let a;", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, span.Position{Line: 1, Column: 7}, diags[0].Start)
	assert.Equal(t, EOFLineMessage, diags[0].Message)
	assert.Equal(t, "let a;\n", fixSource(t, NewEOFLineRule(), "a.ts", "let a;", nil))

	assert.Empty(t, lintSource(t, NewEOFLineRule(), "a.ts", "let a;\n", nil))
	assert.Empty(t, lintSource(t, NewEOFLineRule(), "a.ts", "", nil))
}
