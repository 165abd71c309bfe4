package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/span"
)

func TestSemicolon_Always(t *testing.T) {
	t.Parallel()

	src := "let a = 1\nfoo()\nimport x from \"y\"\n"
	diags := lintSource(t, NewSemicolonRule(), "a.ts", src, nil)
	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, MissingSemicolonMessage, d.Message)
	}
	assert.Equal(t, span.At(9), diags[0].Span)
	assert.Equal(t, span.At(15), diags[1].Span)

	assert.Equal(t, "let a = 1;\nfoo();\nimport x from \"y\";\n", fixSource(t, NewSemicolonRule(), "a.ts", src, nil))
}

func TestSemicolon_NoFalsePositives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"terminated", "let a = 1;\nfoo();\nreturnValue();\n"},
		{"loop header", "for (let i = 0; i < 2; i++) {}\n"},
		{"declarations without terminator", "class A {}\nfunction f() {}\ninterface I {}\n"},
		{"blocks", "if (a) {\n  b();\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Empty(t, lintSource(t, NewSemicolonRule(), "a.ts", tt.src, nil))
		})
	}
}

func TestSemicolon_Never(t *testing.T) {
	t.Parallel()

	never := map[string]any{"style": SemicolonNever}

	src := "let a = 1;\nfoo();\n"
	diags := lintSource(t, NewSemicolonRule(), "a.ts", src, never)
	assert.Equal(t, []string{UnnecessarySemicolonMessage, UnnecessarySemicolonMessage}, messages(diags))
	assert.Equal(t, "let a = 1\nfoo()\n", fixSource(t, NewSemicolonRule(), "a.ts", src, never))

	hazard := "let a = 1;\n(b)();\n"
	diags = lintSource(t, NewSemicolonRule(), "a.ts", hazard, never)
	require.Len(t, diags, 1, "the semicolon before ( must stay")
	assert.Equal(t, span.New(16, 17), diags[0].Span)
}
