package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuotemark(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		src     string
		options map[string]any
		want    []string
		fixed   string
	}{
		{
			name:  "double by default",
			path:  "a.ts",
			src:   `let a = 'x'; let b = "y";`,
			want:  []string{`' should be "`},
			fixed: `let a = "x"; let b = "y";`,
		},
		{
			name:  "avoid escape keeps the other quote",
			path:  "a.ts",
			src:   `let a = 'say "hi"';`,
			fixed: `let a = 'say "hi"';`,
		},
		{
			name:    "escaping when avoid escape is off",
			path:    "a.ts",
			src:     `let a = 'say "hi"';`,
			options: map[string]any{"avoid-escape": false},
			want:    []string{`' should be "`},
			fixed:   `let a = "say \"hi\"";`,
		},
		{
			name:  "escaped quote is unescaped",
			path:  "a.ts",
			src:   `let a = 'it\'s';`,
			want:  []string{`' should be "`},
			fixed: `let a = "it's";`,
		},
		{
			name:    "single",
			path:    "a.js",
			src:     `let a = "x"; let b = "it's";`,
			options: map[string]any{"quote": QuoteSingle},
			want:    []string{`" should be '`},
			fixed:   `let a = 'x'; let b = "it's";`,
		},
		{
			name:  "type literals",
			path:  "a.ts",
			src:   `type T = 'a' | 'b';`,
			want:  []string{`' should be "`, `' should be "`},
			fixed: `type T = "a" | "b";`,
		},
		{
			name:  "jsx attributes are left alone",
			path:  "a.tsx",
			src:   `const v = <div className='x' />;`,
			fixed: `const v = <div className='x' />;`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := lintSource(t, NewQuotemarkRule(), tt.path, tt.src, tt.options)
			if len(tt.want) == 0 {
				assert.Empty(t, diags)
			} else {
				assert.Equal(t, tt.want, messages(diags))
			}
			assert.Equal(t, tt.fixed, fixSource(t, NewQuotemarkRule(), tt.path, tt.src, tt.options))
		})
	}
}

func TestRequote(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `it's`, requote(`it\'s`, '\'', '"'))
	assert.Equal(t, `a\"b`, requote(`a"b`, '\'', '"'))
	assert.Equal(t, `a\nb`, requote(`a\nb`, '\'', '"'))
	assert.Equal(t, `tail\`, requote(`tail\`, '\'', '"'))
}
