package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTripleEquals(t *testing.T) {
	t.Parallel()

	src := "a == b; c != d; e === f;\n"
	diags := lintSource(t, NewTripleEqualsRule(), "a.ts", src, nil)
	assert.Equal(t, []string{"== should be ===", "!= should be !=="}, messages(diags))
	assert.Equal(t, "a === b; c !== d; e === f;\n", fixSource(t, NewTripleEqualsRule(), "a.ts", src, nil))
}

func TestTripleEquals_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		options map[string]any
		want    int
	}{
		{"null check reported by default", "a == null;", nil, 1},
		{"null check allowed", "a == null; null != b;", map[string]any{"allow-null-check": true}, 0},
		{"null option ignores other operands", "a == b;", map[string]any{"allow-null-check": true}, 1},
		{"undefined check allowed", "a != undefined;", map[string]any{"allow-undefined-check": true}, 0},
		{"undefined check reported by default", "a != undefined;", nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, lintSource(t, NewTripleEqualsRule(), "a.js", tt.src, tt.options), tt.want)
		})
	}
}
