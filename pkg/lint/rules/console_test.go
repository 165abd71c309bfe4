package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoConsole(t *testing.T) {
	t.Parallel()

	src := "console.log(1);\nconsole.error(2);\nother.log(3);\n"

	assert.Equal(t,
		[]string{"Calls to 'console.log' are not allowed.", "Calls to 'console.error' are not allowed."},
		messages(lintSource(t, NewNoConsoleRule(), "a.js", src, nil)))

	diags := lintSource(t, NewNoConsoleRule(), "a.js", src, map[string]any{"methods": []any{"error"}})
	assert.Equal(t, []string{"Calls to 'console.error' are not allowed."}, messages(diags))
	assert.False(t, diags[0].HasFix())
}

func TestNoConsole_Defaults(t *testing.T) {
	t.Parallel()

	rule := NewNoConsoleRule()
	assert.False(t, rule.DefaultEnabled())
	assert.False(t, rule.CanFix())
}
