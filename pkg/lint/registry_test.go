package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/lint"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry(newFuncRule("b-rule", false, nil), newFuncRule("a-rule", true, nil))

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"a-rule", "b-rule"}, reg.Names())
	assert.True(t, reg.Has("a-rule"))
	assert.False(t, reg.Has("c-rule"))

	rule, ok := reg.Get("a-rule")
	require.True(t, ok)
	assert.True(t, rule.CanFix())

	require.NoError(t, reg.Register(newFuncRule("c-rule", false, nil)))
	assert.Equal(t, "c-rule", reg.Rules()[2].Name())
}

func TestRegistry_Duplicate(t *testing.T) {
	t.Parallel()

	reg := lint.NewRegistry(newFuncRule("dup", false, nil))
	err := reg.Register(newFuncRule("dup", false, nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"dup"`)

	assert.Panics(t, func() {
		lint.NewRegistry(newFuncRule("dup", false, nil), newFuncRule("dup", false, nil))
	})
}

func TestRegistry_Independent(t *testing.T) {
	t.Parallel()

	one := lint.NewRegistry(newFuncRule("only-here", false, nil))
	two := lint.NewRegistry()
	assert.True(t, one.Has("only-here"))
	assert.False(t, two.Has("only-here"))
}
