package suppress_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gotslint/pkg/span"
	"github.com/yaklabco/gotslint/pkg/suppress"
)

// spanOf returns the span of the first occurrence of needle in text.
func spanOf(t *testing.T, text, needle string) span.Span {
	t.Helper()
	i := strings.Index(text, needle)
	require.GreaterOrEqual(t, i, 0, "needle %q not found", needle)
	return span.New(i, i+len(needle))
}

func TestScan_BlockDisableAll(t *testing.T) {
	t.Parallel()

	text := "/* tslint:disable */ module M { null; }"
	regions := suppress.Scan([]byte(text), nil)

	nullSpan := spanOf(t, text, "null")
	assert.True(t, regions.Suppresses("no-null-keyword", nullSpan))
	assert.True(t, regions.Suppresses("anything", nullSpan))
	require.Len(t, regions.List(), 1)
	assert.Equal(t, suppress.Region{Rule: suppress.All, Span: span.New(0, len(text))}, regions.List()[0])
}

func TestScan_BlockDisableRuleOnly(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"a = null;",
		"// tslint:disable:no-null-keyword",
		"b = null;",
		"c == d;",
		"// tslint:enable:no-null-keyword",
		"e = null;",
	}, "\n")
	regions := suppress.Scan([]byte(text), nil)

	first := spanOf(t, text, "a = null")
	inside := spanOf(t, text, "b = null")
	other := spanOf(t, text, "c == d")
	after := spanOf(t, text, "e = null")

	assert.False(t, regions.Suppresses("no-null-keyword", first))
	assert.True(t, regions.Suppresses("no-null-keyword", inside))
	assert.True(t, regions.Suppresses("no-null-keyword", other))
	assert.False(t, regions.Suppresses("triple-equals", other), "other rules are unaffected")
	assert.False(t, regions.Suppresses("no-null-keyword", after))
}

func TestScan_SeparateToggleStacks(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"// tslint:disable",
		"x;",
		"// tslint:enable:semicolon",
		"y;",
		"// tslint:enable",
		"z;",
	}, "\n")
	regions := suppress.Scan([]byte(text), nil)

	// Enabling one rule does not close the "all" disable.
	assert.True(t, regions.Suppresses("semicolon", spanOf(t, text, "y;")))
	assert.False(t, regions.Suppresses("semicolon", spanOf(t, text, "z;")))
}

func TestScan_AllEnableDoesNotCloseRuleDisable(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"// tslint:disable:semicolon",
		"// tslint:enable",
		"y;",
	}, "\n")
	regions := suppress.Scan([]byte(text), nil)

	assert.True(t, regions.Suppresses("semicolon", spanOf(t, text, "y;")))
	assert.False(t, regions.Suppresses("quotemark", spanOf(t, text, "y;")))
}

func TestScan_NestedDisablesCloseNearest(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"// tslint:disable:semicolon",
		"a;",
		"// tslint:disable:semicolon",
		"b;",
		"// tslint:enable:semicolon",
		"c;",
	}, "\n")
	regions := suppress.Scan([]byte(text), nil)

	// The first disable is still open after the single enable.
	assert.True(t, regions.Suppresses("semicolon", spanOf(t, text, "c;")))
	assert.Equal(t, 2, regions.Len())
}

func TestScan_MultipleNames(t *testing.T) {
	t.Parallel()

	text := "// tslint:disable:semicolon, quotemark no-console\nx;\n// tslint:enable:quotemark\ny;"
	regions := suppress.Scan([]byte(text), nil)

	y := spanOf(t, text, "y;")
	assert.True(t, regions.Suppresses("semicolon", y))
	assert.True(t, regions.Suppresses("no-console", y))
	assert.False(t, regions.Suppresses("quotemark", y))
}

func TestScan_NextLine(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"a = null;",
		"// tslint:disable-next-line:no-null-keyword",
		"b = null;",
		"c = null;",
	}, "\n")
	regions := suppress.Scan([]byte(text), nil)

	assert.False(t, regions.Suppresses("no-null-keyword", spanOf(t, text, "a = null")))
	assert.True(t, regions.Suppresses("no-null-keyword", spanOf(t, text, "b = null")))
	assert.False(t, regions.Suppresses("no-null-keyword", spanOf(t, text, "c = null")))
}

func TestScan_NextLineAtEOF(t *testing.T) {
	t.Parallel()

	regions := suppress.Scan([]byte("x; // tslint:disable-next-line"), nil)
	assert.Equal(t, 0, regions.Len())
}

func TestScan_CurrentLine(t *testing.T) {
	t.Parallel()

	text := "a = null; // tslint:disable-line\nb = null;"
	regions := suppress.Scan([]byte(text), nil)

	assert.True(t, regions.Suppresses("no-null-keyword", spanOf(t, text, "a = null")))
	assert.False(t, regions.Suppresses("no-null-keyword", spanOf(t, text, "b = null")))
}

func TestScan_EnableNextLineCarvesHole(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"// tslint:disable:semicolon",
		"a",
		"// tslint:enable-next-line:semicolon",
		"b",
		"c",
	}, "\n")
	regions := suppress.Scan([]byte(text), nil)

	assert.True(t, regions.Suppresses("semicolon", spanOf(t, text, "a\n")))
	assert.False(t, regions.Suppresses("semicolon", spanOf(t, text, "b\n")))
	assert.True(t, regions.Suppresses("semicolon", spanOf(t, text, "c")))
}

func TestScan_MalformedIgnored(t *testing.T) {
	t.Parallel()

	known := func(name string) bool { return name == "semicolon" }
	text := strings.Join([]string{
		"// tslint:disabel",
		"// tslint:",
		"// tslint:disable:not-a-rule",
		"x",
	}, "\n")
	regions := suppress.Scan([]byte(text), known)

	assert.Equal(t, 0, regions.Len())
	assert.False(t, regions.Suppresses("semicolon", spanOf(t, text, "x")))
	require.Len(t, regions.Malformed, 3)
	assert.Equal(t, "unknown rule not-a-rule", regions.Malformed[2].Reason)
}

func TestScan_UnknownNamesDroppedKnownKept(t *testing.T) {
	t.Parallel()

	known := func(name string) bool { return name == "semicolon" }
	text := "// tslint:disable:bogus semicolon\nx"
	regions := suppress.Scan([]byte(text), known)

	assert.True(t, regions.Suppresses("semicolon", spanOf(t, text, "x")))
	assert.False(t, regions.Suppresses("bogus", spanOf(t, text, "x")))
	assert.Len(t, regions.Malformed, 1)
}

func TestScan_DirectiveInStringIgnored(t *testing.T) {
	t.Parallel()

	text := `const s = "// tslint:disable"; x = null;`
	regions := suppress.Scan([]byte(text), nil)
	assert.Equal(t, 0, regions.Len())
}

func TestScan_ExplicitAll(t *testing.T) {
	t.Parallel()

	text := "// tslint:disable:all\nx"
	regions := suppress.Scan([]byte(text), nil)
	require.Len(t, regions.List(), 1)
	assert.Equal(t, suppress.All, regions.List()[0].Rule)
}

func TestRegions_NilSafe(t *testing.T) {
	t.Parallel()

	var regions *suppress.Regions
	assert.False(t, regions.Suppresses("x", span.New(0, 1)))
	assert.Nil(t, regions.List())
	assert.Equal(t, 0, regions.Len())
}

func TestRegions_SuppressesAtEndOfText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"unmatched disable all", "// tslint:disable\nlet x = 1", true},
		{"unmatched disable rule", "// tslint:disable:eofline\nlet x = 1", true},
		{"disable line on last line", "let x = 1 // tslint:disable-line", true},
		{"disable next line targets last line", "// tslint:disable-next-line\nlet x = 1", true},
		{"other rule", "// tslint:disable:semicolon\nlet x = 1", false},
		{"closed before end", "// tslint:disable\nlet x = 1\n// tslint:enable\nlet y = 2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			regions := suppress.Scan([]byte(tt.text), nil)
			eof := span.At(len(tt.text))
			assert.Equal(t, tt.want, regions.Suppresses("eofline", eof))
		})
	}
}

func TestScanDialect_DirectivesAfterLiteralText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dialect suppress.Dialect
		text    string
	}{
		{"apostrophe in jsx text", suppress.JSX, "const a = <p>Don't</p>; // tslint:disable-line\n"},
		{"template interpolation", suppress.TypeScript, "const s = `${x /* tslint:disable-line */}`;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			regions := suppress.ScanDialect([]byte(tt.text), tt.dialect, nil)
			require.Equal(t, 1, regions.Len())
			assert.True(t, regions.Suppresses("quotemark", spanOf(t, tt.text, "const")))
		})
	}
}
