package rules

import (
	"context"
	"strings"
	"testing"

	"github.com/yaklabco/gotslint/pkg/config"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/parser/treesitter"
)

func benchmarkSource() []byte {
	const block = `var count = null;
function tally(items: Array<string | null>): number {
  if (items == undefined) {
    debugger;
  }
  const label = 'items'
  return items.length;   
}


`
	return []byte(strings.Repeat(block, 200))
}

func BenchmarkParse(b *testing.B) {
	content := benchmarkSource()
	parser := treesitter.New(treesitter.WithCacheSize(0))
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := parser.Parse(ctx, "bench.ts", content); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLintAllRules(b *testing.B) {
	content := benchmarkSource()
	rules := lint.ResolveRules(NewRegistry(), config.NewConfig())
	linter := lint.NewLinter(treesitter.New(), nil)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := linter.Lint(ctx, "bench.ts", content, rules); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkLintAndFix(b *testing.B) {
	content := benchmarkSource()
	cfg := config.NewConfig()
	cfg.Fix = true
	rules := lint.ResolveRules(NewRegistry(), cfg)
	linter := lint.NewLinter(treesitter.New(), nil)
	ctx := context.Background()

	b.ResetTimer()
	for range b.N {
		if _, err := linter.LintAndFix(ctx, "bench.ts", content, rules, 0); err != nil {
			b.Fatal(err)
		}
	}
}
