package lint_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/yaklabco/gotslint/pkg/fix"
	"github.com/yaklabco/gotslint/pkg/lint"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// tokenParser builds a flat tree of tokens, enough to drive the engine
// without a real grammar. A ": word" pair becomes a type annotation.
type tokenParser struct{}

var errParse = errors.New("unparsable input")

func (tokenParser) Parse(_ context.Context, path string, text []byte) (*syntax.Tree, error) {
	if bytes.Contains(text, []byte("@@")) {
		return nil, errParse
	}

	var nodes []*syntax.Node
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			j := bytes.IndexByte(text[i:], '\n')
			if j < 0 {
				j = len(text) - i
			}
			nodes = append(nodes, syntax.NewNode(syntax.KindComment, i, i+j))
			i += j
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			j := bytes.Index(text[i+2:], []byte("*/"))
			end := len(text)
			if j >= 0 {
				end = i + 2 + j + 2
			}
			nodes = append(nodes, syntax.NewNode(syntax.KindComment, i, end))
			i = end
		case c == '\'' || c == '"':
			j := i + 1
			for j < len(text) && text[j] != c {
				j++
			}
			if j < len(text) {
				j++
			}
			nodes = append(nodes, syntax.NewNode(syntax.KindStringLiteral, i, j))
			i = j
		case isWordByte(c):
			j := wordEnd(text, i)
			nodes = append(nodes, wordNode(string(text[i:j]), i, j))
			i = j
		case c == ':':
			j := i + 1
			for j < len(text) && text[j] == ' ' {
				j++
			}
			k := wordEnd(text, j)
			if k == j {
				nodes = append(nodes, syntax.NewToken(syntax.KindPunctuation, i, i+1))
				i++
				continue
			}
			inner := wordNode(string(text[j:k]), j, k)
			if inner.Kind == syntax.KindNullLiteral {
				inner = syntax.NewNode(syntax.KindLiteralType, j, k, inner)
			} else {
				inner = syntax.NewNode(syntax.KindTypeReference, j, k, inner)
			}
			nodes = append(nodes, syntax.NewNode(syntax.KindTypeAnnotation, i, k,
				syntax.NewToken(syntax.KindPunctuation, i, i+1), inner))
			i = k
		case bytes.HasPrefix(text[i:], []byte("===")):
			nodes = append(nodes, syntax.NewToken(syntax.KindEqualsEqualsEquals, i, i+3))
			i += 3
		case bytes.HasPrefix(text[i:], []byte("==")):
			nodes = append(nodes, syntax.NewToken(syntax.KindEqualsEquals, i, i+2))
			i += 2
		case c == ';':
			nodes = append(nodes, syntax.NewToken(syntax.KindSemicolon, i, i+1))
			i++
		default:
			nodes = append(nodes, syntax.NewToken(syntax.KindPunctuation, i, i+1))
			i++
		}
	}

	root := syntax.NewNode(syntax.KindSourceFile, 0, len(text), nodes...)
	tree := syntax.NewTree(path, text, root)
	tree.Language = "test"
	return tree, nil
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func wordEnd(text []byte, i int) int {
	for i < len(text) && isWordByte(text[i]) {
		i++
	}
	return i
}

func wordNode(word string, start, end int) *syntax.Node {
	switch word {
	case "null":
		return syntax.NewNode(syntax.KindNullLiteral, start, end)
	case "var":
		return syntax.NewToken(syntax.KindVarKeyword, start, end)
	case "let":
		return syntax.NewToken(syntax.KindLetKeyword, start, end)
	default:
		return syntax.NewNode(syntax.KindIdentifier, start, end)
	}
}

// funcRule adapts a function to lint.Rule.
type funcRule struct {
	lint.BaseRule
	apply func(ctx *lint.WalkContext) error
}

func (r *funcRule) Apply(ctx *lint.WalkContext) error {
	return r.apply(ctx)
}

func newFuncRule(name string, fixable bool, apply func(ctx *lint.WalkContext) error) *funcRule {
	return &funcRule{BaseRule: lint.NewBaseRule(name, name+" violation", fixable), apply: apply}
}

const nullMessage = "Use 'undefined' instead of 'null'"

func nullRule() lint.Rule {
	return &funcRule{
		BaseRule: lint.NewBaseRule("no-null-keyword", nullMessage, false),
		apply: func(ctx *lint.WalkContext) error {
			return ctx.Walk(func(n *syntax.Node) lint.Action {
				if n.Kind == syntax.KindNullLiteral {
					return lint.RecordAndSkip
				}
				return lint.Continue
			})
		},
	}
}

// keywordRule reports every from keyword and fixes it to the to text.
func keywordRule(name string, from syntax.NodeKind, to string) lint.Rule {
	return newFuncRule(name, true, func(ctx *lint.WalkContext) error {
		return ctx.Walk(func(n *syntax.Node) lint.Action {
			if n.Kind == from {
				ctx.ReportNode(n, "use "+to, fix.New(fix.Replace(n.Span.Start, n.Span.End, to)))
			}
			return lint.Continue
		})
	})
}

// identRule reports identifiers for which want returns a different text
// and fixes them by replacing the whole identifier.
func identRule(name string, want func(string) string) lint.Rule {
	return newFuncRule(name, true, func(ctx *lint.WalkContext) error {
		return ctx.Walk(func(n *syntax.Node) lint.Action {
			if n.Kind != syntax.KindIdentifier {
				return lint.Continue
			}
			text := ctx.NodeText(n)
			if w := want(text); w != text {
				ctx.ReportNode(n, name, fix.New(fix.Replace(n.Span.Start, n.Span.End, w)))
			}
			return lint.Continue
		})
	})
}

func upperRule() lint.Rule {
	return identRule("upper", strings.ToUpper)
}

func suffixRule() lint.Rule {
	return identRule("suffix", func(s string) string {
		if strings.HasSuffix(s, "_") {
			return s
		}
		return s + "_"
	})
}

func active(autoFix bool, rules ...lint.Rule) []lint.ActiveRule {
	out := make([]lint.ActiveRule, len(rules))
	for i, r := range rules {
		out[i] = lint.ActiveRule{Rule: r, Severity: r.DefaultSeverity(), AutoFix: autoFix && r.CanFix()}
	}
	return out
}

func parse(text string) *syntax.Tree {
	tree, err := tokenParser{}.Parse(context.Background(), "test.ts", []byte(text))
	if err != nil {
		panic(err)
	}
	return tree
}
