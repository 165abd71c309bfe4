// Package treesitter implements lint.Parser with the tree-sitter
// TypeScript, TSX and JavaScript grammars.
package treesitter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fortio.org/safecast"
	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yaklabco/gotslint/pkg/fsutil"
	"github.com/yaklabco/gotslint/pkg/langdetect"
	"github.com/yaklabco/gotslint/pkg/syntax"
)

// DefaultCacheSize is the number of parsed trees kept in memory.
const DefaultCacheSize = 256

// ErrUnsupportedLanguage is returned when a forced language has no grammar.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Parser parses source text into syntax trees. It is safe for concurrent
// use: each parse borrows a grammar-specific tree-sitter parser from a pool.
type Parser struct {
	language langdetect.Language
	fallback langdetect.Language
	cache    *lru.Cache[cacheKey, *syntax.Tree]
	pools    map[langdetect.Language]*sync.Pool
}

type cacheKey struct {
	path     string
	language langdetect.Language
	hash     string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguage forces a grammar instead of detecting one per file.
func WithLanguage(lang langdetect.Language) Option {
	return func(p *Parser) {
		p.language = lang
	}
}

// WithFallback sets the grammar used when detection finds nothing.
// The default is TypeScript, which accepts plain JavaScript as well.
func WithFallback(lang langdetect.Language) Option {
	return func(p *Parser) {
		p.fallback = lang
	}
}

// WithCacheSize sets the parse cache size. Zero or negative disables it.
func WithCacheSize(size int) Option {
	return func(p *Parser) {
		p.cache = nil
		if size > 0 {
			p.cache, _ = lru.New[cacheKey, *syntax.Tree](size)
		}
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		fallback: langdetect.TypeScript,
		pools:    make(map[langdetect.Language]*sync.Pool),
	}
	p.cache, _ = lru.New[cacheKey, *syntax.Tree](DefaultCacheSize)

	for _, lang := range langdetect.Languages() {
		grammar := grammarFor(lang)
		p.pools[lang] = &sync.Pool{New: func() any {
			sp := sitter.NewParser()
			sp.SetLanguage(grammar)
			return sp
		}}
	}

	for _, opt := range opts {
		opt(p)
	}
	return p
}

func grammarFor(lang langdetect.Language) *sitter.Language {
	switch lang {
	case langdetect.TSX:
		return tsx.GetLanguage()
	case langdetect.JavaScript:
		return javascript.GetLanguage()
	default:
		return typescript.GetLanguage()
	}
}

// Language returns the grammar Parse would use for path and text.
func (p *Parser) Language(path string, text []byte) langdetect.Language {
	if p.language != langdetect.Unknown {
		return p.language
	}
	if lang := langdetect.Detect(path, text); lang != langdetect.Unknown {
		return lang
	}
	return p.fallback
}

// Parse converts text into a syntax tree. Trees are immutable, so identical
// inputs may return the same cached tree.
func (p *Parser) Parse(ctx context.Context, path string, text []byte) (*syntax.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	lang := p.Language(path, text)
	pool, ok := p.pools[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	var key cacheKey
	if p.cache != nil {
		key = cacheKey{path: path, language: lang, hash: fsutil.ContentHash(text)}
		if tree, hit := p.cache.Get(key); hit {
			return tree, nil
		}
	}

	content := make([]byte, len(text))
	copy(content, text)

	sp, _ := pool.Get().(*sitter.Parser)
	defer pool.Put(sp)

	tsTree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		sp.Reset()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tsTree.Close()

	tree, err := convertTree(path, lang, content, tsTree)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Add(key, tree)
	}
	return tree, nil
}

// CacheLen returns the number of cached trees.
func (p *Parser) CacheLen() int {
	if p.cache == nil {
		return 0
	}
	return p.cache.Len()
}

func convertTree(path string, lang langdetect.Language, content []byte, tsTree *sitter.Tree) (*syntax.Tree, error) {
	rootNode := tsTree.RootNode()
	cursor := sitter.NewTreeCursor(rootNode)
	defer cursor.Close()

	root, err := convertNode(cursor, len(content))
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	tree := syntax.NewTree(path, content, root)
	tree.Language = string(lang)
	tree.HasErrors = rootNode.HasError()
	return tree, nil
}

// convertNode copies the node under cursor and its subtree. The cursor is
// left on the same node. Zero-width MISSING nodes inserted by error
// recovery have no source text and are dropped.
func convertNode(cursor *sitter.TreeCursor, textLen int) (*syntax.Node, error) {
	n := cursor.CurrentNode()

	start, err := safecast.Conv[int](n.StartByte())
	if err != nil {
		return nil, fmt.Errorf("node start: %w", err)
	}
	end, err := safecast.Conv[int](n.EndByte())
	if err != nil {
		return nil, fmt.Errorf("node end: %w", err)
	}
	if end > textLen || start > end {
		return nil, fmt.Errorf("node %s [%d,%d) outside text of length %d", n.Type(), start, end, textLen)
	}

	typ := n.Type()
	named := n.IsNamed()
	out := syntax.NewNode(kindOf(typ, named), start, end)
	out.Type = typ
	out.Named = named
	out.Field = cursor.CurrentFieldName()

	if cursor.GoToFirstChild() {
		for {
			if !cursor.CurrentNode().IsMissing() {
				child, err := convertNode(cursor, textLen)
				if err != nil {
					cursor.GoToParent()
					return nil, err
				}
				out.Children = append(out.Children, child)
			}
			if !cursor.GoToNextSibling() {
				break
			}
		}
		cursor.GoToParent()
	}
	return out, nil
}
