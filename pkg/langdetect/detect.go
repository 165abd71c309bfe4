// Package langdetect chooses the grammar a file is parsed with.
// Known extensions decide directly; for anything else (stdin, extensionless
// scripts) it falls back to go-enry's shebang and content heuristics.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names a supported grammar.
type Language string

// Supported grammars.
const (
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
	JavaScript Language = "javascript"

	// Unknown means the content is not a supported language.
	Unknown Language = ""
)

//nolint:gochecknoglobals // Static lookup table
var byExtension = map[string]Language{
	".ts":  TypeScript,
	".mts": TypeScript,
	".cts": TypeScript,
	".tsx": TSX,
	".js":  JavaScript,
	".mjs": JavaScript,
	".cjs": JavaScript,
	".jsx": JavaScript,
}

// classifierCandidates limits enry's classifier to what we can parse.
//
//nolint:gochecknoglobals // Static lookup table
var classifierCandidates = []string{"TypeScript", "TSX", "JavaScript"}

// Languages returns the supported grammars.
func Languages() []Language {
	return []Language{TypeScript, TSX, JavaScript}
}

// Parse converts a user-supplied language name. Common aliases are accepted.
func Parse(name string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "typescript", "ts":
		return TypeScript, true
	case "tsx":
		return TSX, true
	case "javascript", "js", "jsx", "node":
		return JavaScript, true
	default:
		return Unknown, false
	}
}

// ForExtension maps a file extension to a grammar.
func ForExtension(path string) (Language, bool) {
	lang, ok := byExtension[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// Detect returns the grammar for path and content, or Unknown.
func Detect(path string, content []byte) Language {
	if lang, ok := ForExtension(path); ok {
		return lang
	}

	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}

	// Strategy 1: shebang (node, deno, ts-node).
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromEnry(lang, content)
	}

	// Strategy 2: syntax only TypeScript has.
	if lang := detectByPattern(content); lang != Unknown {
		return lang
	}

	// Strategy 3: classifier restricted to supported languages.
	if lang, _ := enry.GetLanguageByClassifier(content, classifierCandidates); lang != "" {
		return fromEnry(lang, content)
	}

	return Unknown
}

var (
	typeSyntaxPattern = regexp.MustCompile(
		`(?m)^\s*(?:export\s+)?(?:interface|type|enum|declare|namespace|abstract\s+class)\s+\w|` +
			`:\s*(?:string|number|boolean|void|unknown|any|never)\b|\bas\s+const\b`)
	jsxPattern = regexp.MustCompile(`<[A-Za-z][\w.]*(?:\s[^<>]*)?/?>`)
)

func detectByPattern(content []byte) Language {
	if !typeSyntaxPattern.Match(content) {
		return Unknown
	}
	if jsxPattern.Match(content) && bytes.Contains(content, []byte("return (")) {
		return TSX
	}
	return TypeScript
}

// fromEnry maps a go-enry language name to a grammar. TypeScript content
// that embeds JSX is parsed with the TSX grammar.
func fromEnry(name string, content []byte) Language {
	switch name {
	case "TypeScript":
		if jsxPattern.Match(content) && bytes.Contains(content, []byte("return (")) {
			return TSX
		}
		return TypeScript
	case "TSX":
		return TSX
	case "JavaScript":
		return JavaScript
	default:
		return Unknown
	}
}
