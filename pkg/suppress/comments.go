package suppress

import (
	"bytes"

	"github.com/yaklabco/gotslint/pkg/span"
)

// CommentKind distinguishes line comments from block comments.
type CommentKind uint8

const (
	// LineComment is a // comment.
	LineComment CommentKind = iota
	// BlockComment is a /* */ comment.
	BlockComment
)

// Comment is a comment found in source text.
type Comment struct {
	Kind CommentKind

	// Span covers the whole comment including delimiters.
	Span span.Span

	// Body covers the comment text without delimiters.
	Body span.Span
}

// Dialect selects how '<' in expression position is read.
type Dialect uint8

const (
	// TypeScript reads '<' as the start of a type assertion or type
	// parameter list.
	TypeScript Dialect = iota
	// JSX reads '<' as the start of a JSX element, as in TSX and
	// JavaScript files.
	JSX
)

// DialectFor returns the dialect of a grammar name as stored in
// syntax.Tree.Language.
func DialectFor(language string) Dialect {
	switch language {
	case "tsx", "javascript", "jsx":
		return JSX
	default:
		return TypeScript
	}
}

type lexState uint8

const (
	stateCode lexState = iota
	stateLineComment
	stateBlockComment
	stateString
	stateTemplate
	stateRegex
	stateJSXTag
	stateJSXText
)

// nesting is an open "${" or JSX "{" whose closing brace hands control back
// to resume.
type nesting struct {
	resume lexState
	braces int
}

// lexer walks text once, tracking enough context to tell comments from
// literal text.
type lexer struct {
	text    []byte
	dialect Dialect
	out     []Comment

	state  lexState
	resume lexState // state after the current string or comment
	start  int
	quote  byte

	inClass bool

	// lastSig is the last significant code byte and lastPos its offset;
	// lastSig is 0 at the start of the text.
	lastSig byte
	lastPos int

	nest []nesting

	// elems holds, per JSX expression being lexed, the number of open
	// elements.
	elems   []int
	closing bool
	slash   bool
}

// Comments returns the comments in JavaScript/TypeScript text, in order.
// String, template, regular expression and JSX text are skipped so that
// comment markers inside them are not reported, while code inside
// template interpolations and JSX braces is lexed as code. The lexer is
// forgiving: unterminated constructs run to the end of the text.
func Comments(text []byte, dialect Dialect) []Comment {
	lx := &lexer{text: text, dialect: dialect}
	lx.run()
	return lx.out
}

func (lx *lexer) run() {
	text := lx.text
	textLen := len(text)
	next := func(i int) byte {
		if i+1 < textLen {
			return text[i+1]
		}
		return 0
	}

	for i := 0; i < textLen; i++ {
		ch := text[i]
		switch lx.state {
		case stateCode:
			switch {
			case ch == '/' && (next(i) == '/' || next(i) == '*'):
				lx.openComment(i, stateCode)
				i++
			case ch == '/' && lx.operandExpected():
				lx.state, lx.inClass = stateRegex, false
			case ch == '"' || ch == '\'':
				lx.state, lx.quote, lx.resume = stateString, ch, stateCode
			case ch == '`':
				lx.state = stateTemplate
			case ch == '<' && lx.dialect == JSX && lx.operandExpected() && startsElement(text, i+1):
				lx.elems = append(lx.elems, 0)
				lx.enterTag(false)
			case ch == '{':
				if n := len(lx.nest); n > 0 {
					lx.nest[n-1].braces++
				}
				lx.sig(ch, i)
			case ch == '}':
				lx.closeBrace()
				lx.sig(ch, i)
			case !isSpace(ch):
				lx.sig(ch, i)
			}

		case stateLineComment:
			if ch == '\n' || ch == '\r' {
				lx.emit(LineComment, i, lx.start+2, i)
				lx.state = lx.resume
			}

		case stateBlockComment:
			if ch == '*' && next(i) == '/' {
				lx.emit(BlockComment, i+2, lx.start+2, i)
				lx.state = lx.resume
				i++
			}

		case stateString:
			switch {
			case ch == '\\':
				i++
			case ch == lx.quote:
				lx.state = lx.resume
				if lx.resume == stateCode {
					lx.sig(ch, i)
				}
			case ch == '\n' && lx.resume == stateCode:
				lx.state = stateCode
			}

		case stateTemplate:
			switch {
			case ch == '\\':
				i++
			case ch == '`':
				lx.state = stateCode
				lx.sig(ch, i)
			case ch == '$' && next(i) == '{':
				lx.push(stateTemplate)
				i++
				lx.sig('{', i)
			}

		case stateRegex:
			switch {
			case ch == '\\':
				i++
			case ch == '[':
				lx.inClass = true
			case ch == ']':
				lx.inClass = false
			case ch == '/' && !lx.inClass:
				lx.state = stateCode
				lx.sig(ch, i)
			case ch == '\n':
				// Not a regex after all; resume as code.
				lx.state = stateCode
			}

		case stateJSXTag:
			switch {
			case ch == '/' && (next(i) == '/' || next(i) == '*'):
				lx.openComment(i, stateJSXTag)
				i++
			case ch == '"' || ch == '\'':
				lx.state, lx.quote, lx.resume = stateString, ch, stateJSXTag
			case ch == '{':
				lx.push(stateJSXTag)
				lx.sig(ch, i)
			case ch == '>':
				lx.closeTag(i)
			case ch == '/':
				lx.slash = true
			case !isSpace(ch):
				lx.slash = false
			}

		case stateJSXText:
			switch ch {
			case '{':
				lx.push(stateJSXText)
				lx.sig(ch, i)
			case '<':
				closing := next(i) == '/'
				if closing {
					i++
				}
				lx.enterTag(closing)
			}
		}
	}

	switch lx.state {
	case stateLineComment:
		lx.emit(LineComment, textLen, lx.start+2, textLen)
	case stateBlockComment:
		lx.emit(BlockComment, textLen, lx.start+2, textLen)
	case stateCode, stateString, stateTemplate, stateRegex, stateJSXTag, stateJSXText:
	}
}

func (lx *lexer) emit(kind CommentKind, end, bodyStart, bodyEnd int) {
	lx.out = append(lx.out, Comment{
		Kind: kind,
		Span: span.Span{Start: lx.start, End: end},
		Body: span.Span{Start: bodyStart, End: max(bodyStart, bodyEnd)},
	})
}

func (lx *lexer) openComment(i int, resume lexState) {
	lx.start, lx.resume = i, resume
	if lx.text[i+1] == '/' {
		lx.state = stateLineComment
	} else {
		lx.state = stateBlockComment
	}
}

func (lx *lexer) sig(ch byte, i int) {
	lx.lastSig, lx.lastPos = ch, i
}

func (lx *lexer) push(resume lexState) {
	lx.nest = append(lx.nest, nesting{resume: resume})
	lx.state = stateCode
}

// closeBrace pops back to the enclosing template or JSX when the brace
// closes an open nesting.
func (lx *lexer) closeBrace() {
	n := len(lx.nest)
	switch {
	case n == 0:
	case lx.nest[n-1].braces == 0:
		lx.state = lx.nest[n-1].resume
		lx.nest = lx.nest[:n-1]
	default:
		lx.nest[n-1].braces--
	}
}

func (lx *lexer) enterTag(closing bool) {
	lx.state, lx.closing, lx.slash = stateJSXTag, closing, false
}

// closeTag handles the '>' ending a JSX tag at offset i.
func (lx *lexer) closeTag(i int) {
	top := len(lx.elems) - 1
	if top < 0 {
		lx.state = stateCode
		return
	}
	switch {
	case lx.closing:
		lx.elems[top]--
	case !lx.slash:
		lx.elems[top]++
	}
	if lx.elems[top] > 0 {
		lx.state = stateJSXText
		return
	}
	lx.elems = lx.elems[:top]
	lx.state = stateCode
	// A finished element is an operand; a following '/' divides.
	lx.sig(')', i)
}

// operandExpected reports whether the next token starts an operand, so
// that '/' begins a regular expression and '<' may begin a JSX element.
func (lx *lexer) operandExpected() bool {
	if regexAllowedAfter(lx.lastSig) {
		return true
	}
	if !isIdentByte(lx.lastSig) {
		return false
	}
	start := lx.lastPos
	for start > 0 && isIdentByte(lx.text[start-1]) {
		start--
	}
	return operandKeywords[string(lx.text[start:lx.lastPos+1])]
}

// operandKeywords are keywords after which an expression starts.
var operandKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true, "of": true,
	"new": true, "delete": true, "void": true, "throw": true, "case": true,
	"do": true, "else": true, "yield": true, "await": true,
}

// regexAllowedAfter reports whether a '/' following prev starts a regular
// expression literal rather than a division operator.
func regexAllowedAfter(prev byte) bool {
	switch prev {
	case 0, '(', ',', '=', ':', '[', '!', '&', '|', '?', '{', '}', ';', '+', '-', '*', '%', '<', '>', '~', '^':
		return true
	default:
		return false
	}
}

// startsElement reports whether the text at i, just after a '<', opens a
// JSX element or fragment rather than a type parameter list such as
// "<T,>" or "<T extends U>".
func startsElement(text []byte, i int) bool {
	if i >= len(text) {
		return false
	}
	if text[i] == '>' {
		return true
	}
	if !isIdentByte(text[i]) || isDigit(text[i]) {
		return false
	}
	j := i
	for j < len(text) && (isIdentByte(text[j]) || text[j] == '.' || text[j] == '-' || text[j] == ':') {
		j++
	}
	rest := bytes.TrimLeft(text[j:], " \t\r\n")
	return !(len(rest) > 0 && rest[0] == ',') && !bytes.HasPrefix(rest, []byte("extends "))
}

func isIdentByte(ch byte) bool {
	return ch == '_' || ch == '$' || isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}
