// Package suppress finds inline lint directives in source comments and turns
// them into suppression regions.
//
// Recognized directives (in // or /* */ comments):
//
//	tslint:disable                 disable all rules until a matching enable
//	tslint:disable:rule-a rule-b   disable the listed rules
//	tslint:enable[:rules]          close the nearest open disable per name
//	tslint:disable-next-line[:rules]
//	tslint:disable-line[:rules]
//	tslint:enable-next-line[:rules]
//	tslint:enable-line[:rules]
//
// Every rule name, including the "all" pseudo-name, has its own toggle
// stack: enabling one rule never closes an "all" disable and vice versa.
// Malformed directives are recorded but have no effect.
package suppress

import (
	"regexp"
	"slices"
	"strings"

	"github.com/yaklabco/gotslint/pkg/span"
)

// All is the pseudo rule name matching every rule.
const All = "all"

// Region is a range of text in which diagnostics for Rule are discarded.
type Region struct {
	// Rule is a rule name or All.
	Rule string

	// Span is the suppressed range.
	Span span.Span
}

// Malformed describes a directive comment that was ignored.
type Malformed struct {
	// Span is the comment's range.
	Span span.Span

	// Text is the comment body.
	Text string

	// Reason explains why the directive was ignored.
	Reason string
}

// Regions is the set of suppression regions effective for one text.
type Regions struct {
	byRule  map[string][]span.Span
	textLen int

	// Malformed lists directives that were ignored.
	Malformed []Malformed
}

// directivePattern matches the directive prefix of a comment body.
// Group 1 is the verb, group 2 the optional line modifier.
var directivePattern = regexp.MustCompile(`^\s*tslint:(enable|disable)(?:-(line|next-line))?(?::|\s|$)`)

// prefixPattern detects comments that look like a directive but do not parse.
var prefixPattern = regexp.MustCompile(`^\s*tslint:`)

// Scan builds the suppression regions for TypeScript text.
// known reports whether a rule name exists; names it rejects are ignored.
// A nil known accepts every name.
func Scan(text []byte, known func(name string) bool) *Regions {
	return ScanDialect(text, TypeScript, known)
}

// ScanDialect is Scan for text of the given dialect.
func ScanDialect(text []byte, dialect Dialect, known func(name string) bool) *Regions {
	s := newScanState(text, known)
	for _, c := range Comments(text, dialect) {
		s.handle(c)
	}
	return s.finish()
}

// Suppresses reports whether a diagnostic from rule covering sp falls in a
// region for that rule or for All. A region reaching the end of the text
// also holds the zero-width position at the end, where end-of-file
// diagnostics are reported.
func (r *Regions) Suppresses(rule string, sp span.Span) bool {
	if r == nil {
		return false
	}
	atEOF := sp.IsEmpty() && sp.Start == r.textLen
	for _, name := range []string{rule, All} {
		for _, region := range r.byRule[name] {
			if sp.Intersects(region) || (atEOF && region.End == r.textLen) {
				return true
			}
		}
	}
	return false
}

// List returns every region ordered by start offset, then rule name.
func (r *Regions) List() []Region {
	if r == nil {
		return nil
	}
	var out []Region
	for name, spans := range r.byRule {
		for _, sp := range spans {
			out = append(out, Region{Rule: name, Span: sp})
		}
	}
	slices.SortFunc(out, func(a, b Region) int {
		if a.Span.Start != b.Span.Start {
			return a.Span.Start - b.Span.Start
		}
		if a.Span.End != b.Span.End {
			return a.Span.End - b.Span.End
		}
		return strings.Compare(a.Rule, b.Rule)
	})
	return out
}

// Len returns the number of regions.
func (r *Regions) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, spans := range r.byRule {
		n += len(spans)
	}
	return n
}

// directive is a parsed directive comment.
type directive struct {
	enable   bool
	modifier string // "", "line" or "next-line"
	names    []string
}

func parseDirective(body string) (directive, bool) {
	m := directivePattern.FindStringSubmatchIndex(body)
	if m == nil {
		return directive{}, false
	}
	d := directive{
		enable: body[m[2]:m[3]] == "enable",
	}
	if m[4] >= 0 {
		d.modifier = body[m[4]:m[5]]
	}
	rest := body[m[1]:]
	d.names = strings.FieldsFunc(rest, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '*'
	})
	return d, true
}
