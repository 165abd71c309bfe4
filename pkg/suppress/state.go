package suppress

import (
	"strings"

	"github.com/yaklabco/gotslint/pkg/span"
)

// scanState accumulates regions while directives are processed in order.
type scanState struct {
	text  []byte
	lines *span.LineIndex
	known func(string) bool

	// open holds, per name, the start offsets of unmatched block disables.
	open map[string][]int

	disabled  map[string][]span.Span
	reenabled map[string][]span.Span
	malformed []Malformed
}

func newScanState(text []byte, known func(string) bool) *scanState {
	return &scanState{
		text:      text,
		lines:     span.NewLineIndex(text),
		known:     known,
		open:      make(map[string][]int),
		disabled:  make(map[string][]span.Span),
		reenabled: make(map[string][]span.Span),
	}
}

func (s *scanState) handle(c Comment) {
	body := string(s.text[c.Body.Start:c.Body.End])

	d, ok := parseDirective(body)
	if !ok {
		if prefixPattern.MatchString(body) {
			s.reject(c, body, "unrecognized directive")
		}
		return
	}

	names := s.resolveNames(c, body, d.names)
	if len(names) == 0 {
		return
	}

	switch d.modifier {
	case "line":
		if sp, ok := s.lineRange(c.Span.Start, 0); ok {
			s.toggleRange(d.enable, names, sp)
		}
	case "next-line":
		if sp, ok := s.lineRange(c.Span.End, 1); ok {
			s.toggleRange(d.enable, names, sp)
		}
	default:
		s.toggleBlock(c, d.enable, names)
	}
}

// resolveNames normalizes the directive's rule list. An empty list or one
// containing "all" means All.
func (s *scanState) resolveNames(c Comment, body string, raw []string) []string {
	if len(raw) == 0 {
		return []string{All}
	}

	var names []string
	seen := make(map[string]bool, len(raw))
	for _, name := range raw {
		if strings.EqualFold(name, All) {
			name = All
		} else if s.known != nil && !s.known(name) {
			s.reject(c, body, "unknown rule "+name)
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (s *scanState) toggleBlock(c Comment, enable bool, names []string) {
	for _, name := range names {
		if !enable {
			s.open[name] = append(s.open[name], c.Span.Start)
			continue
		}
		stack := s.open[name]
		if len(stack) == 0 {
			// Enable without a matching disable has no effect.
			continue
		}
		start := stack[len(stack)-1]
		s.open[name] = stack[:len(stack)-1]
		s.disabled[name] = append(s.disabled[name], span.Span{Start: start, End: c.Span.Start})
	}
}

func (s *scanState) toggleRange(enable bool, names []string, sp span.Span) {
	for _, name := range names {
		if enable {
			s.reenabled[name] = append(s.reenabled[name], sp)
		} else {
			s.disabled[name] = append(s.disabled[name], sp)
		}
	}
}

// lineRange returns the span of the line holding offset, moved down by
// delta lines. The span runs up to the start of the following line.
func (s *scanState) lineRange(offset, delta int) (span.Span, bool) {
	pos := s.lines.Position(offset)
	info, ok := s.lines.Line(pos.Line + delta)
	if !ok {
		return span.Span{}, false
	}
	return span.Span{Start: info.Start, End: info.End}, true
}

func (s *scanState) reject(c Comment, body, reason string) {
	s.malformed = append(s.malformed, Malformed{
		Span:   c.Span,
		Text:   strings.TrimSpace(body),
		Reason: reason,
	})
}

// finish closes unmatched disables at end of text and carves re-enabled
// lines out of the disabled ranges.
func (s *scanState) finish() *Regions {
	for name, stack := range s.open {
		for _, start := range stack {
			s.disabled[name] = append(s.disabled[name], span.Span{Start: start, End: len(s.text)})
		}
	}

	byRule := make(map[string][]span.Span, len(s.disabled))
	for name, spans := range s.disabled {
		for _, hole := range s.reenabled[name] {
			spans = subtract(spans, hole)
		}
		if len(spans) > 0 {
			byRule[name] = spans
		}
	}

	return &Regions{byRule: byRule, textLen: len(s.text), Malformed: s.malformed}
}

// subtract removes hole from every span, splitting spans it falls inside.
func subtract(spans []span.Span, hole span.Span) []span.Span {
	out := make([]span.Span, 0, len(spans)+1)
	for _, sp := range spans {
		if hole.End <= sp.Start || hole.Start >= sp.End {
			out = append(out, sp)
			continue
		}
		if sp.Start < hole.Start {
			out = append(out, span.Span{Start: sp.Start, End: hole.Start})
		}
		if hole.End < sp.End {
			out = append(out, span.Span{Start: hole.End, End: sp.End})
		}
	}
	return out
}
