package redact

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// valueKind orders matcher classes for conflict resolution.
// Exact text (literal, path) outranks regex-derived matchers.
type valueKind int

const (
	kindLiteral valueKind = iota
	kindPath
	kindRegex
)

// Value is one matcher for live text that a placeholder stands in for.
// Construct with Literal, Path, or Pattern.
type Value struct {
	kind       valueKind
	text       string // literal text, native path form, or regex source
	normalized string // slash-normalized form (kindPath only)
	re         *regexp2.Regexp
}

// Literal matches an exact substring. An empty string marks the
// placeholder as unused (not applicable in this run/platform).
func Literal(value string) Value {
	return Value{
		kind: kindLiteral,
		text: normalizeNewlines(value),
	}
}

// Path matches a filesystem path in either its native separator form or
// its forward-slash-normalized form, whichever occurs leftmost.
func Path(path string) Value {
	return Value{
		kind:       kindPath,
		text:       path,
		normalized: strings.ReplaceAll(path, `\`, "/"),
	}
}

// Pattern matches text via a compiled regex. If the regex defines a
// named capture group "redacted", only that span is replaced; otherwise
// the whole match is.
func Pattern(re *regexp2.Regexp) Value {
	return Value{
		kind: kindRegex,
		text: re.String(),
		re:   re,
	}
}

func (v Value) unused() bool {
	return v.kind == kindLiteral && v.text == ""
}

// entry is one bound (value, placeholder) pair in the registry.
type entry struct {
	Value
	placeholder string
}

// findIn locates the leftmost span of s this entry's value matches.
func (e *entry) findIn(s string) (start, end int, ok bool) {
	switch e.kind {
	case kindLiteral:
		idx := strings.Index(s, e.text)
		if idx < 0 {
			return 0, 0, false
		}
		return idx, idx + len(e.text), true
	case kindPath:
		ni := strings.Index(s, e.text)
		si := strings.Index(s, e.normalized)
		switch {
		case ni < 0 && si < 0:
			return 0, 0, false
		case si < 0 || (ni >= 0 && ni <= si):
			return ni, ni + len(e.text), true
		default:
			return si, si + len(e.normalized), true
		}
	case kindRegex:
		m, err := e.re.FindStringMatch(s)
		if err != nil || m == nil {
			return 0, 0, false
		}
		runeStart, runeLen := m.Index, m.Length
		if g := m.GroupByName("redacted"); g != nil && len(g.Captures) > 0 {
			runeStart, runeLen = g.Captures[0].Index, g.Captures[0].Length
		}
		// regexp2 indexes are rune-based; convert to byte offsets.
		runes := []rune(s)
		if runeStart < 0 || runeStart+runeLen > len(runes) {
			return 0, 0, false
		}
		start = len(string(runes[:runeStart]))
		end = start + len(string(runes[runeStart:runeStart+runeLen]))
		return start, end, true
	}
	return 0, 0, false
}

// less defines the total substitution order: exact kinds before regex,
// longer text before shorter, then text, then placeholder.
func (e *entry) less(other *entry) bool {
	er, or := e.kindRank(), other.kindRank()
	if er != or {
		return er < or
	}
	if len(e.text) != len(other.text) {
		return len(e.text) > len(other.text)
	}
	if e.text != other.text {
		return e.text < other.text
	}
	return e.placeholder < other.placeholder
}

func (e *entry) kindRank() int {
	if e.kind == kindRegex {
		return 1
	}
	return 0
}

func (e *entry) same(other *entry) bool {
	return e.placeholder == other.placeholder &&
		e.kind == other.kind &&
		e.text == other.text
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
