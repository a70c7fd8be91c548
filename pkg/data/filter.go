package data

import (
	"strings"

	"github.com/drydock-tools/snapcheck/pkg/pattern"
	"github.com/drydock-tools/snapcheck/pkg/redact"
	"github.com/drydock-tools/snapcheck/pkg/structured"
)

// NormalizeNewlines converts CRLF line endings to LF. Tree data has
// the conversion applied to every string scalar.
func NormalizeNewlines(d Data) Data {
	op := func(s string) string { return strings.ReplaceAll(s, "\r\n", "\n") }
	return transform(d, op)
}

// NormalizePaths converts backslash path separators to forward
// slashes, so snapshots recorded on one platform match on another.
func NormalizePaths(d Data) Data {
	op := func(s string) string { return strings.ReplaceAll(s, "\\", "/") }
	return transform(d, op)
}

func transform(d Data, op func(string) string) Data {
	if d.format == FormatJSON {
		return Tree(d.tree.Transform(op))
	}
	return Text(op(d.text))
}

// NormalizeToExpected aligns an actual artifact against an expected
// pattern artifact using the redaction registry and the selected
// sequence mode. The result has the actual's shape with aligned spans
// replaced by the pattern's text; callers compare it against expected
// to decide the match.
type NormalizeToExpected struct {
	reg       *redact.Registry
	unordered bool
}

// NewNormalizeToExpected builds the filter around reg. A nil reg means
// an empty registry.
func NewNormalizeToExpected(reg *redact.Registry) NormalizeToExpected {
	if reg == nil {
		reg = redact.NewRegistry()
	}
	return NormalizeToExpected{reg: reg}
}

// Unordered switches sequence comparison to multiset reconciliation.
func (n NormalizeToExpected) Unordered() NormalizeToExpected {
	n.unordered = true
	return n
}

// Normalize applies the engine. Mismatched formats are left divergent:
// the actual artifact is returned unchanged.
func (n NormalizeToExpected) Normalize(actual, expected Data) Data {
	if actual.format != expected.format {
		return actual
	}
	if actual.format == FormatJSON {
		if n.unordered {
			return Tree(structured.NormalizeUnordered(actual.tree, expected.tree, n.reg))
		}
		return Tree(structured.Normalize(actual.tree, expected.tree, n.reg))
	}
	if n.unordered {
		return Text(pattern.NormalizeUnordered(actual.text, expected.text, n.reg))
	}
	return Text(pattern.Normalize(actual.text, expected.text, n.reg))
}
