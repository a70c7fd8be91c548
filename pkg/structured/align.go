package structured

import (
	"github.com/drydock-tools/snapcheck/pkg/pattern"
	"github.com/drydock-tools/snapcheck/pkg/redact"
)

// Normalize aligns actual against expected, in order, and returns a
// tree of the same shape as actual with every aligned span replaced by
// the expected form. Divergent spans keep the original actual content;
// mismatched kinds are left as-is, never coerced. The caller detects a
// failed match by comparing the result against expected.
func Normalize(actual, expected Value, reg *redact.Registry) Value {
	return normalize(actual, expected, reg, false)
}

// NormalizeUnordered is Normalize with sequences treated as multisets,
// mirroring the unordered line aligner.
func NormalizeUnordered(actual, expected Value, reg *redact.Registry) Value {
	return normalize(actual, expected, reg, true)
}

func normalize(actual, expected Value, reg *redact.Registry, unordered bool) Value {
	if isValueWildcard(expected) {
		return String(ValueWildcard)
	}

	switch {
	case actual.kind == KindString && expected.kind == KindString:
		if unordered {
			return String(pattern.NormalizeUnordered(actual.str, expected.str, reg))
		}
		return String(pattern.Normalize(actual.str, expected.str, reg))
	case actual.kind == KindSequence && expected.kind == KindSequence:
		if unordered {
			return Seq(normalizeSeqUnordered(actual.seq, expected.seq, reg)...)
		}
		return Seq(normalizeSeqOrdered(actual.seq, expected.seq, reg)...)
	case actual.kind == KindMapping && expected.kind == KindMapping:
		return Map(normalizeMapping(actual.obj, expected.obj, reg, unordered)...)
	default:
		return actual
	}
}

// normalizeSeqOrdered partitions expected into runs separated by
// standalone "{...}" wildcards, then aligns each run against a
// contiguous slice of actual. Each wildcard splices away the actual
// elements up to the next run's first element; a run that cannot be
// located stops the pass early, leaving the remainder of actual
// untouched.
func normalizeSeqOrdered(act, exp []Value, reg *redact.Registry) []Value {
	out := append([]Value(nil), act...)
	sections := splitOnWildcard(exp)

	processed := 0
	for si, section := range sections {
		if len(section) > 0 {
			end := processed + len(section)
			if end > len(out) {
				end = len(out)
			}
			for i := processed; i < end; i++ {
				out[i] = normalize(out[i], section[i-processed], reg, false)
			}
			processed += len(section)
			if processed > len(out) {
				// Actual ran out mid-run; nothing left to splice.
				return out
			}
		}

		if si+1 >= len(sections) {
			continue
		}
		next := sections[si+1]
		if len(next) == 0 {
			// Trailing wildcard: absorb everything that remains.
			out = append(out[:processed], String(ValueWildcard))
			processed++
			continue
		}
		anchor := next[0]
		idx := -1
		for i := processed; i < len(out); i++ {
			if normalize(out[i], anchor, reg, false).Equal(anchor) {
				idx = i
				break
			}
		}
		if idx < 0 {
			// The element the wildcard should stop at never appears;
			// give up on further normalization.
			return out
		}
		spliced := make([]Value, 0, processed+1+len(out)-idx)
		spliced = append(spliced, out[:processed]...)
		spliced = append(spliced, String(ValueWildcard))
		spliced = append(spliced, out[idx:]...)
		out = spliced
		processed++
	}
	return out
}

// normalizeSeqUnordered reconciles actual as a multiset: each expected
// element consumes at most one actual element, unmatched expected
// elements are dropped, and leftovers are appended unless a wildcard
// declared them unconstrained.
func normalizeSeqUnordered(act, exp []Value, reg *redact.Registry) []Value {
	used := make([]bool, len(act))
	out := make([]Value, 0, len(exp))
	elided := false
	for _, e := range exp {
		if isValueWildcard(e) {
			elided = true
			out = append(out, String(ValueWildcard))
			continue
		}
		for i := range act {
			if used[i] {
				continue
			}
			if n := normalize(act[i], e, reg, true); n.Equal(e) {
				used[i] = true
				out = append(out, n)
				break
			}
		}
	}
	if !elided {
		for i := range act {
			if !used[i] {
				out = append(out, act[i])
			}
		}
	}
	return out
}

// normalizeMapping matches expected members against redacted actual
// keys, in expected order. A "..." key bound to "{...}" absorbs any
// unlisted actual keys; without it, unlisted keys are appended so the
// divergence stays visible. Expected keys with no actual counterpart
// are simply absent from the output.
func normalizeMapping(act, exp []Member, reg *redact.Registry, unordered bool) []Member {
	redactedKeys := make([]string, len(act))
	for i := range act {
		redactedKeys[i] = reg.Redact(act[i].Key)
	}

	used := make([]bool, len(act))
	out := make([]Member, 0, len(exp))
	wildcard := false
	for _, em := range exp {
		if em.Key == KeyWildcard && isValueWildcard(em.Value) {
			wildcard = true
			out = append(out, Member{Key: KeyWildcard, Value: String(ValueWildcard)})
			continue
		}
		for i := range act {
			if used[i] || redactedKeys[i] != em.Key {
				continue
			}
			used[i] = true
			out = append(out, Member{
				Key:   em.Key,
				Value: normalize(act[i].Value, em.Value, reg, unordered),
			})
			break
		}
	}
	if !wildcard {
		for i := range act {
			if !used[i] {
				out = append(out, Member{Key: redactedKeys[i], Value: act[i].Value})
			}
		}
	}
	return out
}

// splitOnWildcard splits exp on standalone "{...}" elements, returning
// the literal runs between them. Leading, trailing, and adjacent
// wildcards yield empty runs.
func splitOnWildcard(exp []Value) [][]Value {
	var sections [][]Value
	start := 0
	for i := range exp {
		if isValueWildcard(exp[i]) {
			sections = append(sections, exp[start:i])
			start = i + 1
		}
	}
	sections = append(sections, exp[start:])
	return sections
}
