package pattern

import (
	"strings"

	"github.com/drydock-tools/snapcheck/pkg/redact"
)

// Normalize aligns input against pattern line by line, in order. Lines
// that satisfy the pattern are emitted as the pattern's text so a later
// byte comparison can succeed; lines the pattern cannot account for are
// emitted verbatim. The result never fabricates content: if input truly
// satisfies pattern, the result equals pattern exactly, and any
// divergence leaves the raw actual text in place from that point on
// (until the aligner can resynchronize on a later pattern line).
func Normalize(input, patternText string, reg *redact.Registry) string {
	if input == patternText {
		return input
	}

	input = reg.Redact(input)
	inputLines := SplitLines(input)
	patternLines := SplitLines(patternText)

	var out []string
	a, p := 0, 0
	for p < len(patternLines) {
		patternLine := patternLines[p]

		if IsElide(patternLine) {
			if p+1 >= len(patternLines) {
				// Trailing elision: everything after this point is
				// unconstrained.
				out = append(out, patternLine)
				a = len(inputLines)
				p++
				break
			}
			next := patternLines[p+1]
			if idx := scanForward(inputLines, a, next, reg); idx >= 0 {
				out = append(out, patternLine)
				a = idx
				p++
				continue
			}
			// The line after the elision never shows up; try to
			// re-anchor on a later pattern line.
			ra, rp, ok := resync(inputLines, patternLines, a, p+1, reg)
			if !ok {
				break
			}
			out = append(out, inputLines[a:ra]...)
			a, p = ra, rp
			continue
		}

		if a >= len(inputLines) {
			break
		}
		if LineMatches(inputLines[a], patternLine, reg) {
			out = append(out, patternLine)
			a++
			p++
			continue
		}

		ra, rp, ok := resync(inputLines, patternLines, a, p, reg)
		if !ok {
			break
		}
		out = append(out, inputLines[a:ra]...)
		a, p = ra, rp
	}

	out = append(out, inputLines[a:]...)
	return strings.Join(out, "")
}

// scanForward returns the index of the first input line at or after
// from that satisfies patternLine, or -1.
func scanForward(inputLines []string, from int, patternLine string, reg *redact.Registry) int {
	for i := from; i < len(inputLines); i++ {
		if LineMatches(inputLines[i], patternLine, reg) {
			return i
		}
	}
	return -1
}

// resync searches for the nearest future pattern line that either is an
// elision marker or matches some remaining input line. The skipped
// input lines are the caller's to emit verbatim; both cursors jump to
// the returned positions. Progress is guaranteed: the returned pair is
// always strictly ahead of (a, pmin-1).
func resync(inputLines, patternLines []string, a, pmin int, reg *redact.Registry) (ra, rp int, ok bool) {
	for pi := pmin; pi < len(patternLines); pi++ {
		if IsElide(patternLines[pi]) {
			return a, pi, true
		}
		if idx := scanForward(inputLines, a, patternLines[pi], reg); idx >= 0 {
			return idx, pi, true
		}
	}
	return 0, 0, false
}
