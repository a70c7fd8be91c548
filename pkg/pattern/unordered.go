package pattern

import (
	"strings"

	"github.com/drydock-tools/snapcheck/pkg/redact"
)

// NormalizeUnordered aligns input against pattern treating the input
// lines as a multiset. Matched pattern lines are emitted in pattern
// order, each consuming at most one input line. Pattern lines with no
// match are dropped rather than erroring, so overwrite workflows
// converge. Leftover input lines are appended verbatim unless the
// pattern contained an elision marker, which declares leftovers
// unconstrained.
func NormalizeUnordered(input, patternText string, reg *redact.Registry) string {
	if input == patternText {
		return input
	}

	input = reg.Redact(input)
	inputLines := SplitLines(input)
	used := make([]bool, len(inputLines))

	var out []string
	elided := false
	for _, patternLine := range SplitLines(patternText) {
		if IsElide(patternLine) {
			elided = true
			out = append(out, patternLine)
			continue
		}
		for i, line := range inputLines {
			if used[i] {
				continue
			}
			if LineMatches(line, patternLine, reg) {
				used[i] = true
				out = append(out, patternLine)
				break
			}
		}
	}

	if !elided {
		for i, line := range inputLines {
			if !used[i] {
				out = append(out, line)
			}
		}
	}
	return strings.Join(out, "")
}
