package pattern

import (
	"strings"

	"github.com/drydock-tools/snapcheck/pkg/redact"
)

// inlineWildcard matches a run of characters within one line, never
// crossing a line boundary.
const inlineWildcard = "[..]"

// LineMatches reports whether one actual line satisfies one pattern
// line. The line is redacted and the pattern stripped of unused
// placeholders first. Wildcard sections are resolved greedily left to
// right with first-occurrence anchoring and no backtracking; patterns
// with ambiguous repeated anchors can under-match. That imprecision is
// load-bearing for existing snapshots, so it stays.
func LineMatches(line, patternLine string, reg *redact.Registry) bool {
	if line == patternLine {
		return true
	}

	input := reg.Redact(line)
	cleared := reg.ClearUnused(patternLine)
	sections := strings.Split(cleared, inlineWildcard)
	for i, section := range sections {
		remainder, ok := strings.CutPrefix(input, section)
		if !ok {
			return false
		}
		if i == len(sections)-1 {
			return remainder == ""
		}
		next := sections[i+1]
		if next == "" {
			input = ""
		} else if idx := strings.Index(remainder, next); idx >= 0 {
			input = remainder[idx:]
		}
		// Anchor not found: leave the cursor alone and let the next
		// section fail to strip.
	}
	return false
}
