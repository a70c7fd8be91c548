// Package pattern aligns actual text against expected pattern text.
//
// Pattern grammar:
//   - "..." on a line of its own matches zero or more complete lines
//   - "[..]" matches a run of characters within a single line
//   - "[PLACEHOLDER]" matches a value registered in a redact.Registry
package pattern

import "strings"

// elideLine is the whole-line elision marker.
const elideLine = "..."

// SplitLines splits s into lines, each keeping its trailing terminator.
// The final line may lack one. An empty string yields no lines.
func SplitLines(s string) []string {
	var lines []string
	for len(s) > 0 {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:i+1])
		s = s[i+1:]
	}
	return lines
}

// IsElide reports whether line is the whole-line elision marker,
// with or without its terminator.
func IsElide(line string) bool {
	return line == elideLine || line == elideLine+"\n"
}
