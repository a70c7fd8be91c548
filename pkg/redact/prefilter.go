package redact

import "github.com/cloudflare/ahocorasick"

// prefilter uses Aho-Corasick over the exact-text values to skip the
// per-entry replacement pass when nothing can possibly match. Regex
// entries can't be prefiltered, so their presence disables the
// short-circuit.
type prefilter struct {
	matcher  *ahocorasick.Matcher
	hasRegex bool
}

func newPrefilter(entries []entry) *prefilter {
	pf := &prefilter{}
	var needles []string
	for i := range entries {
		switch entries[i].kind {
		case kindLiteral:
			needles = append(needles, entries[i].text)
		case kindPath:
			needles = append(needles, entries[i].text, entries[i].normalized)
		case kindRegex:
			pf.hasRegex = true
		}
	}
	if len(needles) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(needles)
	}
	return pf
}

// mayMatch reports whether a redaction pass over text could replace
// anything.
func (pf *prefilter) mayMatch(text string) bool {
	if pf.hasRegex {
		return true
	}
	if pf.matcher == nil {
		return false
	}
	return len(pf.matcher.Match([]byte(text))) > 0
}
