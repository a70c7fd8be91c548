// Package redact maps non-deterministic values (paths, suffixes,
// timestamps) to stable bracketed placeholders so snapshots stay
// byte-comparable across runs and platforms.
package redact

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds placeholder bindings. Build it once per test
// configuration; it is read-only during comparison and safe for
// concurrent readers once mutation has finished. Callers that need
// per-test bindings should Clone rather than mutate a shared instance.
type Registry struct {
	entries []entry  // sorted by substitution priority
	unused  []string // placeholders bound to no value, sorted
	pre     *prefilter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Insert binds placeholder to value. The placeholder must be uppercase
// letters or underscores enclosed in brackets, e.g. "[EXE]". An empty
// literal value records the placeholder as unused: its text is erased
// from patterns before matching so platform-conditional expectations
// don't force a mismatch.
func (r *Registry) Insert(placeholder string, value Value) error {
	if err := validatePlaceholder(placeholder); err != nil {
		return err
	}

	if value.unused() {
		if !contains(r.unused, placeholder) {
			r.unused = append(r.unused, placeholder)
			sort.Strings(r.unused)
		}
		return nil
	}

	e := entry{Value: value, placeholder: placeholder}
	for i := range r.entries {
		if r.entries[i].same(&e) {
			return nil
		}
	}
	r.entries = append(r.entries, e)
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].less(&r.entries[j])
	})
	r.pre = newPrefilter(r.entries)
	return nil
}

// Extend inserts every binding in vars.
func (r *Registry) Extend(vars map[string]Value) error {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := r.Insert(k, vars[k]); err != nil {
			return err
		}
	}
	return nil
}

// Remove drops every binding naming placeholder.
func (r *Registry) Remove(placeholder string) {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.placeholder != placeholder {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	for i, u := range r.unused {
		if u == placeholder {
			r.unused = append(r.unused[:i], r.unused[i+1:]...)
			break
		}
	}
	r.pre = newPrefilter(r.entries)
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		entries: append([]entry(nil), r.entries...),
		unused:  append([]string(nil), r.unused...),
		pre:     r.pre,
	}
	return c
}

// Redact replaces every bound value in text with its placeholder,
// highest-priority entries first. Scanning resumes strictly after each
// inserted placeholder, so replacements never re-match inside inserted
// text and the pass always terminates.
func (r *Registry) Redact(text string) string {
	if len(r.entries) == 0 {
		return text
	}
	if r.pre != nil && !r.pre.mayMatch(text) {
		return text
	}
	for i := range r.entries {
		e := &r.entries[i]
		idx := 0
		for idx <= len(text) {
			start, end, ok := e.findIn(text[idx:])
			if !ok {
				break
			}
			start, end = idx+start, idx+end
			text = text[:start] + e.placeholder + text[end:]
			idx = start + len(e.placeholder)
		}
	}
	return text
}

// ClearUnused erases every unused placeholder's literal text from
// pattern. Cheap no-op unless the pattern contains '[' and at least one
// unused placeholder exists.
func (r *Registry) ClearUnused(pattern string) string {
	if len(r.unused) == 0 || !strings.Contains(pattern, "[") {
		return pattern
	}
	for _, ph := range r.unused {
		pattern = strings.ReplaceAll(pattern, ph, "")
	}
	return pattern
}

func validatePlaceholder(placeholder string) error {
	if !strings.HasPrefix(placeholder, "[") || !strings.HasSuffix(placeholder, "]") {
		return fmt.Errorf("placeholder %q is not enclosed in []", placeholder)
	}
	inner := placeholder[1 : len(placeholder)-1]
	if inner == "" {
		return fmt.Errorf("placeholder %q is empty", placeholder)
	}
	for _, c := range inner {
		if (c < 'A' || c > 'Z') && c != '_' {
			return fmt.Errorf("placeholder %q may only contain A-Z and _", placeholder)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
