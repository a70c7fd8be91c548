package pattern

import (
	"testing"

	"github.com/drydock-tools/snapcheck/pkg/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineMatches(t *testing.T) {
	tests := []struct {
		line    string
		pattern string
		want    bool
	}{
		{"", "", true},
		{"", "[..]", true},
		{"hello", "hello", true},
		{"hello", "goodbye", false},
		{"hello", "[..]", true},
		{"hello", "he[..]", true},
		{"hello", "go[..]", false},
		{"hello", "[..]o", true},
		{"hello", "[..]e", false},
		{"hello", "he[..]o", true},
		{"hello", "he[..]e", false},
		{"hello", "go[..]o", false},
		{"hello", "go[..]e", false},
		{"hello world, goodbye moon", "hello [..], goodbye [..]", true},
		{"hello world, goodbye moon", "goodbye [..], goodbye [..]", false},
		{"hello world, goodbye moon", "goodbye [..], hello [..]", false},
		{"hello world, goodbye moon", "hello [..], [..] moon", true},
		{"hello world, goodbye moon", "goodbye [..], [..] moon", false},
		{"hello world, goodbye moon", "hello [..], [..] world", false},
		// No leading-space swallow: the literal prefix must line up.
		{"goodbye world", "hello [..]", false},
		// A leading wildcard jumps to the suffix's first occurrence
		// and the final section must consume the exact remainder.
		{"hello world", "[..]world", true},
		{"hello worlds", "[..]world", false},
	}

	reg := redact.NewRegistry()
	for _, tt := range tests {
		t.Run(tt.line+"/"+tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, LineMatches(tt.line, tt.pattern, reg))
		})
	}
}

func TestLineMatches_Redacted(t *testing.T) {
	reg := redact.NewRegistry()
	require.NoError(t, reg.Insert("[OBJECT]", redact.Literal("world")))

	assert.True(t, LineMatches("Hello world!", "Hello [OBJECT]!", reg))
	assert.False(t, LineMatches("Hello moon!", "Hello [OBJECT]!", reg))
}

func TestLineMatches_UnusedPlaceholderCleared(t *testing.T) {
	reg := redact.NewRegistry()
	require.NoError(t, reg.Insert("[EXE]", redact.Literal("")))

	assert.True(t, LineMatches("cargo", "cargo[EXE]", reg))
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"single no terminator", "one", []string{"one"}},
		{"single with terminator", "one\n", []string{"one\n"}},
		{"multi", "one\ntwo\nthree", []string{"one\n", "two\n", "three"}},
		{"blank lines kept", "a\n\nb\n", []string{"a\n", "\n", "b\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.input))
		})
	}
}

func TestIsElide(t *testing.T) {
	assert.True(t, IsElide("..."))
	assert.True(t, IsElide("...\n"))
	assert.False(t, IsElide("...."))
	assert.False(t, IsElide(" ..."))
	assert.False(t, IsElide("[..]"))
}
