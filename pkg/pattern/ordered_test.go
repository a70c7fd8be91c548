package pattern

import (
	"testing"

	"github.com/drydock-tools/snapcheck/pkg/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		pattern string
		want    string
	}{
		{
			name:    "empty",
			input:   "",
			pattern: "",
			want:    "",
		},
		{
			name:    "literals match",
			input:   "Hello\nWorld",
			pattern: "Hello\nWorld",
			want:    "Hello\nWorld",
		},
		{
			name:    "pattern shorter",
			input:   "Hello\nWorld",
			pattern: "Hello\n",
			want:    "Hello\nWorld",
		},
		{
			name:    "input shorter",
			input:   "Hello\n",
			pattern: "Hello\nWorld",
			want:    "Hello\n",
		},
		{
			name:    "all different",
			input:   "Hello\nWorld",
			pattern: "Goodbye\nMoon",
			want:    "Hello\nWorld",
		},
		{
			name:    "middles diverge",
			input:   "Hello\nWorld\nGoodbye",
			pattern: "Hello\nMoon\nGoodbye",
			want:    "Hello\nWorld\nGoodbye",
		},
		{
			name:    "extra actual line resyncs",
			input:   "Hello\nExtra\nWorld",
			pattern: "Hello\nWorld",
			want:    "Hello\nExtra\nWorld",
		},
		{
			name:    "elide delimited with wildcards",
			input:   "Hello World\nHow are you?\nGoodbye World",
			pattern: "Hello [..]\n...\nGoodbye [..]",
			want:    "Hello [..]\n...\nGoodbye [..]",
		},
		{
			name:    "leading elide",
			input:   "Hello\nWorld\nGoodbye",
			pattern: "...\nGoodbye",
			want:    "...\nGoodbye",
		},
		{
			name:    "trailing elide",
			input:   "Hello\nWorld\nGoodbye",
			pattern: "Hello\n...",
			want:    "Hello\n...",
		},
		{
			name:    "middle elide",
			input:   "Hello\nWorld\nGoodbye",
			pattern: "Hello\n...\nGoodbye",
			want:    "Hello\n...\nGoodbye",
		},
		{
			// The line after the elision never appears, so nothing is
			// fabricated and the raw tail survives.
			name:    "post elide diverge",
			input:   "Hello\nSun\nAnd\nWorld",
			pattern: "Hello\n...\nMoon",
			want:    "Hello\nSun\nAnd\nWorld",
		},
		{
			// Divergence at Moon, then the aligner re-anchors on Goodbye
			// and the trailing elision absorbs the rest.
			name:    "post diverge elide",
			input:   "Hello\nWorld\nGoodbye\nSir",
			pattern: "Hello\nMoon\nGoodbye\n...",
			want:    "Hello\nWorld\nGoodbye\n...",
		},
		{
			name:    "inline wildcard",
			input:   "Hello\nWorld\nGoodbye\nSir",
			pattern: "Hello\nW[..]d\nGoodbye\nSir",
			want:    "Hello\nW[..]d\nGoodbye\nSir",
		},
		{
			name:    "consecutive elides terminate",
			input:   "Hello\nWorld",
			pattern: "...\n...\nMoon",
			want:    "Hello\nWorld",
		},
		{
			name:    "elide only",
			input:   "anything\nat all",
			pattern: "...",
			want:    "...",
		},
	}

	reg := redact.NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input, tt.pattern, reg))
		})
	}
}

func TestNormalize_IdempotentOnExactMatch(t *testing.T) {
	patterns := []string{
		"",
		"Hello\nWorld\n",
		"Hello [..]\n...\nGoodbye",
		"...\n",
		"[EXE] run\n",
	}

	reg := redact.NewRegistry()
	for _, p := range patterns {
		assert.Equal(t, p, Normalize(p, p, reg))
	}
}

func TestNormalize_Redactions(t *testing.T) {
	reg := redact.NewRegistry()
	require.NoError(t, reg.Insert("[OBJECT]", redact.Literal("world")))

	got := Normalize("Hello world!", "Hello [OBJECT]!", reg)
	assert.Equal(t, "Hello [OBJECT]!", got)
}

func TestNormalize_UnusedPlaceholder(t *testing.T) {
	reg := redact.NewRegistry()
	require.NoError(t, reg.Insert("[EXE]", redact.Literal("")))

	got := Normalize("cargo", "cargo[EXE]", reg)
	assert.Equal(t, "cargo[EXE]", got)
}

func TestNormalize_OverlappingPaths(t *testing.T) {
	reg := redact.NewRegistry()
	require.NoError(t, reg.Insert("[A]", redact.Path("/home/epage")))
	require.NoError(t, reg.Insert("[B]", redact.Path("/home/epage/snapcheck")))

	got := Normalize("a: /home/epage\nb: /home/epage/snapcheck", "a: [A]\nb: [B]", reg)
	assert.Equal(t, "a: [A]\nb: [B]", got)
}
