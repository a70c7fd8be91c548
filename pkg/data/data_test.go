package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/drydock-tools/snapcheck/pkg/redact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("out.json"))
	assert.Equal(t, FormatJSON, FormatForPath("OUT.JSON"))
	assert.Equal(t, FormatText, FormatForPath("out.txt"))
	assert.Equal(t, FormatText, FormatForPath("json"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello\n"), 0o644))
	d, err := FromFile(txt)
	require.NoError(t, err)
	assert.Equal(t, FormatText, d.Format())
	assert.Equal(t, "hello\n", d.Render())

	js := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"a": 1}`), 0o644))
	d, err = FromFile(js)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, d.Format())
	assert.Equal(t, "{\n  \"a\": 1\n}\n", d.Render())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	_, err = FromFile(bad)
	assert.Error(t, err)

	_, err = FromFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")

	d, err := FromBytes([]byte(`{"b": 2, "a": 1}`), FormatJSON)
	require.NoError(t, err)
	require.NoError(t, d.WriteFile(path))

	back, err := FromFile(path)
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}

func TestEqual(t *testing.T) {
	assert.True(t, Text("a").Equal(Text("a")))
	assert.False(t, Text("a").Equal(Text("b")))

	j1, err := FromBytes([]byte(`[1, 2]`), FormatJSON)
	require.NoError(t, err)
	j2, err := FromBytes([]byte(`[1,2]`), FormatJSON)
	require.NoError(t, err)
	assert.True(t, j1.Equal(j2))

	// Format mismatch is a divergence, not a coercion.
	assert.False(t, Text("[1, 2]").Equal(j1))
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\n", NormalizeNewlines(Text("a\r\nb\r\n")).Render())

	d, err := FromBytes([]byte(`{"log": "a\r\nb"}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"log\": \"a\\nb\"\n}\n", NormalizeNewlines(d).Render())
}

func TestNormalizePaths(t *testing.T) {
	assert.Equal(t, "C:/tmp/x", NormalizePaths(Text(`C:\tmp\x`)).Render())
}

func TestNormalizeToExpected(t *testing.T) {
	reg := redact.NewRegistry()
	require.NoError(t, reg.Insert("[NAME]", redact.Literal("world")))
	filter := NewNormalizeToExpected(reg)

	t.Run("text", func(t *testing.T) {
		got := filter.Normalize(Text("Hello world\nextra"), Text("Hello [NAME]\n..."))
		assert.Equal(t, "Hello [NAME]\n...", got.Render())
	})

	t.Run("json", func(t *testing.T) {
		actual, err := FromBytes([]byte(`{"greeting": "Hello world"}`), FormatJSON)
		require.NoError(t, err)
		expected, err := FromBytes([]byte(`{"greeting": "Hello [NAME]"}`), FormatJSON)
		require.NoError(t, err)
		got := filter.Normalize(actual, expected)
		assert.True(t, got.Equal(expected), "got %s", got.Render())
	})

	t.Run("unordered", func(t *testing.T) {
		got := filter.Unordered().Normalize(Text("b\na\n"), Text("a\nb\n"))
		assert.Equal(t, "a\nb\n", got.Render())
	})

	t.Run("format mismatch keeps actual", func(t *testing.T) {
		tree, err := FromBytes([]byte(`[1]`), FormatJSON)
		require.NoError(t, err)
		got := filter.Normalize(Text("[1]"), tree)
		assert.True(t, got.Equal(Text("[1]")))
	})

	t.Run("nil registry", func(t *testing.T) {
		got := NewNormalizeToExpected(nil).Normalize(Text("x"), Text("x"))
		assert.Equal(t, "x", got.Render())
	})
}
