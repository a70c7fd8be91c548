package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	v, err := FromJSON([]byte(`{"b": 1, "a": [true, null, "x"], "n": 10.5e2}`))
	require.NoError(t, err)

	members := v.Members()
	require.Len(t, members, 3)
	// Member order is the document's, not sorted.
	assert.Equal(t, "b", members[0].Key)
	assert.Equal(t, "a", members[1].Key)
	assert.Equal(t, "n", members[2].Key)
	assert.Equal(t, KindNumber, members[0].Value.Kind())
	assert.Equal(t, "10.5e2", members[2].Value.Text())

	items := members[1].Value.Items()
	require.Len(t, items, 3)
	assert.Equal(t, KindBool, items[0].Kind())
	assert.Equal(t, KindNull, items[1].Kind())
	assert.Equal(t, "x", items[2].Text())
}

func TestFromJSON_Errors(t *testing.T) {
	for _, src := range []string{``, `{`, `[1,]`, `{"a": 1} extra`} {
		_, err := FromJSON([]byte(src))
		assert.Error(t, err, "source %q", src)
	}
}

func TestToJSON(t *testing.T) {
	src := `{
  "name": "demo",
  "count": 10.5e2,
  "tags": [
    "a",
    "b"
  ],
  "empty": [],
  "nested": {
    "ok": true,
    "none": null
  }
}
`
	v, err := FromJSON([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, src, ToJSON(v))
}

func TestToJSON_EscapesStrings(t *testing.T) {
	assert.Equal(t, "\"a\\\"b\\nc\"\n", ToJSON(String("a\"b\nc")))
}
