package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ValueScan(t *testing.T) {
	v, err := StringList{"go", "sql"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["go","sql"]`, v)

	var nilList StringList
	v, err = nilList.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var out StringList
	require.NoError(t, out.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, out)

	require.NoError(t, out.Scan(nil))
	assert.Equal(t, StringList{}, out)

	assert.Error(t, out.Scan(42))
	assert.Error(t, out.Scan("not json"))
}

func TestProfile_NormalizeSerializesEmptyArrays(t *testing.T) {
	p := Profile{Handle: "jdoe", Status: "Developer"}
	p.Normalize()

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, []any{}, decoded["skills"])
	assert.Equal(t, []any{}, decoded["experience"])
	assert.Equal(t, []any{}, decoded["education"])
	assert.NotContains(t, decoded, "UserID")
}

func TestPost_NormalizeEmptyCollections(t *testing.T) {
	var empty Post
	empty.Normalize()
	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"likes":[]`)
	assert.Contains(t, string(raw), `"comments":[]`)
}
