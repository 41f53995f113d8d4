package lexfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexibot/internal/dict"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dictionary.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidDocument(t *testing.T) {
	path := writeFile(t, `[
  {
    "entry": "apple",
    "definition": "a red fruit",
    "author": "alice"
  },
  {
    "entry": "banana",
    "definition": "a yellow fruit",
    "author": "bob"
  }
]`)

	result, err := Load(path)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Empty(t, result.Quarantined)
	assert.Equal(t, dict.Entry{Name: "apple", Definition: "a red fruit", Author: "alice"}, result.Entries[0])
	assert.Equal(t, dict.Entry{Name: "banana", Definition: "a yellow fruit", Author: "bob"}, result.Entries[1])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedDocument(t *testing.T) {
	path := writeFile(t, `{"not": "an array"}`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse dictionary")
}

func TestLoad_QuarantinesMalformedRecords(t *testing.T) {
	path := writeFile(t, `[
  {"entry": "apple", "definition": "a red fruit", "author": "alice"},
  {"definition": "no name field", "author": "bob"},
  {"entry": "", "definition": "empty name", "author": "bob"},
  {"entry": "carrot", "definition": 42, "author": "bob"},
  {"entry": "banana", "definition": "a yellow fruit", "author": "bob"}
]`)

	result, err := Load(path)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, "apple", result.Entries[0].Name)
	assert.Equal(t, "banana", result.Entries[1].Name)

	require.Len(t, result.Quarantined, 3)
	assert.Equal(t, 1, result.Quarantined[0].Index)
	assert.Equal(t, 2, result.Quarantined[1].Index)
	assert.Equal(t, 3, result.Quarantined[2].Index)
	for _, q := range result.Quarantined {
		assert.Error(t, q.Err)
		assert.NotEmpty(t, q.Raw)
	}

	// The empty-name record decodes cleanly; it is the field validation
	// that rejects it.
	var vErr *dict.ValidationError
	require.ErrorAs(t, result.Quarantined[1].Err, &vErr)
	assert.Equal(t, 2, vErr.Index)
	assert.Equal(t, "entry", vErr.Field)
}

func TestLoad_QuarantinesMissingAuthor(t *testing.T) {
	path := writeFile(t, `[
  {"entry": "apple", "definition": "a red fruit", "author": ""}
]`)

	result, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, result.Entries)

	require.Len(t, result.Quarantined, 1)
	var vErr *dict.ValidationError
	require.ErrorAs(t, result.Quarantined[0].Err, &vErr)
	assert.Equal(t, "author", vErr.Field)
}

func TestLoad_EmptyDefinitionIsValid(t *testing.T) {
	path := writeFile(t, `[{"entry": "void", "definition": "", "author": "alice"}]`)

	result, err := Load(path)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Empty(t, result.Quarantined)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")
	entries := []dict.Entry{
		{Name: "café", Definition: "a small restaurant", Author: "alice"},
		{Name: "zebra", Definition: "striped", Author: "bob"},
	}

	require.NoError(t, Save(path, entries))

	result, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, result.Quarantined)
	assert.Equal(t, entries, result.Entries)
}

func TestSave_EmptySequenceWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")

	require.NoError(t, Save(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSave_TwoSpaceIndentation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dictionary.json")

	require.NoError(t, Save(path, []dict.Entry{
		{Name: "apple", Definition: "a red fruit", Author: "alice"},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[
  {
    "entry": "apple",
    "definition": "a red fruit",
    "author": "alice"
  }
]
`, string(data))
}

func TestSave_OverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dictionary.json")

	require.NoError(t, Save(path, []dict.Entry{{Name: "old", Definition: "x", Author: "a"}}))
	require.NoError(t, Save(path, []dict.Entry{{Name: "new", Definition: "y", Author: "b"}}))

	result, err := Load(path)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "new", result.Entries[0].Name)

	// No temp files left behind.
	matches, err := filepath.Glob(filepath.Join(dir, ".lexibot-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
