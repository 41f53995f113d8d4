package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lexibot/internal/dict"
)

// WriteDict writes entries as a dictionary file under t.TempDir() and
// returns its path.
func WriteDict(t *testing.T, entries []dict.Entry) string {
	t.Helper()

	data, err := json.MarshalIndent(entries, "", "  ")
	require.NoError(t, err)
	data = append(data, '\n')

	path := filepath.Join(t.TempDir(), "dictionary.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
