package motor

import (
	"path/filepath"
	"testing"

	"github.com/pb33f/txview/hargen"
	"github.com/stretchr/testify/require"
)

// generateTestHAR writes a generated HAR into the test's temp dir and returns its path
func generateTestHAR(t *testing.T, entries int, seed int64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.har")
	_, err := hargen.GenerateToFile(path, hargen.GenerateOptions{
		EntryCount:     entries,
		Seed:           seed,
		DictionaryPath: "/nonexistent",
	})
	require.NoError(t, err)
	return path
}
