package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateTestFile writes content to fileName inside a per-test temp dir and returns the path
func CreateTestFile(t *testing.T, fileName string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), fileName)
	err := os.WriteFile(path, content, 0600)
	require.NoError(t, err, "failed to create test file")

	return path
}
