//go:build unit
// +build unit

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

func newRootCmd(t *testing.T) *cobra.Command {
	t.Helper()
	rootCmd := &cobra.Command{Use: "resume-processor-cli"}
	require.NoError(t, InitDocumentCommands(rootCmd))
	return rootCmd
}

func TestSampleCmd(t *testing.T) {
	output := filepath.Join(t.TempDir(), "sample.pdf")

	rootCmd := newRootCmd(t)
	rootCmd.SetArgs([]string{"sample", "--output", output})
	require.NoError(t, rootCmd.Execute())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestRenderCmd(t *testing.T) {
	input := testutil.CreateTestFile(t, "resume.json", []byte(`{"name":"Jane Doe","email":"jane@example.com","summary":"Backend engineer"}`))
	output := filepath.Join(t.TempDir(), "resume.pdf")

	rootCmd := newRootCmd(t)
	rootCmd.SetArgs([]string{"render", "--input", input, "--output", output})
	require.NoError(t, rootCmd.Execute())

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}

func TestRenderCmd_InvalidJSON(t *testing.T) {
	input := testutil.CreateTestFile(t, "resume.json", []byte(`not json`))
	output := filepath.Join(t.TempDir(), "resume.pdf")

	rootCmd := newRootCmd(t)
	rootCmd.SetArgs([]string{"render", "--input", input, "--output", output})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestExtractCmd_RequiresInput(t *testing.T) {
	rootCmd := newRootCmd(t)
	rootCmd.SetArgs([]string{"extract"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	assert.Error(t, rootCmd.Execute())
}
