package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManifest(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "conda.txt")
	content := "# Core\npython=3.9\n# scipy=1.6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	assert.NoError(t, runManifest(manifestCmd, []string{path}))
}

func TestRunManifest_LintFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "conda.txt")
	content := "# A\nnumpy=1.20\n\n# B\nnumpy=1.19\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, manifestCmd.Flags().Set("lint", "true"))
	defer func() { _ = manifestCmd.Flags().Set("lint", "false") }()

	err := runManifest(manifestCmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue")
}

func TestRunManifest_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	err := runManifest(manifestCmd, []string{"nope.txt"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open manifest")
}
