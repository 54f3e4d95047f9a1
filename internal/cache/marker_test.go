package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarker_Paths(t *testing.T) {
	home := t.TempDir()

	assert.Equal(t, filepath.Join(home, ".cache_valid"), Valid(home).Path())
	assert.Equal(t, filepath.Join(home, ".build_complete"), BuildComplete(home).Path())
	assert.Equal(t, "/somewhere/else", At("/somewhere/else").Path())
}

func TestMarker_WriteAndExists(t *testing.T) {
	home := t.TempDir()
	m := Valid(home)

	// Absent until written
	assert.False(t, m.Exists(), "Marker should not exist before Write")

	err := m.Write()
	require.NoError(t, err)
	assert.True(t, m.Exists(), "Marker should exist after Write")

	// The marker carries no content, only existence
	info, err := os.Stat(m.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size(), "Marker file should be empty")
}

func TestMarker_WriteTruncatesExisting(t *testing.T) {
	home := t.TempDir()
	m := Valid(home)

	// A marker left over with stray content is rewritten empty
	err := os.WriteFile(m.Path(), []byte("stale"), 0o644)
	require.NoError(t, err)

	err = m.Write()
	require.NoError(t, err)

	info, err := os.Stat(m.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestMarker_Clear(t *testing.T) {
	home := t.TempDir()
	m := BuildComplete(home)

	err := m.Write()
	require.NoError(t, err)
	require.True(t, m.Exists())

	err = m.Clear()
	require.NoError(t, err)
	assert.False(t, m.Exists(), "Marker should be gone after Clear")

	// Clearing a missing marker is not an error
	err = m.Clear()
	assert.NoError(t, err, "Clear should be safe to repeat")
}

func TestMarker_WriteFailsWithoutParent(t *testing.T) {
	home := t.TempDir()
	m := At(filepath.Join(home, "missing", ".cache_valid"))

	err := m.Write()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write marker")
}

func TestClearAll(t *testing.T) {
	home := t.TempDir()
	valid := Valid(home)
	complete := BuildComplete(home)

	// Only one of the two markers exists
	err := valid.Write()
	require.NoError(t, err)

	err = ClearAll(valid, complete)
	require.NoError(t, err)

	assert.False(t, valid.Exists(), "Validity marker should be cleared")
	assert.False(t, complete.Exists(), "Build marker should stay absent")
}
