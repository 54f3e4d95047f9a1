package installer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommander implements Commander interface for testing
type mockCommander struct {
	runFunc func() error
}

func (m *mockCommander) Run() error {
	return m.runFunc()
}

// installerDir creates a directory containing a fake install executable.
func installerDir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "dials-installer-dev")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Executable), []byte("#!/bin/sh\n"), 0o755))

	return dir
}

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("/home/ci")
	assert.Equal(t, []string{"--nopycompile", "--verbose", "--prefix=/home/ci"}, args)
}

func TestRunner_Install_Success(t *testing.T) {
	r := NewRunner()

	var gotName string
	var gotArgs []string

	r.execCommand = func(name string, args ...string) Commander {
		gotName = name
		gotArgs = args

		return &mockCommander{
			runFunc: func() error {
				return nil
			},
		}
	}

	dir := installerDir(t)
	prefix := filepath.Dir(dir)

	err := r.Install(dir, prefix)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "install"), gotName)
	assert.Equal(t, []string{"--nopycompile", "--verbose", "--prefix=" + prefix}, gotArgs)
}

func TestRunner_Install_MissingExecutable(t *testing.T) {
	r := NewRunner()

	// Unpacked directory without an install executable
	dir := t.TempDir()

	err := r.Install(dir, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installer executable not found")
}

func TestRunner_Install_ExitCodePropagation(t *testing.T) {
	r := NewRunner()
	r.Silent = true

	// Real command with a known non-zero exit, so the error carries an
	// *exec.ExitError with the vendor's code
	r.execCommand = func(name string, args ...string) Commander {
		return exec.Command("sh", "-c", "exit 7")
	}

	dir := installerDir(t)

	err := r.Install(dir, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "installer failed")

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.ExitCode())
}

func TestRunner_Install_NonExitError(t *testing.T) {
	r := NewRunner()

	r.execCommand = func(name string, args ...string) Commander {
		return &mockCommander{
			runFunc: func() error {
				return fmt.Errorf("command not found")
			},
		}
	}

	dir := installerDir(t)

	err := r.Install(dir, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command not found")
}

func TestNewRunner(t *testing.T) {
	r := NewRunner()
	assert.NotNil(t, r)
	assert.NotNil(t, r.execCommand)
	assert.False(t, r.Silent)
}
