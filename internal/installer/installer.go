// Package installer drives the vendor-provided install executable bundled
// inside the distribution archive.
package installer

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Executable is the name of the installer inside the unpacked archive.
const Executable = "install"

// Commander interface for testing
type Commander interface {
	Run() error
}

// Runner executes the vendor installer.
type Runner struct {
	execCommand func(name string, args ...string) Commander

	// Silent discards the installer's console output.
	Silent bool
}

// NewRunner creates a runner backed by os/exec.
func NewRunner() *Runner {
	return &Runner{
		execCommand: func(name string, args ...string) Commander {
			return exec.Command(name, args...)
		},
	}
}

// BuildArgs builds the argument list for the vendor installer: skip Python
// bytecode precompilation, verbose output, install under prefix.
func BuildArgs(prefix string) []string {
	return []string{"--nopycompile", "--verbose", "--prefix=" + prefix}
}

// Install runs the bundled installer from dir with an install prefix of
// prefix. A non-zero exit comes back wrapped around the *exec.ExitError so
// callers can propagate the vendor's exit code.
func (r *Runner) Install(dir, prefix string) error {
	exe := filepath.Join(dir, Executable)
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("installer executable not found at %s: %w", exe, err)
	}

	c := r.execCommand(exe, BuildArgs(prefix)...)
	if cmd, ok := c.(*exec.Cmd); ok {
		cmd.Dir = dir

		if !r.Silent {
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
		}
	}

	if err := c.Run(); err != nil {
		return fmt.Errorf("installer failed: %w", err)
	}

	return nil
}
