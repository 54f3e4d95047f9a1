// Package cache tracks build environment validity through marker files.
//
// A marker is an empty file whose existence is the entire state. The
// bootstrapper writes the validity marker only after an environment has been
// fully installed and patched, so a present marker always describes a usable
// environment. Failed or interrupted runs never write it, which makes
// re-running the bootstrapper the only recovery mechanism needed:
//
//  1. .cache_valid is owned by the bootstrapper (written and cleared here)
//  2. .build_complete is owned by the downstream build job (only cleared here)
package cache

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// ValidName marks a fully installed and patched environment.
	ValidName = ".cache_valid"

	// BuildCompleteName is written by the downstream build job. The
	// bootstrapper clears it on scheduled runs but never writes it.
	BuildCompleteName = ".build_complete"
)

// Marker is a boolean flag backed by a file.
type Marker struct {
	path string
}

// At returns the marker stored at path.
func At(path string) Marker {
	return Marker{path: path}
}

// Valid returns the environment validity marker for the given home directory.
func Valid(home string) Marker {
	return At(filepath.Join(home, ValidName))
}

// BuildComplete returns the downstream build marker for the given home directory.
func BuildComplete(home string) Marker {
	return At(filepath.Join(home, BuildCompleteName))
}

// Path returns the marker file location.
func (m Marker) Path() string {
	return m.path
}

// Exists reports whether the marker file is present.
func (m Marker) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Write creates the marker as an empty file.
func (m Marker) Write() error {
	f, err := os.OpenFile(m.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write marker %s: %w", m.path, err)
	}

	return f.Close()
}

// Clear removes the marker. A missing marker is not an error, so clearing
// can be repeated safely.
func (m Marker) Clear() error {
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear marker %s: %w", m.path, err)
	}

	return nil
}

// ClearAll removes every given marker, continuing past missing files.
func ClearAll(markers ...Marker) error {
	for _, m := range markers {
		if err := m.Clear(); err != nil {
			return err
		}
	}

	return nil
}
