// Package envdir manipulates the installed distribution directory: locating
// the version-suffixed installation, swapping it into the fixed target name,
// and rewriting the generated path configuration so it survives the rename.
package envdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// InstallerPattern matches the directory unpacked from the archive,
	// e.g. dials-installer or dials-installer-dev.
	InstallerPattern = "dials-installer*"

	// VersionedPattern matches the directory the vendor installer creates,
	// e.g. dials-v1-14-5.
	VersionedPattern = "dials-v*"

	// SetPathsFile is the generated environment script that embeds the
	// installation directory name, relative to the environment root.
	SetPathsFile = "build/setpaths.sh"
)

// FindInstaller returns the single unpacked installer directory under home.
func FindInstaller(home string) (string, error) {
	return findOne(home, InstallerPattern)
}

// FindVersioned returns the single version-suffixed installation directory
// under home. Zero matches means the installer did not produce the expected
// layout; more than one cannot be renamed unambiguously.
func FindVersioned(home string) (string, error) {
	return findOne(home, VersionedPattern)
}

func findOne(home, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(home, pattern))
	if err != nil {
		return "", fmt.Errorf("failed to scan for %s: %w", pattern, err)
	}

	var dirs []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.IsDir() {
			dirs = append(dirs, m)
		}
	}

	switch len(dirs) {
	case 0:
		return "", fmt.Errorf("no directory matching %s under %s", pattern, home)
	case 1:
		return dirs[0], nil
	default:
		return "", fmt.Errorf("%d directories match %s under %s, expected exactly one", len(dirs), pattern, home)
	}
}

// Swap moves the directory at versioned to home/target, destroying any
// previous target directory first. Swap runs only on the rebuild path, once
// the validity marker is known to be absent.
func Swap(home, versioned, target string) error {
	dest := filepath.Join(home, target)

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to remove previous %s: %w", dest, err)
	}

	if err := os.Rename(versioned, dest); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", versioned, dest, err)
	}

	return nil
}

// PatchSetPaths rewrites the generated setpaths script under home/target,
// replacing every occurrence of oldName with target so the paths it exports
// stay valid after the rename. The file mode is preserved.
func PatchSetPaths(home, target, oldName string) error {
	path := filepath.Join(home, target, filepath.FromSlash(SetPathsFile))

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	patched := strings.ReplaceAll(string(data), oldName, target)

	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
