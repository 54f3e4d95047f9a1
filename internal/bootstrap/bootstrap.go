// Package bootstrap implements the fetch-install-patch-mark cycle that
// keeps a prebuilt build environment available between CI runs.
//
// Every step either succeeds or aborts the run. The validity marker is
// written only after the last step, so a failed or interrupted run leaves
// the same unmarked state a fresh machine starts with, and the next run
// rebuilds from scratch. There is no retry and no rollback.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beamline-ci/envboot/internal/cache"
	"github.com/beamline-ci/envboot/internal/config"
	"github.com/beamline-ci/envboot/internal/envdir"
	"github.com/beamline-ci/envboot/internal/fetch"
	"github.com/beamline-ci/envboot/internal/installer"
)

// Bootstrapper ensures the build environment exists under the configured
// home directory.
type Bootstrapper struct {
	cfg *config.Config
	out io.Writer

	// Replaceable for testing; default to the real implementations
	download func(url, dest string) error
	install  func(dir, prefix string) error
}

// New creates a bootstrapper for the given configuration.
func New(cfg *config.Config) *Bootstrapper {
	runner := installer.NewRunner()
	runner.Silent = cfg.Silent

	b := &Bootstrapper{
		cfg:      cfg,
		out:      os.Stdout,
		download: fetch.Download,
		install:  runner.Install,
	}

	if cfg.Silent {
		b.out = io.Discard
	}

	return b
}

// SetOutput redirects status output.
func (b *Bootstrapper) SetOutput(w io.Writer) {
	b.out = w
}

// Run executes one bootstrap cycle:
//
//	scheduled trigger -> clear both markers, then fall through
//	marker present    -> report and return
//	marker absent     -> fetch, install, swap, patch, mark
func (b *Bootstrapper) Run() error {
	home := b.cfg.Home

	if b.cfg.Scheduled() {
		if err := cache.ClearAll(cache.Valid(home), cache.BuildComplete(home)); err != nil {
			return err
		}

		if b.cfg.Verbose {
			fmt.Fprintf(b.out, "Scheduled run, cleared cache markers under %s\n", home)
		}
	}

	if cache.Valid(home).Exists() {
		fmt.Fprintln(b.out, "Using cached build environment.")
		return nil
	}

	fmt.Fprintln(b.out, "No valid build environment cached, rebuilding.")

	return b.rebuild(home)
}

// rebuild performs the full fetch-install-swap-patch-mark sequence.
func (b *Bootstrapper) rebuild(home string) error {
	if b.cfg.Verbose {
		fmt.Fprintf(b.out, "Fetching %s\n", b.cfg.ArchiveURL)
	}

	if err := b.download(b.cfg.ArchiveURL, home); err != nil {
		return err
	}

	installerDir, err := envdir.FindInstaller(home)
	if err != nil {
		return err
	}

	if b.cfg.Verbose {
		fmt.Fprintf(b.out, "Running installer from %s\n", installerDir)
	}

	if err := b.install(installerDir, home); err != nil {
		return err
	}

	versioned, err := envdir.FindVersioned(home)
	if err != nil {
		return err
	}

	if err := envdir.Swap(home, versioned, b.cfg.TargetName); err != nil {
		return err
	}

	// The generated script still points at the versioned directory name
	if err := envdir.PatchSetPaths(home, b.cfg.TargetName, filepath.Base(versioned)); err != nil {
		return err
	}

	// Written last: a marker must never describe a partial environment
	if err := cache.Valid(home).Write(); err != nil {
		return err
	}

	fmt.Fprintf(b.out, "Build environment installed at %s\n", b.cfg.EnvDir())

	return nil
}
