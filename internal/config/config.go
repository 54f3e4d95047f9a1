package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/beamline-ci/envboot/internal/trigger"
)

// Default configuration values
const (
	DefaultArchiveURL = "http://dials.diamond.ac.uk/diamond_builds/dials-linux-x86_64.tar.xz"
	DefaultTargetName = "build_dials"
	DefaultSilent     = false
	DefaultVerbose    = false
)

// Holds the configuration options for envboot
type Config struct {
	// Root directory for the environment and its markers, normally the
	// CI account home
	Home string

	// CI event value for this run (push, pull_request, cron, schedule, ...)
	EventType string

	// URL of the prebuilt distribution archive
	ArchiveURL string

	// Fixed name the installed distribution is renamed to
	TargetName string

	// Suppress console output from the vendor installer
	Silent bool

	// Enable verbose output
	Verbose bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Home:       viper.GetString("home"),
		EventType:  viper.GetString("event_type"),
		ArchiveURL: viper.GetString("archive_url"),
		TargetName: viper.GetString("target"),
		Silent:     viper.GetBool("silent"),
		Verbose:    viper.GetBool("verbose"),
	}

	// Apply defaults if not set
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home directory not set and not discoverable: %w", err)
		}

		cfg.Home = home
	}

	if cfg.ArchiveURL == "" {
		cfg.ArchiveURL = DefaultArchiveURL
	}

	if cfg.TargetName == "" {
		cfg.TargetName = DefaultTargetName
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if abs, err := filepath.Abs(c.Home); err == nil {
		c.Home = abs
	}

	// Validate archive URL
	u, err := url.Parse(c.ArchiveURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid archive url: %s", c.ArchiveURL)
	}

	// The target is a single directory name under home, never a path
	if !isValidTargetName(c.TargetName) {
		return fmt.Errorf("invalid target name: %s", c.TargetName)
	}

	return nil
}

// Scheduled reports whether this run was started by a timer.
func (c *Config) Scheduled() bool {
	return trigger.IsScheduled(c.EventType)
}

// EnvDir returns the path of the installed environment directory.
func (c *Config) EnvDir() string {
	return filepath.Join(c.Home, c.TargetName)
}

func isValidTargetName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}

	return !strings.ContainsAny(name, `/\`)
}
