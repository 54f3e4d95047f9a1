package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Loader handles configuration loading from various sources
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadForRun loads configuration for a bootstrapper run
func (l *Loader) LoadForRun(cmd *cobra.Command) (*Config, error) {
	l.setupViperDefaults()
	l.bindEnvironment()
	l.loadGlobalConfig()
	l.loadLocalConfig()
	l.bindCommandFlags(cmd)

	return Load()
}

// setupViperDefaults sets up default values for viper
func (l *Loader) setupViperDefaults() {
	viper.SetDefault("archive_url", DefaultArchiveURL)
	viper.SetDefault("target", DefaultTargetName)
	viper.SetDefault("silent", DefaultSilent)
	viper.SetDefault("verbose", DefaultVerbose)
}

// bindEnvironment wires the variables the supported CI systems export.
// The first variable in each list wins, so an explicit ENVBOOT_ value
// overrides whatever the CI system reports.
func (l *Loader) bindEnvironment() {
	_ = viper.BindEnv("home", "ENVBOOT_HOME", "HOME")
	_ = viper.BindEnv("event_type", "ENVBOOT_EVENT_TYPE", "TRAVIS_EVENT_TYPE", "GITHUB_EVENT_NAME", "CI_PIPELINE_SOURCE")
	_ = viper.BindEnv("archive_url", "ENVBOOT_ARCHIVE_URL")
}

// loadGlobalConfig loads global configuration from the user config directory
func (l *Loader) loadGlobalConfig() {
	confDir, err := os.UserConfigDir()
	if err != nil {
		return
	}

	globalDir := filepath.Join(confDir, "envboot")

	for _, ext := range []string{"yml", "yaml", "json", "toml"} {
		globalPath := filepath.Join(globalDir, "config."+ext)

		if _, err := os.Stat(globalPath); err == nil {
			viper.SetConfigFile(globalPath)

			if err := viper.ReadInConfig(); err == nil {
				break
			}
		}
	}
}

// loadLocalConfig loads local configuration from the working directory
func (l *Loader) loadLocalConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		return // silently ignore, config.Load() will handle validation
	}

	localPath := FindLocalConfig(cwd)
	if localPath != "" {
		viper.SetConfigFile(localPath)
		_ = viper.ReadInConfig()
	}
}

// bindCommandFlags binds command flags to viper
func (l *Loader) bindCommandFlags(cmd *cobra.Command) {
	_ = viper.BindPFlag("home", cmd.Flags().Lookup("home"))
	_ = viper.BindPFlag("event_type", cmd.Flags().Lookup("event-type"))
	_ = viper.BindPFlag("archive_url", cmd.Flags().Lookup("url"))
	_ = viper.BindPFlag("target", cmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("silent", cmd.Flags().Lookup("silent"))
	_ = viper.BindPFlag("verbose", cmd.Flags().Lookup("verbose"))
}
