package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beamline-ci/envboot/internal/config"
	"github.com/beamline-ci/envboot/internal/version"
)

var rootCmd = &cobra.Command{
	Use:          "envboot",
	Short:        "Build environment bootstrapper for CI",
	Long:         `Keep a prebuilt DIALS build environment available in the CI home directory, rebuilding it from the distribution archive only when the cache marker is missing.`,
	RunE:         runEnsure,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		// Surface the vendor installer's exit code unchanged
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			os.Exit(exitErr.ExitCode())
		}

		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)
	rootCmd.PersistentFlags().String("home", "", "Root directory for the build environment (default $HOME)")
	rootCmd.PersistentFlags().StringP("event-type", "e", "", "CI event type for this run (push, pull_request, cron, schedule)")
	rootCmd.PersistentFlags().String("url", "", "URL of the prebuilt distribution archive")
	rootCmd.PersistentFlags().StringP("target", "t", "", "Directory name the installation is renamed to")
	rootCmd.PersistentFlags().BoolP("silent", "s", false, "Suppress console output from the vendor installer")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.AddCommand(ensureCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(manifestCmd)

	viper.SetDefault("archive_url", config.DefaultArchiveURL)
	viper.SetDefault("target", config.DefaultTargetName)
	viper.SetDefault("silent", false)
	viper.SetDefault("verbose", false)
}
