package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beamline-ci/envboot/internal/cache"
	"github.com/beamline-ci/envboot/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:          "clean",
	Short:        "Invalidate the cached build environment",
	Long:         `Clear the cache markers so the next run rebuilds from scratch. This is the same invalidation a scheduled run performs.`,
	RunE:         runClean,
	SilenceUsage: true,
}

func init() {
	cleanCmd.Flags().Bool("env", false, "Also remove the environment directory itself")
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForRun(cmd)
	if err != nil {
		return err
	}

	if err := cache.ClearAll(cache.Valid(cfg.Home), cache.BuildComplete(cfg.Home)); err != nil {
		return err
	}

	if removeEnv, _ := cmd.Flags().GetBool("env"); removeEnv {
		if err := os.RemoveAll(cfg.EnvDir()); err != nil {
			return fmt.Errorf("failed to remove %s: %w", cfg.EnvDir(), err)
		}
	}

	if !cfg.Silent {
		colArrow.Print("-> ")
		fmt.Println("Cache markers cleared.")
	}

	return nil
}
