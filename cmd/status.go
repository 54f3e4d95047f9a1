package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beamline-ci/envboot/internal/cache"
	"github.com/beamline-ci/envboot/internal/config"
	"github.com/beamline-ci/envboot/internal/trigger"
)

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Report cache marker and environment state",
	RunE:         runStatus,
	SilenceUsage: true,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForRun(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("%-14s %s\n", "Home:", cfg.Home)

	if cfg.EventType != "" {
		fmt.Printf("%-14s %s (%s)\n", "Event type:", cfg.EventType, trigger.Parse(cfg.EventType))
	}

	fmt.Printf("%-14s %s\n", "Archive:", cfg.ArchiveURL)

	printState("Cache marker:", cache.Valid(cfg.Home).Exists())
	printState("Build marker:", cache.BuildComplete(cfg.Home).Exists())

	info, err := os.Stat(cfg.EnvDir())
	printState("Environment:", err == nil && info.IsDir())

	return nil
}

func printState(label string, present bool) {
	fmt.Printf("%-14s ", label)

	if present {
		colSuccess.Println("present")
	} else {
		colWarn.Println("absent")
	}
}
