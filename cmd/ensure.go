package cmd

import (
	"fmt"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/beamline-ci/envboot/internal/bootstrap"
	"github.com/beamline-ci/envboot/internal/config"
)

var ensureCmd = &cobra.Command{
	Use:          "ensure",
	Short:        "Ensure the build environment exists",
	Long:         `Check the cache marker and rebuild the build environment from the distribution archive when it is missing. Scheduled runs clear the markers first so the environment is always rebuilt fresh.`,
	RunE:         runEnsure,
	SilenceUsage: true,
}

var (
	colArrow   = color.FgCyan
	colSuccess = color.FgGreen
	colWarn    = color.FgYellow
)

func runEnsure(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().LoadForRun(cmd)
	if err != nil {
		return err
	}

	if !cfg.Silent {
		colArrow.Print("-> ")
		fmt.Printf("Ensuring %s under %s\n", cfg.TargetName, cfg.Home)
	}

	if err := bootstrap.New(cfg).Run(); err != nil {
		return err
	}

	if !cfg.Silent {
		colArrow.Print("-> ")
		colSuccess.Println("Build environment ready.")
	}

	return nil
}
