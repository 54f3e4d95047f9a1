package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beamline-ci/envboot/internal/manifest"
)

// defaultManifest is the package list shipped with the repository.
const defaultManifest = "manifests/conda_windows.txt"

var manifestCmd = &cobra.Command{
	Use:          "manifest [file]",
	Short:        "Summarise the conda package manifest",
	Long:         `Parse the conda package manifest for the Windows build environment and print its groups. With --lint, fail when the manifest lists a package twice or both active and disabled.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runManifest,
	SilenceUsage: true,
}

func init() {
	manifestCmd.Flags().Bool("lint", false, "Fail on duplicate or conflicting entries")
}

func runManifest(cmd *cobra.Command, args []string) error {
	path := defaultManifest
	if len(args) == 1 {
		path = args[0]
	}

	m, err := manifest.Load(path)
	if err != nil {
		return err
	}

	for _, g := range m.Groups {
		title := g.Title
		if title == "" {
			title = "(untitled)"
		}

		var active, disabled int
		for _, p := range g.Packages {
			if p.Disabled {
				disabled++
			} else {
				active++
			}
		}

		fmt.Printf("%-32s %2d packages", title, active)
		if disabled > 0 {
			fmt.Printf(" (+%d disabled)", disabled)
		}
		fmt.Println()
	}

	fmt.Printf("\nTotal: %d active, %d disabled\n", len(m.Active()), len(m.Disabled()))

	if lint, _ := cmd.Flags().GetBool("lint"); lint {
		issues := m.Lint()
		for _, issue := range issues {
			colWarn.Println(issue)
		}

		if len(issues) > 0 {
			return fmt.Errorf("manifest has %d issue(s)", len(issues))
		}
	}

	return nil
}
