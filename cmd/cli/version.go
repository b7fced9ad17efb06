package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// No configuration needed
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		version, gitCommit, ok := common.GetModuleBuildInfo()

		if !ok {
			fmt.Println("Failed to get version information")
			return
		}

		fmt.Printf("gvrf-exporter %s", version)
		if short := common.ShortCommit(gitCommit); len(short) > 0 {
			fmt.Printf(" (git: %s)", short)
		}
		fmt.Println()
	},
}

func init() {

	rootCmd.AddCommand(versionCmd)
}
