package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/config"
	"github.com/gearvrf/gvrf-exporter/internal/daemon"
)

var (
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "gvrf-assets",
	Short: "Serve staged GVRf scene assets",
	Long: `Serve the staging directory to devices over HTTP.

If no config file is specified, the server will look for config files in the following locations:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/gvrf/config.yaml
  - ~/.config/gvrf/config.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			logrus.Fatalf("Failed to load configuration: %v", err)
		}

		ctx, cleanup := common.WithInterrupt(cmd.Context())
		defer cleanup()

		if err := daemon.Serve(ctx, cfg); err != nil {
			logrus.Fatalf("Failed to start asset server: %v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to the configuration file (optional)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Failed to execute command: %v", err)
	}
}
