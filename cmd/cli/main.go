package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/config"
	"github.com/gearvrf/gvrf-exporter/internal/remote"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Device address overrides
	if host, err := cmd.Flags().GetString("host"); err == nil && len(host) > 0 {
		if !common.IsValidHost(host) {
			return fmt.Errorf("invalid device address %q", host)
		}
		cfg.Remote.Host = host
	}
	if port, err := cmd.Flags().GetInt("port"); err == nil && port != 0 {
		if !common.IsValidPort(port) {
			return fmt.Errorf("invalid console port %d", port)
		}
		cfg.Remote.Port = port
	}
	if debug, err := cmd.Flags().GetBool("debug"); err == nil && debug {
		cfg.Remote.Debug = true
	}

	return nil
}

// connectSession opens the device console and prepares the scene bindings
func connectSession(ctx context.Context) (*remote.Session, error) {
	if !cfg.HasRemote() {
		return nil, fmt.Errorf("%w: no device address, set remote.host or pass --host", remote.ErrConnection)
	}

	session := remote.NewSession(cfg.SessionOptions())

	logrus.WithFields(logrus.Fields{
		"host": cfg.Remote.Host,
		"port": cfg.GetRemotePort(),
	}).Debugln("Connecting to device console")

	if err := session.Connect(ctx, cfg.Remote.Host, cfg.GetRemotePort()); err != nil {
		return nil, err
	}

	return session, nil
}

var rootCmd = &cobra.Command{
	Use:   "gvrf-exporter",
	Short: "Send authored scenes to a running GearVR Framework app",
	Long: `gvrf-exporter rebuilds a scene on a device running a GearVR Framework
application with the debug console enabled. Models are staged into a local
directory served over HTTP; lights and the camera are created through the
console's JavaScript shell.

If no config file is specified, the following locations are searched:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/gvrf/config.yaml
  - ~/.config/gvrf/config.yaml`,
	PersistentPreRunE: preRunConfigE,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./config.yaml)")

	// Device console
	rootCmd.PersistentFlags().String("host", "", "Device address of the debug console")
	rootCmd.PersistentFlags().IntP("port", "p", 0, fmt.Sprintf("Debug console port (default %d)", remote.DefaultPort))
	rootCmd.PersistentFlags().Bool("debug", false, "Log the console transcript")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// Execute runs the command line and reports a failure once
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	}
	return err
}
