package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/daemon"
)

// serveCmd runs only the asset server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the staging directory without exporting",
	Long: `Start the asset server in the foreground so a device can load staged
models, for example after an export run with --no-serve from another machine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cleanup := common.WithInterrupt(cmd.Context())
		defer cleanup()

		fmt.Println(titleStyle.Render("GVRf asset server"))
		fmt.Println(infoStyle.Render(fmt.Sprintf("Listening on %s, serving %s", cfg.GetServerAddress(), cfg.Server.Root)))

		if err := daemon.Serve(ctx, cfg); err != nil {
			return err
		}

		fmt.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
